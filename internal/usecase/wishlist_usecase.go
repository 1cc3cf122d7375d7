package usecase

import (
	"context"
	"errors"
	"net/http"

	"smartcart/internal/domain/model"
	repo "smartcart/internal/repository"
)

// WishlistUsecase は /wishlist の業務ロジックです。
// 同一商品の二重追加は 400。応答は常にリスト全体。
type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type WishlistResponse struct {
	Items []model.Product `json:"items"`
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, userID string) (WishlistResponse, error) {
	if userID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	wl, err := u.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildWishlistResponse(ctx, wl.ID)
}

func (u *WishlistUsecase) Add(ctx context.Context, userID string, productID string) (WishlistResponse, error) {
	if userID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "product id is required")
	}

	// 商品チェック
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return WishlistResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	wl, err := u.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.wishlistRepo.AddItem(ctx, wl.ID, productID); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "item already in wishlist")
		}
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildWishlistResponse(ctx, wl.ID)
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID string, productID string) (WishlistResponse, error) {
	if userID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "product id is required")
	}

	wl, err := u.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.wishlistRepo.RemoveItem(ctx, wl.ID, productID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildWishlistResponse(ctx, wl.ID)
}

func (u *WishlistUsecase) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	wl, err := u.wishlistRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.wishlistRepo.Clear(ctx, wl.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WishlistUsecase) buildWishlistResponse(ctx context.Context, wishlistID string) (WishlistResponse, error) {
	items, err := u.wishlistRepo.ListItems(ctx, wishlistID)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// 追加順を保つ
	out := make([]model.Product, 0, len(items))
	for _, it := range items {
		if p, ok := byID[it.ProductID]; ok {
			out = append(out, p)
		}
	}

	return WishlistResponse{Items: out}, nil
}
