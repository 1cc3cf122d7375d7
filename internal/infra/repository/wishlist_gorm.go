package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartcart/internal/domain/model"
	repo "smartcart/internal/repository"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

// ユーザーのウィッシュリストを取得し、無ければ作成
func (r *WishlistGormRepository) GetOrCreateByUserID(ctx context.Context, userID string) (model.Wishlist, error) {
	var wl model.Wishlist

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&wl).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		now := time.Now()
		newWl := model.Wishlist{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newWl).Error; err != nil {
			retryErr := tx.Where("user_id = ?", userID).First(&wl).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		wl = newWl
		return nil
	})

	if err != nil {
		return model.Wishlist{}, err
	}
	return wl, nil
}

// 明細を一覧取得（追加順）
func (r *WishlistGormRepository) ListItems(ctx context.Context, wishlistID string) ([]model.WishlistItem, error) {
	var items []model.WishlistItem

	if err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("added_at asc").
		Find(&items).Error; err != nil {
		return []model.WishlistItem{}, err
	}

	return items, nil
}

// 追加。既にあれば ErrDuplicate。
func (r *WishlistGormRepository) AddItem(ctx context.Context, wishlistID string, productID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.WishlistItem{}).
			Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return repo.ErrDuplicate
		}

		item := model.WishlistItem{
			ID:         uuid.NewString(),
			WishlistID: wishlistID,
			ProductID:  productID,
			AddedAt:    time.Now(),
		}
		return tx.Create(&item).Error
	})
}

func (r *WishlistGormRepository) RemoveItem(ctx context.Context, wishlistID string, productID string) error {
	res := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&model.WishlistItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WishlistGormRepository) Clear(ctx context.Context, wishlistID string) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Delete(&model.WishlistItem{}).Error
}
