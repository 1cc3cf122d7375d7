package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"smartcart/internal/domain/model"
	"smartcart/internal/mailer"
	repo "smartcart/internal/repository"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	carts  repo.CartRepository
	orders repo.OrderRepository
	users  repo.UserRepository
	mail   mailer.Mailer
	log    *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	carts repo.CartRepository,
	orders repo.OrderRepository,
	users repo.UserRepository,
	mail mailer.Mailer,
	log *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, carts: carts, orders: orders, users: users, mail: mail, log: log}
}

type OrderItemOutput struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID          string            `json:"id"`
	Number      string            `json:"number"`
	Status      string            `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`
}

// カートの内容から注文を作成し、カートを空にする。
// 確定メールはベストエフォート。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.Carts().ListItems(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		orderItems := make([]model.OrderItem, 0, len(cartItems))
		itemOutputs := make([]OrderItemOutput, 0, len(cartItems))
		total := decimal.Zero
		now := time.Now()

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid cart item")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//スナップショット（価格はカート追加時点のもの）
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   ci.Price,
				Quantity:            ci.Quantity,
				CreatedAt:           now,
			})
			itemOutputs = append(itemOutputs, OrderItemOutput{
				ProductID: ci.ProductID,
				Name:      p.Name,
				Price:     ci.Price,
				Quantity:  ci.Quantity,
			})

			total = total.Add(ci.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		order, err := r.Orders().Create(ctx, model.Order{
			Number:      fmt.Sprintf("ORD%d", now.UnixMilli()),
			UserID:      userID,
			Status:      model.OrderStatusConfirmed,
			TotalAmount: total,
			CreatedAt:   now,
			UpdatedAt:   now,
		}, orderItems)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//確定後はカートを空にする
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:          order.ID,
			Number:      order.Number,
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
			Items:       itemOutputs,
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// コミット後にメール。失敗しても注文は成立。
	if user, uerr := u.users.FindByID(ctx, userID); uerr == nil {
		if merr := u.mail.SendOrderConfirmation(ctx, user.Email, user.Name, out.Number, out.TotalAmount.StringFixed(2), len(out.Items)); merr != nil {
			u.log.Warn("order mail failed", "order", out.Number, "error", merr)
		}
	}

	return out, nil
}

// 注文履歴（新しい順）
func (u *OrderUsecase) ListOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orders.ListItemsByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		itemOutputs := make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			itemOutputs = append(itemOutputs, OrderItemOutput{
				ProductID: it.ProductID,
				Name:      it.ProductNameSnapshot,
				Price:     it.UnitPriceSnapshot,
				Quantity:  it.Quantity,
			})
		}

		out = append(out, OrderOutput{
			ID:          o.ID,
			Number:      o.Number,
			Status:      string(o.Status),
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
			Items:       itemOutputs,
		})
	}

	return out, nil
}
