package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"smartcart/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page        int
	Limit       int
	Q           string
	Category    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	Sort        string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
}
