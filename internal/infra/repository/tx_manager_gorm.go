package repository

import (
	"context"

	"gorm.io/gorm"

	repo "smartcart/internal/repository"
)

// GORMのトランザクションでTxReposを組み立てる
type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

type gormTxRepos struct {
	tx *gorm.DB
}

func (r *gormTxRepos) Carts() repo.CartRepository       { return NewCartGormRepository(r.tx) }
func (r *gormTxRepos) Orders() repo.OrderRepository     { return NewOrderGormRepository(r.tx) }
func (r *gormTxRepos) Products() repo.ProductRepository { return NewProductGormRepository(r.tx) }

func (m *GormTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepos{tx: tx})
	})
}
