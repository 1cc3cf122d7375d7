package repository

import (
	"context"

	"smartcart/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 再設定トークンからユーザーを1件取得する（期限切れは対象外）。
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	// ユーザー情報の更新=>最終ログイン・再設定トークンなど
	Update(ctx context.Context, user *model.User) error
	// 退会
	Delete(ctx context.Context, userID string) error
}
