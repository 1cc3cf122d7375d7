package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// 一意制約に引っかかった（ウィッシュリストの重複追加など）
	ErrDuplicate = errors.New("duplicate")
)
