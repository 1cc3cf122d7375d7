package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'"`
	IsActive     bool   `gorm:"not null;default:true"`

	// パスワード再設定トークン（未発行ならnil）
	ResetPasswordToken   *string `gorm:"type:varchar(64);index"`
	ResetPasswordExpires *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
