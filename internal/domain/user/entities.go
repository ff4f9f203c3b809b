package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("user not found")

// Table: users
type User struct {
	ID           string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	Username     string    `gorm:"column:username;size:64;not null;uniqueIndex" json:"username"`
	FirstName    string    `gorm:"column:first_name;size:100" json:"firstName"`
	LastName     string    `gorm:"column:last_name;size:100" json:"lastName"`
	PasswordHash string    `gorm:"column:password_hash;size:255" json:"-"`
	Permission   string    `gorm:"column:permission;size:32;default:'USER'" json:"permission"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
