package domain

import "context"

type User struct {
	UserID       string `gorm:"primaryKey;size:30" json:"user_id"`
	Email        string `gorm:"size:255;not null" json:"email"`
	UserName     string `gorm:"size:30;not null" json:"user_name"`
	UserLastName string `gorm:"size:100;not null" json:"user_last_name"`
}

func (User) TableName() string { return "users" }

// UserRepository is the users table of the record store.
// FindByID returns (nil, nil) when the id is absent.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
