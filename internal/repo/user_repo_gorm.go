package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-socialnet/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return fmt.Errorf("insert user %q: %w", u.UserID, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("insert user %q: %w", u.UserID, err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("user_id = ?", id).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("count user %q: %w", id, err)
	}
	return n > 0, nil
}

// Update overwrites every column of the user row keyed by u.UserID.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", u.UserID).
		Updates(map[string]any{
			"email":          u.Email,
			"user_name":      u.UserName,
			"user_last_name": u.UserLastName,
		}).Error
	if err != nil {
		return fmt.Errorf("update user %q: %w", u.UserID, err)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user %q: %w", id, domain.ErrNotFound)
	}
	return nil
}
