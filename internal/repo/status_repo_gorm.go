package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-socialnet/internal/domain"
)

type StatusRepo struct{ db *gorm.DB }

func NewStatusRepo(db *gorm.DB) *StatusRepo { return &StatusRepo{db: db} }

func (r *StatusRepo) Create(ctx context.Context, s *domain.Status) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(s).Error; err != nil {
		switch {
		case isDupKey(err):
			return fmt.Errorf("insert status %q: %w", s.StatusID, domain.ErrDuplicateKey)
		case isForeignKey(err):
			return fmt.Errorf("insert status %q: %w", s.StatusID, domain.ErrMissingUser)
		}
		return fmt.Errorf("insert status %q: %w", s.StatusID, err)
	}
	return nil
}

func (r *StatusRepo) FindByID(ctx context.Context, id string) (*domain.Status, error) {
	var s domain.Status
	err := r.db.WithContext(ctx).First(&s, "status_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find status %q: %w", id, err)
	}
	return &s, nil
}

func (r *StatusRepo) UpdateText(ctx context.Context, id, text string) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Status{}).
		Where("status_id = ?", id).
		Update("status_text", text).Error
	if err != nil {
		return fmt.Errorf("update status %q: %w", id, err)
	}
	return nil
}

func (r *StatusRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("status_id = ?", id).Delete(&domain.Status{})
	if res.Error != nil {
		return fmt.Errorf("delete status %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete status %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every status owned by userID and reports how many went.
func (r *StatusRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Status{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete statuses of %q: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}
