package repo

import (
	"context"

	"gorm.io/gorm"

	"go-socialnet/internal/domain"
)

// Store is the gorm-backed record store. A Store created by Transaction is
// bound to that transaction.
type Store struct{ db *gorm.DB }

var _ domain.Store = (*Store)(nil)

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository { return NewUserRepo(s.db) }

func (s *Store) Statuses() domain.StatusRepository { return NewStatusRepo(s.db) }

func (s *Store) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
