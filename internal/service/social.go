// Package service implements the user and status operations exposed by the
// HTTP API and the admin CLI.
//
// Every operation validates its fields first, then talks to the record store
// inside a single transaction. Failures never escape as errors: they are
// logged and reported as false (or nil for searches).
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-socialnet/internal/domain"
	"go-socialnet/internal/validate"
)

var (
	userKinds   = []validate.Kind{validate.KindUserID, validate.KindEmail, validate.KindUserName, validate.KindUserLastName}
	statusKinds = []validate.Kind{validate.KindUserID, validate.KindStatusID, validate.KindStatusText}
)

type Social struct {
	store domain.Store
	log   *zap.Logger
}

func NewSocial(store domain.Store, l *zap.Logger) *Social {
	if l == nil {
		l = zap.NewNop()
	}
	return &Social{store: store, log: l}
}

func (s *Social) result(op string, ok bool) bool {
	if ok {
		opsTotal.WithLabelValues(op, resultOK).Inc()
	} else {
		opsTotal.WithLabelValues(op, resultFailed).Inc()
	}
	return ok
}

func (s *Social) invalid(op string) {
	opsTotal.WithLabelValues(op, resultInvalid).Inc()
}

func (s *Social) AddUser(ctx context.Context, userID, email, userName, userLastName string) bool {
	const op = "add_user"
	if !validate.Fields([]string{userID, email, userName, userLastName}, userKinds) {
		s.invalid(op)
		return false
	}
	u := &domain.User{UserID: userID, Email: email, UserName: userName, UserLastName: userLastName}
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		s.log.Error("failed to add user", zap.String("user_id", userID), zap.Error(err))
		return s.result(op, false)
	}
	s.log.Info("user added", zap.String("user_id", userID))
	return s.result(op, true)
}

func (s *Social) UpdateUser(ctx context.Context, userID, email, userName, userLastName string) bool {
	const op = "update_user"
	if !validate.Fields([]string{userID, email, userName, userLastName}, userKinds) {
		s.invalid(op)
		return false
	}
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		cur, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		return tx.Users().Update(ctx, &domain.User{
			UserID: userID, Email: email, UserName: userName, UserLastName: userLastName,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Error("no user to update", zap.String("user_id", userID))
		} else {
			s.log.Error("failed to update user", zap.String("user_id", userID), zap.Error(err))
		}
		return s.result(op, false)
	}
	s.log.Info("user updated", zap.String("user_id", userID))
	return s.result(op, true)
}

// DeleteUser removes the user together with every status it owns.
func (s *Social) DeleteUser(ctx context.Context, userID string) bool {
	const op = "delete_user"
	if !validate.Field(userID, validate.KindUserID) {
		s.invalid(op)
		return false
	}
	var removed int64
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		cur, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if removed, err = tx.Statuses().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Error("no user to delete", zap.String("user_id", userID))
		} else {
			s.log.Error("failed to delete user", zap.String("user_id", userID), zap.Error(err))
		}
		return s.result(op, false)
	}
	s.log.Info("user deleted", zap.String("user_id", userID), zap.Int64("statuses_deleted", removed))
	return s.result(op, true)
}

// SearchUser returns nil when the id is invalid or unknown.
func (s *Social) SearchUser(ctx context.Context, userID string) *domain.User {
	const op = "search_user"
	if !validate.Field(userID, validate.KindUserID) {
		s.invalid(op)
		return nil
	}
	var u *domain.User
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		var err error
		u, err = tx.Users().FindByID(ctx, userID)
		return err
	})
	if err != nil {
		s.log.Error("failed to search user", zap.String("user_id", userID), zap.Error(err))
		s.result(op, false)
		return nil
	}
	s.result(op, u != nil)
	return u
}

func (s *Social) AddStatus(ctx context.Context, statusID, userID, statusText string) bool {
	const op = "add_status"
	if !validate.Fields([]string{userID, statusID, statusText}, statusKinds) {
		s.invalid(op)
		return false
	}
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		ok, err := tx.Users().Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrMissingUser
		}
		return tx.Statuses().Create(ctx, &domain.Status{StatusID: statusID, UserID: userID, StatusText: statusText})
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingUser) {
			s.log.Error("no user for status", zap.String("user_id", userID), zap.String("status_id", statusID))
		} else {
			s.log.Error("failed to add status", zap.String("status_id", statusID), zap.Error(err))
		}
		return s.result(op, false)
	}
	s.log.Info("status added", zap.String("status_id", statusID), zap.String("user_id", userID))
	return s.result(op, true)
}

// UpdateStatus replaces the text of an existing status. The user must exist
// as well, although ownership of the status is not checked.
func (s *Social) UpdateStatus(ctx context.Context, statusID, userID, statusText string) bool {
	const op = "update_status"
	if !validate.Fields([]string{userID, statusID, statusText}, statusKinds) {
		s.invalid(op)
		return false
	}
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		ok, err := tx.Users().Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrMissingUser
		}
		cur, err := tx.Statuses().FindByID(ctx, statusID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		return tx.Statuses().UpdateText(ctx, statusID, statusText)
	})
	switch {
	case err == nil:
		s.log.Info("status updated", zap.String("status_id", statusID), zap.String("user_id", userID))
		return s.result(op, true)
	case errors.Is(err, domain.ErrMissingUser):
		s.log.Error("no user to update status for", zap.String("user_id", userID), zap.String("status_id", statusID))
	case errors.Is(err, domain.ErrNotFound):
		s.log.Error("no status to update", zap.String("status_id", statusID))
	default:
		s.log.Error("failed to update status", zap.String("status_id", statusID), zap.Error(err))
	}
	return s.result(op, false)
}

func (s *Social) DeleteStatus(ctx context.Context, statusID string) bool {
	const op = "delete_status"
	if !validate.Field(statusID, validate.KindStatusID) {
		s.invalid(op)
		return false
	}
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		cur, err := tx.Statuses().FindByID(ctx, statusID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		return tx.Statuses().Delete(ctx, statusID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Error("no status to delete", zap.String("status_id", statusID))
		} else {
			s.log.Error("failed to delete status", zap.String("status_id", statusID), zap.Error(err))
		}
		return s.result(op, false)
	}
	s.log.Info("status deleted", zap.String("status_id", statusID))
	return s.result(op, true)
}

// SearchStatus returns nil when the id is invalid or unknown.
func (s *Social) SearchStatus(ctx context.Context, statusID string) *domain.Status {
	const op = "search_status"
	if !validate.Field(statusID, validate.KindStatusID) {
		s.invalid(op)
		return nil
	}
	var st *domain.Status
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		var err error
		st, err = tx.Statuses().FindByID(ctx, statusID)
		return err
	})
	if err != nil {
		s.log.Error("failed to search status", zap.String("status_id", statusID), zap.Error(err))
		s.result(op, false)
		return nil
	}
	s.result(op, st != nil)
	return st
}
