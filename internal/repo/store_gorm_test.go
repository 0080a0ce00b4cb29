package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-socialnet/internal/domain"
	"go-socialnet/internal/repo"
	"go-socialnet/internal/testutil"
)

func newStore(t *testing.T) *repo.Store {
	t.Helper()
	return repo.NewStore(testutil.NewDB(t))
}

func seedUser(t *testing.T, s *repo.Store, id string) {
	t.Helper()
	require.NoError(t, s.Users().Create(context.Background(), &domain.User{
		UserID: id, Email: id + "@uw.edu", UserName: "name", UserLastName: "last",
	}))
}

func TestUserRepo_CreateFind(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := &domain.User{UserID: "adark_01", Email: "adark@uw.edu", UserName: "aarol", UserLastName: "adark"}
	require.NoError(t, s.Users().Create(ctx, in))

	got, err := s.Users().FindByID(ctx, "adark_01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *in, *got)

	missing, err := s.Users().FindByID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")

	err := s.Users().Create(ctx, &domain.User{UserID: "u1", Email: "other", UserName: "x", UserLastName: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	got, err := s.Users().FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@uw.edu", got.Email)
}

func TestUserRepo_ExistsUpdateDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")

	ok, err := s.Users().Exists(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Users().Exists(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Users().Update(ctx, &domain.User{UserID: "u1", Email: "new@uw.edu", UserName: "n2", UserLastName: "l2"}))
	got, err := s.Users().FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.User{UserID: "u1", Email: "new@uw.edu", UserName: "n2", UserLastName: "l2"}, *got)

	require.NoError(t, s.Users().Delete(ctx, "u1"))
	assert.ErrorIs(t, s.Users().Delete(ctx, "u1"), domain.ErrNotFound)
}

func TestStatusRepo_CRUD(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")

	st := &domain.Status{StatusID: "s1", UserID: "u1", StatusText: "hello"}
	require.NoError(t, s.Statuses().Create(ctx, st))
	assert.ErrorIs(t, s.Statuses().Create(ctx, st), domain.ErrDuplicateKey)

	require.NoError(t, s.Statuses().UpdateText(ctx, "s1", "bye"))
	got, err := s.Statuses().FindByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bye", got.StatusText)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, s.Statuses().Delete(ctx, "s1"))
	assert.ErrorIs(t, s.Statuses().Delete(ctx, "s1"), domain.ErrNotFound)

	got, err = s.Statuses().FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatusRepo_ForeignKey(t *testing.T) {
	s := newStore(t)
	err := s.Statuses().Create(context.Background(), &domain.Status{StatusID: "s1", UserID: "ghost", StatusText: "boo"})
	assert.ErrorIs(t, err, domain.ErrMissingUser)
}

func TestStatusRepo_DeleteByUser(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")
	seedUser(t, s, "u2")
	for _, st := range []domain.Status{
		{StatusID: "a", UserID: "u1", StatusText: "x"},
		{StatusID: "b", UserID: "u1", StatusText: "y"},
		{StatusID: "c", UserID: "u2", StatusText: "z"},
	} {
		st := st
		require.NoError(t, s.Statuses().Create(ctx, &st))
	}

	n, err := s.Statuses().DeleteByUser(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := s.Statuses().FindByID(ctx, "c")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUserDeleteCascadesInSchema(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seedUser(t, s, "u1")
	require.NoError(t, s.Statuses().Create(ctx, &domain.Status{StatusID: "s1", UserID: "u1", StatusText: "x"}))

	require.NoError(t, s.Users().Delete(ctx, "u1"))

	got, err := s.Statuses().FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactionRollback(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Users().Create(ctx, &domain.User{UserID: "u1", Email: "e", UserName: "n", UserLastName: "l"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ok, err := s.Users().Exists(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionCommit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Users().Create(ctx, &domain.User{UserID: "u1", Email: "e", UserName: "n", UserLastName: "l"}); err != nil {
			return err
		}
		return tx.Statuses().Create(ctx, &domain.Status{StatusID: "s1", UserID: "u1", StatusText: "t"})
	}))

	got, err := s.Statuses().FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
