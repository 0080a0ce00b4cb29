package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-socialnet/internal/domain"
	"go-socialnet/internal/repo"
	"go-socialnet/internal/service"
	"go-socialnet/internal/testutil"
)

func newSocial(t *testing.T) (*service.Social, *observer.ObservedLogs) {
	t.Helper()
	l, logs := testutil.ObservedLogger()
	return service.NewSocial(repo.NewStore(testutil.NewDB(t)), l), logs
}

func seedUsers(t *testing.T, s *service.Social) {
	t.Helper()
	ctx := context.Background()
	require.True(t, s.AddUser(ctx, "adark", "adark@uw.edu", "aarol", "adark1"))
	require.True(t, s.AddUser(ctx, "badark", "badark@uw.edu", "barol", "badark2"))
	require.True(t, s.AddUser(ctx, "cadark", "cadark@uw.edu", "carol", "cadark3"))
}

func TestAddUser(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()

	tests := []struct {
		id, email, name, last string
		want                  bool
	}{
		{"adark_01", "adark@uw.edu", "aarol", "adark", true},
		{"adark_01", "adark@uw.edu", "aarol", "adark", false},
		{"adark_02", "adark@uw.edu", "aarol", "adark", true},
		{"dadark_04", "dadark@uw.edu", "darol", "dadark", true},
		{"dabark_040000000000000000000000000000000000000000", "dadark@uw.edu", "darol", "dadark", false},
		{"John", "Doe", "student", "Doe1", true},
		{"bad!id", "x@y.z", "n", "l", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.AddUser(ctx, tt.id, tt.email, tt.name, tt.last), tt.id)
	}
}

func TestAddUserDuplicateKeepsRecord(t *testing.T) {
	s, logs := newSocial(t)
	ctx := context.Background()
	require.True(t, s.AddUser(ctx, "u1", "first@uw.edu", "first", "one"))

	assert.False(t, s.AddUser(ctx, "u1", "second@uw.edu", "second", "two"))

	got := s.SearchUser(ctx, "u1")
	require.NotNil(t, got)
	assert.Equal(t, "first@uw.edu", got.Email)
	assert.Equal(t, 1, logs.FilterMessage("failed to add user").FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSearchUserRoundTrip(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()
	require.True(t, s.AddUser(ctx, "adark_01", "adark@uw.edu", "aarol", "adark"))
	require.True(t, s.AddUser(ctx, "badark_02", "badark@uw.edu", "barol", "badark"))

	got := s.SearchUser(ctx, "badark_02")
	require.NotNil(t, got)
	assert.Equal(t, domain.User{UserID: "badark_02", Email: "badark@uw.edu", UserName: "barol", UserLastName: "badark"}, *got)

	assert.Nil(t, s.SearchUser(ctx, "adark05.1"))
	assert.Nil(t, s.SearchUser(ctx, "not valid!"))
}

func TestUpdateUser(t *testing.T) {
	s, logs := newSocial(t)
	ctx := context.Background()
	require.True(t, s.AddUser(ctx, "adark_01", "adark@uw.edu", "aarol", "adark"))

	assert.True(t, s.UpdateUser(ctx, "adark_01", "adark1@uw.edu", "aarol1", "adark1"))
	assert.False(t, s.UpdateUser(ctx, "dadark_04", "dadark@uw.edu", "darol", "dadark"))
	assert.False(t, s.UpdateUser(ctx, "dabark_040000000000000000000000000000000000000000", "dadark@uw.edu", "darol", "dadark"))

	got := s.SearchUser(ctx, "adark_01")
	require.NotNil(t, got)
	assert.Equal(t, "adark1@uw.edu", got.Email)
	assert.Equal(t, "aarol1", got.UserName)
	assert.Equal(t, "adark1", got.UserLastName)

	missing := logs.FilterMessage("no user to update").All()
	require.Len(t, missing, 1)
	assert.Equal(t, "dadark_04", missing[0].ContextMap()["user_id"])
}

func TestDeleteUserCascades(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()
	seedUsers(t, s)
	require.True(t, s.AddStatus(ctx, "1", "adark", "Perfect weather today"))
	require.True(t, s.AddStatus(ctx, "2", "adark", "Perfect weather yesterday"))
	require.True(t, s.AddStatus(ctx, "3", "badark", "Perfect weather tomorrow"))

	assert.False(t, s.DeleteUser(ctx, "adark_05"))
	assert.True(t, s.DeleteUser(ctx, "adark"))
	assert.False(t, s.DeleteUser(ctx, "adark"))
	assert.False(t, s.DeleteUser(ctx, strings.Repeat("x", 31)))

	assert.Nil(t, s.SearchUser(ctx, "adark"))
	assert.Nil(t, s.SearchStatus(ctx, "1"))
	assert.Nil(t, s.SearchStatus(ctx, "2"))
	assert.NotNil(t, s.SearchStatus(ctx, "3"))
}

func TestAddStatus(t *testing.T) {
	s, logs := newSocial(t)
	ctx := context.Background()
	seedUsers(t, s)

	tests := []struct {
		statusID, userID, text string
		want                   bool
	}{
		{"4", "adark", "Imperfect weather today", true},
		{"4", "dadark", "Imperfect weather today", false},
		{"2", "badark", "Perfect weather yesterday", true},
		{"2", "badark", "Perfect weather yesterday", false},
		{"5", "cadark", "I will make it through today", true},
		{"6", "badark", "I will make NOT it through today", true},
		{"7", "badark", "No punctuation allowed!", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.AddStatus(ctx, tt.statusID, tt.userID, tt.text), tt.statusID+"/"+tt.userID)
	}

	assert.Equal(t, 1, logs.FilterMessage("no user for status").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to add status").Len())
	assert.Nil(t, s.SearchUser(ctx, "dadark"), "missing user probe must not create a user")
}

func TestAddStatusMissingUserLeavesNothing(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()

	assert.False(t, s.AddStatus(ctx, "s1", "ghost", "hello"))
	assert.Nil(t, s.SearchStatus(ctx, "s1"))
}

func TestUpdateStatus(t *testing.T) {
	s, logs := newSocial(t)
	ctx := context.Background()
	seedUsers(t, s)
	require.True(t, s.AddStatus(ctx, "1", "adark", "Perfect weather today"))
	require.True(t, s.AddStatus(ctx, "2", "badark", "Perfect weather yesterday"))
	require.True(t, s.AddStatus(ctx, "3", "cadark", "Perfect weather tomorrow"))

	tests := []struct {
		statusID, userID, text string
		want                   bool
	}{
		{"1", "badark", "Perfect weather today", true},
		{"5", "badark", "Perfect weather today", false},
		{"20", "nadark", "I will make it through today", false},
		{"2", "nadark", "I will make it through today", false},
		{"2", "adark", "I will make NOT it through today", true},
		{"3", "adark", "I will make NOT it through today", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.UpdateStatus(ctx, tt.statusID, tt.userID, tt.text), tt.statusID+"/"+tt.userID)
	}

	got := s.SearchStatus(ctx, "2")
	require.NotNil(t, got)
	assert.Equal(t, "I will make NOT it through today", got.StatusText)
	assert.Equal(t, "badark", got.UserID, "owner is untouched")

	assert.Equal(t, 1, logs.FilterMessage("no status to update").Len())
	assert.Equal(t, 2, logs.FilterMessage("no user to update status for").Len())
}

func TestUpdateStatusMissingLeavesStoreUnchanged(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()
	seedUsers(t, s)
	require.True(t, s.AddStatus(ctx, "1", "adark", "hello"))

	assert.False(t, s.UpdateStatus(ctx, "9", "adark", "changed"))
	got := s.SearchStatus(ctx, "1")
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.StatusText)
	assert.Nil(t, s.SearchStatus(ctx, "9"))
}

func TestDeleteStatus(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()
	require.True(t, s.AddUser(ctx, "adark", "adark@uw.edu", "aarol", "adark1"))
	require.True(t, s.AddStatus(ctx, "1", "adark", "Perfect weather today"))

	assert.False(t, s.DeleteStatus(ctx, "4"))
	assert.True(t, s.DeleteStatus(ctx, "1"))
	assert.False(t, s.DeleteStatus(ctx, "1"))
	assert.False(t, s.DeleteStatus(ctx, "#"))
	assert.NotNil(t, s.SearchUser(ctx, "adark"))
}

func TestSearchStatus(t *testing.T) {
	s, _ := newSocial(t)
	ctx := context.Background()
	seedUsers(t, s)
	require.True(t, s.AddStatus(ctx, "1", "adark", "Perfect weather today"))
	require.True(t, s.AddStatus(ctx, "2", "badark", "Perfect weather yesterday"))

	got := s.SearchStatus(ctx, "2")
	require.NotNil(t, got)
	assert.Equal(t, "2", got.StatusID)
	assert.Equal(t, "badark", got.UserID)
	assert.Equal(t, "Perfect weather yesterday", got.StatusText)

	assert.Nil(t, s.SearchStatus(ctx, "4"))
}
