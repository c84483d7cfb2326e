package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzblog/backend/internal/errs"
)

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name      string
		username  string
		password  string
		firstName string
		want      error
	}{
		{"ok", "test_mQUO8", "abracadabra", "Test", nil},
		{"duplicate", "test_mQUO8", "abracadabra", "Test", errs.AccountAlreadyExists},
		{"empty username", "", "abracadabra", "Test", errs.AccountInvalidAttributes},
		{"username with space", "two words", "abracadabra", "Test", errs.AccountInvalidAttributes},
		{"long username", strings.Repeat("u", 33), "abracadabra", "Test", errs.AccountInvalidAttributes},
		{"empty password", "nopass", "", "Test", errs.AccountInvalidAttributes},
		{"empty first name", "noname", "abracadabra", "", errs.AccountInvalidAttributes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := f.accounts.CreateAccount(ctx, as(0), tt.username, tt.password, tt.firstName, "User")
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.True(t, acc.Active)
			assert.NotEqual(t, tt.password, acc.PasswordHash)
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.account(t, "alice")

	acc, err := f.accounts.AuthenticateUser(ctx, as(0), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, id, acc.ID)

	_, err = f.accounts.AuthenticateUser(ctx, as(0), "alice", "wrong")
	assert.ErrorIs(t, err, errs.AccountInvalidCredentials)
	_, err = f.accounts.AuthenticateUser(ctx, as(0), "nobody", "secret")
	assert.ErrorIs(t, err, errs.AccountInvalidCredentials)

	require.NoError(t, f.accounts.DeleteAccount(ctx, as(id), id))
	_, err = f.accounts.AuthenticateUser(ctx, as(0), "alice", "secret")
	assert.ErrorIs(t, err, errs.AccountInvalidCredentials)
}

func TestAccountService_RetrieveExpanded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := f.account(t, "alice"), f.account(t, "bob")

	_, err := f.follows.FollowAccount(ctx, as(alice), bob)
	require.NoError(t, err)
	post := f.post(t, alice, "hello")
	f.post(t, alice, "again")
	_, err = f.likes.LikePost(ctx, as(alice), post)
	require.NoError(t, err)

	acc, err := f.accounts.RetrieveExpandedAccount(ctx, as(bob), alice)
	require.NoError(t, err)
	require.NotNil(t, acc.FollowsYou)
	assert.True(t, *acc.FollowsYou)
	assert.False(t, *acc.FollowedByYou)
	assert.Equal(t, int64(0), *acc.NFollowers)
	assert.Equal(t, int64(1), *acc.NFollowing)
	assert.Equal(t, int64(2), *acc.NPosts)
	assert.Equal(t, int64(1), *acc.NLikes)

	standard, err := f.accounts.RetrieveStandardAccount(ctx, as(bob), alice)
	require.NoError(t, err)
	assert.Nil(t, standard.FollowsYou)

	_, err = f.accounts.RetrieveExpandedAccount(ctx, as(bob), 999)
	assert.ErrorIs(t, err, errs.AccountNotFound)
}

func TestAccountService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := f.account(t, "alice"), f.account(t, "bob")

	_, err := f.accounts.UpdateAccount(ctx, as(bob), alice, "pw", "Eve", "Evil")
	assert.ErrorIs(t, err, errs.AccountNotAuthorized)
	assert.ErrorIs(t, f.accounts.DeleteAccount(ctx, as(bob), alice), errs.AccountNotAuthorized)

	_, err = f.accounts.UpdateAccount(ctx, as(alice), alice, "pw", "", "A")
	assert.ErrorIs(t, err, errs.AccountInvalidAttributes)

	acc, err := f.accounts.UpdateAccount(ctx, as(alice), alice, "newpass", "Alicia", "A")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", acc.FirstName)

	_, err = f.accounts.AuthenticateUser(ctx, as(0), "alice", "newpass")
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccount(ctx, as(alice), alice))
	acc, err = f.accounts.RetrieveStandardAccount(ctx, as(bob), alice)
	require.NoError(t, err)
	assert.False(t, acc.Active)
}
