//go:build unit

package user_test

import (
	"strings"
	"testing"

	"wheelshare/internal/domain/user"
	"wheelshare/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {

		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("test@example.com")
		role, _ := user.NewRole("renter")
		expected, err := user.NewUser(email, "Test User", "hashed_password", role)
		require.NoError(t, err)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Test User", actual.Name())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("メールアドレス検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "有効なメールアドレスOK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "大文字は小文字に正規化OK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("Owner@Example.com") },
			},
			{
				name:   "空のメールアドレスNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "@なしNG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("ロール検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "renter ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("renter") },
			},
			{
				name:   "carOwner ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("carOwner") },
			},
			{
				name:   "mechanic ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("mechanic") },
			},
			{
				name:   "admin ロールOK",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "旧ロールNG",
				mutate: func(b *builder.UserBuilder) { b.WithRole("operator") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "空のロールNG",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("名前検証", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "空の名前NG",
				mutate: func(b *builder.UserBuilder) { b.WithName("  ") },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "長すぎる名前NG",
				mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("x", 101)) },
				errIs:  user.ErrNameTooLong,
			},
		})
	})
}

func TestRole_IsSelfRegistrable(t *testing.T) {
	assert.True(t, user.RoleRenter.IsSelfRegistrable())
	assert.True(t, user.RoleCarOwner.IsSelfRegistrable())
	assert.True(t, user.RoleMechanic.IsSelfRegistrable())
	assert.False(t, user.RoleAdmin.IsSelfRegistrable())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
