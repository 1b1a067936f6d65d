package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/model"
	"github.com/aolivares/school-library-service/pkg/auth"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_Authorize(t *testing.T) {
	t.Parallel()

	const (
		username = "librarian"
		password = "s3cr3t-pass"
	)

	t.Run("ok issues parsable token", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(context.Background(), username).
			Return(model.User{
				Username:     username,
				Email:        "librarian@school.edu",
				PasswordHash: mustHash(t, password),
				Role:         string(auth.RoleAdmin),
				Status:       model.UserActive,
			}, nil)

		resp, err := svc.Authorize(context.Background(), model.AuthRequest{Username: username, Password: password})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		claims := &auth.Claims{}
		_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return auth.JWTKey, nil
		})
		require.NoError(t, err)
		require.Equal(t, username, claims.Profile.Username)
		require.Equal(t, string(auth.RoleAdmin), claims.Profile.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(context.Background(), username).
			Return(model.User{
				Username:     username,
				PasswordHash: mustHash(t, password),
				Status:       model.UserActive,
			}, nil)

		_, err := svc.Authorize(context.Background(), model.AuthRequest{Username: username, Password: "nope"})
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("inactive user", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(context.Background(), username).
			Return(model.User{
				Username:     username,
				PasswordHash: mustHash(t, password),
				Status:       model.UserInactive,
			}, nil)

		_, err := svc.Authorize(context.Background(), model.AuthRequest{Username: username, Password: password})
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()

	const username = "reader"

	t.Run("ok stores new hash", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(context.Background(), username).
			Return(model.User{Username: username, PasswordHash: mustHash(t, "old-pass"), Status: model.UserActive}, nil)
		repo.EXPECT().UpdatePassword(context.Background(), username, hashOf("new-pass-123")).Return(nil)

		err := svc.ChangePassword(context.Background(), username, model.ChangePasswordRequest{
			OldPassword: "old-pass",
			NewPassword: "new-pass-123",
		})
		require.NoError(t, err)
	})

	t.Run("old password mismatch", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().GetUserByUsername(context.Background(), username).
			Return(model.User{Username: username, PasswordHash: mustHash(t, "old-pass"), Status: model.UserActive}, nil)

		err := svc.ChangePassword(context.Background(), username, model.ChangePasswordRequest{
			OldPassword: "wrong",
			NewPassword: "new-pass-123",
		})
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

// hashOf matches any bcrypt hash of the given password.
func hashOf(password string) hashMatcher {
	return hashMatcher{password: password}
}

type hashMatcher struct {
	password string
}

func (m hashMatcher) Matches(x interface{}) bool {
	hash, ok := x.(string)
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(m.password)) == nil
}

func (m hashMatcher) String() string {
	return "bcrypt hash of password"
}
