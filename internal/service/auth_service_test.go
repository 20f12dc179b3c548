package service

import (
	"context"
	"testing"

	"getscience-be/internal/dto"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/memory"
	"getscience-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		FullName: "Ada Lovelace",
		Role:     "organizer",
	}
}

func TestRegisterVerifyLogin(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewAuthService(factory, nil)

	created, err := svc.Register(ctx, registerRequest("ada@example.com"))
	require.NoError(t, err)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, registerRequest("ada@example.com"))
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 409, appErr.StatusCode)
	})

	t.Run("login before verification fails", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse-battery"})
		require.Error(t, err)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		err := svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "ada@example.com", Code: "000000"})
		require.Error(t, err)
	})

	// Pull the OTP straight out of the store, the way the email would
	// carry it.
	token, err := factory.UoW.Users.FindEmailVerificationToken(ctx,
		specification.ByUserID{UserID: created.Id},
	)
	require.NoError(t, err)
	require.NotNil(t, token)

	t.Run("verify activates the account", func(t *testing.T) {
		require.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "ada@example.com", Code: token.Token}))

		profile, err := svc.Me(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, "active", profile.Status)
		assert.Equal(t, "organizer", profile.Role)
	})

	t.Run("verify twice is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "ada@example.com", Code: "anything"}))
	})

	t.Run("login succeeds after verification", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse-battery"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "nope"})
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)
	})

	t.Run("unknown user gets the same error as wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "nope"})
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)
	})
}
