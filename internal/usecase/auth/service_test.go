package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	domainUser "github.com/Ansy5566/ctosaas/internal/domain/user"
	"github.com/Ansy5566/ctosaas/internal/infrastructure/memory"
	"github.com/Ansy5566/ctosaas/internal/logger"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
)

type fixture struct {
	store   *memory.Store
	service *Service
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store: store,
		service: NewService(
			memory.NewUserRepository(store),
			memory.NewResetTokenRepository(store),
			memory.NewSessionRepository(store),
			config.Default(),
		),
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service.SetClock(func() time.Time { return f.now })
	return f
}

func (f *fixture) register(t *testing.T, email, password, name string) *domainUser.User {
	t.Helper()
	u, err := f.service.Register(context.Background(), &RegisterRequest{Email: email, Password: password, Name: name})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	u := f.register(t, "  Alice@Example.COM ", "secret123", "  Alice ")

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", u.Name)
	assert.Contains(t, u.ID, "usr_")
	require.NotNil(t, u.Subscription)
	assert.Equal(t, subscription.PlanFree, u.Subscription.Plan)
	assert.Equal(t, 0, u.Subscription.Quota.Used)
	assert.Equal(t, 100, u.Subscription.Quota.Total)
	assert.Equal(t, f.now.AddDate(0, 0, 30), u.Subscription.EndDate)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123", "Alice")

	_, err := f.service.Register(context.Background(), &RegisterRequest{Email: "ALICE@example.com", Password: "x", Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
	assert.Equal(t, appErrors.CodeDuplicate, appErrors.CodeOf(err))
}

func TestRegister_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Register(context.Background(), &RegisterRequest{Email: "a@example.com", Password: "x"})
	assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))

	_, err = f.service.Register(context.Background(), &RegisterRequest{Email: "a@example.com", Password: "x", Name: "   "})
	assert.ErrorIs(t, err, appErrors.ErrMissingField)
}

func TestVerifyUser_SameErrorForUnknownAndWrongPassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "alice@example.com", "secret123", "Alice")
	ctx := context.Background()

	got, err := f.service.VerifyUser(ctx, "ALICE@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, wrongPassword := f.service.VerifyUser(ctx, "alice@example.com", "secret124")
	_, unknownEmail := f.service.VerifyUser(ctx, "bob@example.com", "secret123")

	assert.ErrorIs(t, wrongPassword, appErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, appErrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, appErrors.KindUnauthorized, appErrors.KindOf(wrongPassword))
}

func TestForgotPassword_UnknownEmailStillReturnsToken(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Contains(t, res.Token, "reset_")

	err = f.service.ResetPassword(context.Background(), &ResetPasswordRequest{Token: res.Token, NewPassword: "new"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestForgotPassword_TokenStaysOutOfLogs(t *testing.T) {
	prev := logger.Logger
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(prev) })

	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123", "Alice")

	res, err := f.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	require.NotZero(t, logs.FilterField(logger.Event("password_reset_token_generated")).Len())
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			assert.NotEqual(t, res.Token, v)
		}
	}
}

func TestResetPassword_SingleUse(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "old-password", "Alice")
	ctx := context.Background()

	res, err := f.service.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "Alice@example.com"})
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	require.NoError(t, f.service.ResetPassword(ctx, &ResetPasswordRequest{Token: res.Token, NewPassword: "new-password"}))

	_, err = f.service.VerifyUser(ctx, "alice@example.com", "old-password")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	u, err := f.service.VerifyUser(ctx, "alice@example.com", "new-password")
	require.NoError(t, err)
	assert.Equal(t, f.now, u.UpdatedAt)

	err = f.service.ResetPassword(ctx, &ResetPasswordRequest{Token: res.Token, NewPassword: "again"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestResetPassword_Expired(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "old-password", "Alice")
	ctx := context.Background()

	res, err := f.service.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	f.now = f.now.Add(25 * time.Hour)
	err = f.service.ResetPassword(ctx, &ResetPasswordRequest{Token: res.Token, NewPassword: "new-password"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = memory.NewResetTokenRepository(f.store).Get(ctx, res.Token)
	assert.ErrorIs(t, err, domainUser.ErrResetTokenNotFound)
}
