package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/domain/session"
	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	domainUser "github.com/Ansy5566/ctosaas/internal/domain/user"
	"github.com/Ansy5566/ctosaas/internal/logger"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// Service implements registration, login, password reset and sessions
type Service struct {
	userRepo    domainUser.Repository
	resetRepo   domainUser.ResetTokenRepository
	sessionRepo session.Repository

	secret     string
	sessionTTL time.Duration
	resetTTL   time.Duration

	now func() time.Time
}

func NewService(
	userRepo domainUser.Repository,
	resetRepo domainUser.ResetTokenRepository,
	sessionRepo session.Repository,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		sessionRepo: sessionRepo,
		secret:      cfg.Session.Secret,
		sessionTTL:  cfg.SessionTTL(),
		resetTTL:    cfg.ResetTokenTTL(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for expiry decisions.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*domainUser.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	email := utils.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return nil, appErrors.ErrMissingField
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domainUser.User{
		ID:           utils.NewID(utils.PrefixUser),
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sub := subscription.NewFree(utils.NewID(utils.PrefixSubscription), user.ID, now)

	if err := s.userRepo.Create(ctx, user, sub); err != nil {
		if errors.Is(err, domainUser.ErrDuplicateEmail) {
			logger.Warn("Registration attempt with existing email",
				zap.String("email", email),
				logger.Event("registration_failed_duplicate_email"),
			)
		}
		return nil, err
	}
	user.Subscription = sub

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		logger.Event("user_registered"),
	)

	return user, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*domainUser.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	return s.VerifyUser(ctx, req.Email, req.Password)
}

// VerifyUser checks a password. Unknown emails and wrong passwords fail with
// the same error.
func (s *Service) VerifyUser(ctx context.Context, email, password string) (*domainUser.User, error) {
	email = utils.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", email),
				logger.Event("login_failed_unknown_email"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID),
			logger.Event("login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID),
		logger.Event("login_success"),
	)

	return user, nil
}

// ForgotPassword always returns a token-shaped value so callers cannot probe
// which emails are registered. Only tokens for real users are stored.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	email := utils.NormalizeEmail(req.Email)
	token := utils.NewID(utils.PrefixReset)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				logger.Event("password_reset_requested_non_existent_email"),
			)
			return &ForgotPasswordResponse{Token: token}, nil
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	resetToken := &domainUser.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.resetRepo.Create(ctx, resetToken); err != nil {
		return nil, fmt.Errorf("failed to create reset token: %w", err)
	}

	logger.Info("Password reset token generated",
		zap.String("user_id", user.ID),
		zap.Time("expires_at", resetToken.ExpiresAt),
		logger.Event("password_reset_token_generated"),
	)

	// No mail delivery; the token goes back in the response.
	return &ForgotPasswordResponse{Token: token}, nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(utils.ValidationMessage(err), err)
	}

	resetToken, err := s.resetRepo.Get(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domainUser.ErrResetTokenNotFound) {
			return appErrors.ErrInvalidToken
		}
		return fmt.Errorf("failed to retrieve reset token: %w", err)
	}

	if resetToken.IsExpired(s.now()) {
		if err := s.resetRepo.Delete(ctx, resetToken.Token); err != nil {
			return fmt.Errorf("failed to delete expired reset token: %w", err)
		}
		logger.Info("Expired password reset token used",
			zap.String("user_id", resetToken.UserID),
			logger.Event("password_reset_token_expired"),
		)
		return appErrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, resetToken.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrInvalidToken
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.resetRepo.Delete(ctx, resetToken.Token); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", user.ID),
		logger.Event("password_reset_success"),
	)

	return nil
}
