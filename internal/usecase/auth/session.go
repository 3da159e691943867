package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/domain/session"
	domainUser "github.com/Ansy5566/ctosaas/internal/domain/user"
	"github.com/Ansy5566/ctosaas/internal/logger"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

func (s *Service) CreateSession(ctx context.Context, userID string) (*session.Session, error) {
	now := s.now()
	sess := &session.Session{
		ID:        utils.NewID(utils.PrefixSession),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// StartSession creates a session for userID and returns the signed
// credential handed to the client.
func (s *Service) StartSession(ctx context.Context, userID string) (string, *session.Session, error) {
	sess, err := s.CreateSession(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	credential, err := utils.GenerateSessionToken(sess.ID, sess.CreatedAt, sess.ExpiresAt, s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session credential: %w", err)
	}
	return credential, sess, nil
}

// DestroySession is idempotent.
func (s *Service) DestroySession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ResolveUser returns the owner of a live session, or nil when the id is
// empty, unknown or expired. Expired sessions are deleted on the way.
func (s *Service) ResolveUser(ctx context.Context, sessionID string) (*domainUser.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !sess.IsValid(s.now()) {
		if err := s.sessionRepo.Delete(ctx, sess.ID); err != nil {
			return nil, err
		}
		logger.Debug("Expired session removed",
			zap.String("user_id", sess.UserID),
			logger.Event("session_expired"),
		)
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) RequireUser(ctx context.Context, sessionID string) (*domainUser.User, error) {
	user, err := s.ResolveUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return user, nil
}

// SessionID extracts the session id from a signed credential. A credential
// that fails verification yields "" so it resolves to no session.
func (s *Service) SessionID(credential string) string {
	if credential == "" {
		return ""
	}
	sid, err := utils.ValidateSessionToken(credential, s.secret)
	if err != nil {
		return ""
	}
	return sid
}

// Authenticate resolves a signed credential to its user. Errors are
// Unauthorized when the credential does not lead to a live session.
func (s *Service) Authenticate(ctx context.Context, credential string) (*domainUser.User, error) {
	return s.RequireUser(ctx, s.SessionID(credential))
}
