package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/logger"
)

// StartExpiredCleanupJob periodically deletes expired sessions and reset
// tokens until ctx is cancelled. Lookups never rely on it.
func (s *Service) StartExpiredCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Expired credential cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupExpired(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expired credential cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpired(ctx)
		}
	}
}

func (s *Service) cleanupExpired(ctx context.Context) {
	now := s.now()

	sessions, err := s.sessionRepo.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to delete expired sessions", zap.Error(err))
		return
	}

	tokens, err := s.resetRepo.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to delete expired reset tokens", zap.Error(err))
		return
	}

	logger.Debug("Expired credentials cleaned up",
		zap.Int("sessions", sessions),
		zap.Int("reset_tokens", tokens),
	)
}
