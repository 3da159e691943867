package system

import (
	"context"

	domainSystem "github.com/Ansy5566/ctosaas/internal/domain/system"
)

// Service serves the public announcement and changelog feeds
type Service struct {
	repo domainSystem.Repository
}

func NewService(repo domainSystem.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Announcements(ctx context.Context) ([]domainSystem.Announcement, error) {
	return s.repo.Announcements(ctx)
}

func (s *Service) Changelog(ctx context.Context) ([]domainSystem.ChangelogEntry, error) {
	return s.repo.Changelog(ctx)
}
