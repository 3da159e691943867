package system

import (
	"context"
	"time"
)

type AnnouncementType string

const (
	AnnouncementInfo    AnnouncementType = "info"
	AnnouncementWarning AnnouncementType = "warning"
	AnnouncementSuccess AnnouncementType = "success"
)

type Announcement struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Type      AnnouncementType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}

type ChangelogEntry struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Changes     []string  `json:"changes"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Repository serves the read-only feeds
type Repository interface {
	Announcements(ctx context.Context) ([]Announcement, error)
	Changelog(ctx context.Context) ([]ChangelogEntry, error)
}
