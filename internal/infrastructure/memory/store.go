package memory

import (
	"sync"
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/export"
	"github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/domain/session"
	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	"github.com/Ansy5566/ctosaas/internal/domain/system"
	"github.com/Ansy5566/ctosaas/internal/domain/task"
	"github.com/Ansy5566/ctosaas/internal/domain/user"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// Store holds every collection of the service in process memory. One lock
// guards all of them so operations spanning collections stay atomic.
type Store struct {
	mu sync.RWMutex

	users         *orderedMap[string, *user.User]
	usersByEmail  map[string]string
	subscriptions map[string]*subscription.Subscription // keyed by user id
	sessions      *orderedMap[string, *session.Session]
	resetTokens   *orderedMap[string, *user.PasswordResetToken]

	tasks    *orderedMap[string, *task.Task]
	products *orderedMap[string, *product.Product]
	exports  *orderedMap[string, *export.Record]

	announcements []system.Announcement
	changelog     []system.ChangelogEntry
}

// NewStore returns an empty store with the default feed entries.
func NewStore() *Store {
	now := time.Now().UTC()

	return &Store{
		users:         newOrderedMap[string, *user.User](),
		usersByEmail:  make(map[string]string),
		subscriptions: make(map[string]*subscription.Subscription),
		sessions:      newOrderedMap[string, *session.Session](),
		resetTokens:   newOrderedMap[string, *user.PasswordResetToken](),
		tasks:         newOrderedMap[string, *task.Task](),
		products:      newOrderedMap[string, *product.Product](),
		exports:       newOrderedMap[string, *export.Record](),
		announcements: []system.Announcement{
			{
				ID:        utils.NewID(utils.PrefixAnnouncement),
				Title:     "Welcome to the product collection SaaS platform",
				Content:   "This is a demo build. Collection tasks generate sample products so the dashboard and API can be tried end to end.",
				Type:      system.AnnouncementInfo,
				CreatedAt: now,
			},
		},
		changelog: []system.ChangelogEntry{
			{
				ID:          utils.NewID(utils.PrefixChangelog),
				Version:     "0.1.0",
				Title:       "Initial release",
				Description: "Core pages and APIs wired together (auth, tasks, products, export, settings).",
				Changes: []string{
					"Added authentication API",
					"Added collection task API",
					"Added product management API",
					"Added export API",
				},
				PublishedAt: now,
			},
		},
	}
}

// deleteUserLocked removes the user and everything it owns. Caller holds s.mu.
func (s *Store) deleteUserLocked(userID string) {
	s.sessions.DeleteFunc(func(_ string, sess *session.Session) bool { return sess.UserID == userID })
	s.resetTokens.DeleteFunc(func(_ string, t *user.PasswordResetToken) bool { return t.UserID == userID })
	s.tasks.DeleteFunc(func(_ string, t *task.Task) bool { return t.UserID == userID })
	s.products.DeleteFunc(func(_ string, p *product.Product) bool { return p.UserID == userID })
	s.exports.DeleteFunc(func(_ string, e *export.Record) bool { return e.UserID == userID })

	delete(s.subscriptions, userID)
	if u, ok := s.users.Get(userID); ok {
		delete(s.usersByEmail, u.Email)
	}
	s.users.Delete(userID)
}

var (
	_ user.Repository           = (*UserRepository)(nil)
	_ user.ResetTokenRepository = (*ResetTokenRepository)(nil)
	_ session.Repository        = (*SessionRepository)(nil)
	_ subscription.Repository   = (*SubscriptionRepository)(nil)
	_ task.Repository           = (*TaskRepository)(nil)
	_ product.Repository        = (*ProductRepository)(nil)
	_ export.Repository         = (*ExportRepository)(nil)
	_ system.Repository         = (*SystemRepository)(nil)
)
