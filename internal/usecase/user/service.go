package user

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	"github.com/Ansy5566/ctosaas/internal/domain/task"
	domainUser "github.com/Ansy5566/ctosaas/internal/domain/user"
	"github.com/Ansy5566/ctosaas/internal/logger"
)

const recentTaskCount = 5

// Service implements the account use cases of a signed-in user
type Service struct {
	userRepo         domainUser.Repository
	subscriptionRepo subscription.Repository
	taskRepo         task.Repository
	productRepo      product.Repository

	now func() time.Time
}

func NewService(
	userRepo domainUser.Repository,
	subscriptionRepo subscription.Repository,
	taskRepo task.Repository,
	productRepo product.Repository,
) *Service {
	return &Service{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		taskRepo:         taskRepo,
		productRepo:      productRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*domainUser.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update. A blank name keeps the current
// one; a blank avatar clears it.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domainUser.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			user.Name = name
		}
	}
	if req.Avatar != nil {
		if avatar := strings.TrimSpace(*req.Avatar); avatar != "" {
			user.Avatar = &avatar
		} else {
			user.Avatar = nil
		}
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User profile updated",
		zap.String("user_id", user.ID),
		logger.Event("profile_updated"),
	)

	return user, nil
}

func (s *Service) GetSubscription(ctx context.Context, userID string) (*subscription.Subscription, error) {
	return s.subscriptionRepo.GetByUserID(ctx, userID)
}

func (s *Service) GetStatistics(ctx context.Context, userID string) (*Statistics, error) {
	products, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	stats := &Statistics{
		TotalProducts:      len(products),
		TotalTasks:         len(tasks),
		ProductsByPlatform: make(map[task.Platform]int, len(task.Platforms)),
	}
	for _, p := range task.Platforms {
		stats.ProductsByPlatform[p] = 0
	}
	for _, p := range products {
		stats.ProductsByPlatform[p.Platform]++
	}

	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			stats.CompletedTasks++
		case task.StatusFailed:
			stats.FailedTasks++
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	stats.RecentTasks = tasks[:min(recentTaskCount, len(tasks))]

	return stats, nil
}

// DeleteAccount removes the user together with sessions, reset tokens,
// tasks, products, exports and the subscription.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info("User account deleted",
		zap.String("user_id", userID),
		logger.Event("account_deleted"),
	)
	return nil
}
