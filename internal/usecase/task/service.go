package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	domainTask "github.com/Ansy5566/ctosaas/internal/domain/task"
	"github.com/Ansy5566/ctosaas/internal/logger"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// Service implements collection task use cases
type Service struct {
	taskRepo         domainTask.Repository
	productRepo      product.Repository
	subscriptionRepo subscription.Repository
	collector        Collector

	enforceQuota bool
	now          func() time.Time
}

func NewService(
	taskRepo domainTask.Repository,
	productRepo product.Repository,
	subscriptionRepo subscription.Repository,
	collector Collector,
	enforceQuota bool,
) *Service {
	return &Service{
		taskRepo:         taskRepo,
		productRepo:      productRepo,
		subscriptionRepo: subscriptionRepo,
		collector:        collector,
		enforceQuota:     enforceQuota,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreateTask debits the quota, records the task as completed and stores the
// collected products. Collection is synchronous.
func (s *Service) CreateTask(ctx context.Context, userID string, req *CreateTaskRequest) (*domainTask.Task, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	collectionType := domainTask.CollectionType(req.Type)
	total := collectionType.ProductCount()

	if _, err := s.subscriptionRepo.Consume(ctx, userID, total, s.enforceQuota); err != nil {
		if errors.Is(err, appErrors.ErrQuotaExceeded) {
			logger.Warn("Task rejected by quota",
				zap.String("user_id", userID),
				zap.Int("requested", total),
				logger.Event("task_quota_exceeded"),
			)
		}
		return nil, err
	}

	now := s.now()
	t := &domainTask.Task{
		ID:                utils.NewID(utils.PrefixTask),
		UserID:            userID,
		Platform:          domainTask.Platform(req.Platform),
		Type:              collectionType,
		URL:               req.URL,
		Status:            domainTask.StatusCompleted,
		Progress:          100,
		TotalProducts:     total,
		CollectedProducts: total,
		CreatedAt:         now,
		UpdatedAt:         now,
		CompletedAt:       &now,
	}

	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	products, err := s.collector.Collect(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to collect products: %w", err)
	}
	if err := s.productRepo.CreateMany(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to store products: %w", err)
	}

	logger.Info("Collection task created",
		zap.String("user_id", userID),
		zap.String("task_id", t.ID),
		zap.String("platform", string(t.Platform)),
		zap.String("type", string(t.Type)),
		zap.Int("products", len(products)),
		logger.Event("task_created"),
	)

	return t, nil
}

// ListTasks returns the user's tasks, newest first.
func (s *Service) ListTasks(ctx context.Context, userID string) ([]*domainTask.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *Service) GetTask(ctx context.Context, userID, taskID string) (*domainTask.Task, error) {
	return s.taskRepo.Get(ctx, userID, taskID)
}

// CancelTask moves the task to cancelled when its state allows it and
// otherwise returns it unchanged.
func (s *Service) CancelTask(ctx context.Context, userID, taskID string) (*domainTask.Task, error) {
	cancelled := false

	t, err := s.taskRepo.Update(ctx, userID, taskID, func(t *domainTask.Task) error {
		if !domainTask.CanTransition(t.Status, domainTask.StatusCancelled) {
			return nil
		}
		t.Status = domainTask.StatusCancelled
		t.UpdatedAt = s.now()
		cancelled = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled {
		logger.Info("Collection task cancelled",
			zap.String("user_id", userID),
			zap.String("task_id", taskID),
			logger.Event("task_cancelled"),
		)
	}
	return t, nil
}
