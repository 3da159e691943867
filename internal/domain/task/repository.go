package task

import "context"

// Repository defines the interface for task repository operations.
// Lookups are scoped to the owner; a task of another user is ErrTaskNotFound.
type Repository interface {
	Create(ctx context.Context, task *Task) error
	Get(ctx context.Context, userID, taskID string) (*Task, error)
	ListByUser(ctx context.Context, userID string) ([]*Task, error)
	// Update applies fn to the stored task while holding the store lock.
	Update(ctx context.Context, userID, taskID string, fn func(*Task) error) (*Task, error)
}
