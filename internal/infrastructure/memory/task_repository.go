package memory

import (
	"context"

	"github.com/Ansy5566/ctosaas/internal/domain/task"
)

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.tasks.Set(t.ID, t.Clone())
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, taskID string) (*task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tasks.Get(taskID)
	if !ok || t.UserID != userID {
		return nil, task.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]*task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]*task.Task, 0)
	r.store.tasks.Each(func(_ string, t *task.Task) bool {
		if t.UserID == userID {
			tasks = append(tasks, t.Clone())
		}
		return true
	})
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, fn func(*task.Task) error) (*task.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.tasks.Get(taskID)
	if !ok || t.UserID != userID {
		return nil, task.ErrTaskNotFound
	}

	working := t.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	r.store.tasks.Set(taskID, working)
	return working.Clone(), nil
}
