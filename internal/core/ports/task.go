package ports

import (
	"context"

	"todolist/internal/core/domain"
)

// MutateFunc edits a task in place. Returning an error discards the edit.
type MutateFunc func(task *domain.Task) error

type TaskRepository interface {
	Insert(ctx context.Context, task domain.Task) error
	Get(ctx context.Context, id string) (domain.Task, error)
	// Update runs mutate with exclusive access to the task identified by id
	// and persists the result as a single write.
	Update(ctx context.Context, id string, mutate MutateFunc) (domain.Task, error)
	PingContext(ctx context.Context) error
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	SetCompletion(ctx context.Context, id string, done bool, caller string) (domain.Task, error)
	ToggleCompletion(ctx context.Context, id string, caller string) (domain.Task, error)
	DeleteTask(ctx context.Context, id string, caller string) (domain.Task, error)
}
