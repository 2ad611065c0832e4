package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
)

type Clock func() time.Time

type TaskService struct {
	taskRepository ports.TaskRepository
	now            Clock
}

type Option func(*TaskService)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(clock Clock) Option {
	return func(s *TaskService) {
		s.now = clock
	}
}

func NewTaskService(taskRepository ports.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		taskRepository: taskRepository,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	task, err := domain.NewTask(input, s.timestamp())
	if err != nil {
		return domain.Task{}, err
	}

	if err := s.taskRepository.Insert(ctx, task); err != nil {
		return domain.Task{}, err
	}

	zap.L().Info("task created",
		zap.String("task_id", task.ID),
		zap.String("author", task.Author),
		zap.String("status", string(task.Status())),
		zap.Time("created_at", task.CreatedAt),
	)
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	if err := domain.ValidateIdentity(id); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.Get(ctx, id)
}

func (s *TaskService) SetCompletion(ctx context.Context, id string, done bool, caller string) (domain.Task, error) {
	task, err := s.mutate(ctx, id, caller, func(task *domain.Task, now time.Time) {
		task.SetCompletion(done, now)
	})
	if err != nil {
		return domain.Task{}, err
	}

	zap.L().Info("task completion updated", zap.String("task_id", id), zap.String("status", string(task.Status())))
	return task, nil
}

func (s *TaskService) ToggleCompletion(ctx context.Context, id string, caller string) (domain.Task, error) {
	task, err := s.mutate(ctx, id, caller, func(task *domain.Task, now time.Time) {
		task.ToggleCompletion(now)
	})
	if err != nil {
		return domain.Task{}, err
	}

	zap.L().Info("task completion toggled", zap.String("task_id", id), zap.String("status", string(task.Status())))
	return task, nil
}

// DeleteTask is a soft delete: the record is kept and marked done.
func (s *TaskService) DeleteTask(ctx context.Context, id string, caller string) (domain.Task, error) {
	task, err := s.mutate(ctx, id, caller, func(task *domain.Task, now time.Time) {
		task.SetCompletion(true, now)
	})
	if err != nil {
		return domain.Task{}, err
	}

	zap.L().Info("task marked as deleted",
		zap.String("task_id", id),
		zap.String("status", string(task.Status())),
		zap.Time("updated_at", task.UpdatedAt),
	)
	return task, nil
}

func (s *TaskService) mutate(
	ctx context.Context,
	id string,
	caller string,
	apply func(task *domain.Task, now time.Time),
) (domain.Task, error) {
	if err := domain.ValidateIdentity(id); err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.Update(ctx, id, func(task *domain.Task) error {
		if err := task.Authorize(caller); err != nil {
			return err
		}
		apply(task, s.timestamp())
		return nil
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, err)
	}
	return task, nil
}

// timestamp is truncated to what every repository can store.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

var _ ports.TaskService = (*TaskService)(nil)
