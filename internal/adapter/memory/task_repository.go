package memory

import (
	"context"
	"hash/fnv"
	"sync"

	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
)

const defaultShardCount = 32

type shard struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// TaskRepository keeps tasks in process memory. Each identity hashes to one
// shard, so writers on different shards never wait on each other.
type TaskRepository struct {
	shards []*shard
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return NewTaskRepositoryWithShards(defaultShardCount)
}

func NewTaskRepositoryWithShards(count int) *TaskRepository {
	if count < 1 {
		count = 1
	}
	shards := make([]*shard, count)
	for i := range shards {
		shards[i] = &shard{tasks: make(map[string]domain.Task)}
	}
	return &TaskRepository{shards: shards}
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.shardFor(task.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return domain.ErrDuplicateIdentity
	}
	s.tasks[task.ID] = task
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s := r.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, mutate ports.MutateFunc) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	s := r.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	// mutate works on a copy; the stored value changes only on success.
	next := current
	if err := mutate(&next); err != nil {
		return domain.Task{}, err
	}
	s.tasks[id] = next
	return next, nil
}

func (r *TaskRepository) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func (r *TaskRepository) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return r.shards[h.Sum32()%uint32(len(r.shards))]
}
