package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
)

const (
	insertTaskQuery = `
INSERT INTO tasks (id, author, content, is_done, created_at, updated_at)
VALUES (:id, :author, :content, :is_done, :created_at, :updated_at)
`
	selectTaskQuery = `
SELECT id, author, content, is_done, created_at, updated_at
FROM tasks
WHERE id = ?
`
	updateCompletionQuery = `
UPDATE tasks SET is_done = ?, updated_at = ? WHERE id = ?
`
	mysqlDuplicateEntry = 1062
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID        string `db:"id"`
	Author    string `db:"author"`
	Content   string `db:"content"`
	IsDone    bool   `db:"is_done"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToTaskRow(task)); err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateIdentity
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, selectTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("select task: %w", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

// Update locks the row for the duration of the transaction. sqlite has no
// row locks; its single connection already serializes writers.
func (r *TaskRepository) Update(ctx context.Context, id string, mutate ports.MutateFunc) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row taskRow
	if err := tx.GetContext(ctx, &row, r.selectForUpdateQuery(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("select task for update: %w", err)
	}

	task := mapTaskRowToDomainTask(row)
	if err := mutate(&task); err != nil {
		return domain.Task{}, err
	}

	if _, err := tx.ExecContext(ctx, updateCompletionQuery, task.IsDone, task.UpdatedAt.UnixMicro(), id); err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, fmt.Errorf("commit task update: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *TaskRepository) selectForUpdateQuery() string {
	if r.db.DriverName() == "mysql" {
		return selectTaskQuery + "FOR UPDATE"
	}
	return selectTaskQuery
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	return taskRow{
		ID:        task.ID,
		Author:    task.Author,
		Content:   task.Text,
		IsDone:    task.IsDone,
		CreatedAt: task.CreatedAt.UnixMicro(),
		UpdatedAt: task.UpdatedAt.UnixMicro(),
	}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	return domain.Task{
		ID:        row.ID,
		Author:    row.Author,
		Text:      row.Content,
		IsDone:    row.IsDone,
		CreatedAt: time.UnixMicro(row.CreatedAt).UTC(),
		UpdatedAt: time.UnixMicro(row.UpdatedAt).UTC(),
	}
}
