package mapper

import (
	"time"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/core/domain"
)

func ToTaskItem(task domain.Task) dto.TaskItem {
	return dto.TaskItem{
		ID:        task.ID,
		Author:    task.Author,
		Text:      task.Text,
		IsDone:    task.IsDone,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
