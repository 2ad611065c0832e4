package dto

type TaskItem struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	IsDone    bool   `json:"is_done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateTaskRequest struct {
	ID   string  `json:"id" binding:"required,max=64"`
	Text *string `json:"text" binding:"required"`
}

type UpdateCompletionRequest struct {
	IsDone *bool `json:"is_done" binding:"required"`
}
