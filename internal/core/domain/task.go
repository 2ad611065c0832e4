package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxTextLength is counted in characters, not bytes.
	MaxTextLength = 400
	// MaxIdentityLength is counted in bytes.
	MaxIdentityLength = 64
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

type Task struct {
	ID        string
	Author    string
	Text      string
	IsDone    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateTaskInput struct {
	ID     string
	Text   string
	Author string
}

func (t Task) Status() TaskStatus {
	if t.IsDone {
		return TaskStatusDone
	}
	return TaskStatusPending
}

// NewTask validates the input and builds a pending task stamped with now.
func NewTask(in CreateTaskInput, now time.Time) (Task, error) {
	if err := ValidateIdentity(in.ID); err != nil {
		return Task{}, err
	}
	if err := ValidateAuthor(in.Author); err != nil {
		return Task{}, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return Task{}, ErrInvalidInput
	}
	if utf8.RuneCountInString(in.Text) > MaxTextLength {
		return Task{}, ErrTextTooLong
	}

	return Task{
		ID:        in.ID,
		Author:    in.Author,
		Text:      in.Text,
		IsDone:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateIdentity accepts 1 to MaxIdentityLength bytes of [A-Za-z0-9._~-],
// so every identity fits in a single URL path segment unescaped.
func ValidateIdentity(id string) error {
	if id == "" || len(id) > MaxIdentityLength {
		return ErrInvalidInput
	}
	for i := 0; i < len(id); i++ {
		if !isIdentityByte(id[i]) {
			return ErrInvalidInput
		}
	}
	return nil
}

func isIdentityByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '.', c == '_', c == '~', c == '-':
		return true
	}
	return false
}

// ValidateAuthor checks a caller identity. Authors are opaque and are not
// limited to the task identity charset.
func ValidateAuthor(author string) error {
	if author == "" || len(author) > MaxIdentityLength || strings.TrimSpace(author) != author {
		return ErrInvalidInput
	}
	return nil
}

// Authorize reports ErrUnauthorized unless caller is the task author.
func (t Task) Authorize(caller string) error {
	if caller == "" || caller != t.Author {
		return ErrUnauthorized
	}
	return nil
}

// SetCompletion always refreshes UpdatedAt, even when done is unchanged.
func (t *Task) SetCompletion(done bool, now time.Time) {
	t.IsDone = done
	t.touch(now)
}

func (t *Task) ToggleCompletion(now time.Time) {
	t.IsDone = !t.IsDone
	t.touch(now)
}

// touch never moves UpdatedAt backwards.
func (t *Task) touch(now time.Time) {
	if now.Before(t.UpdatedAt) {
		return
	}
	t.UpdatedAt = now
}
