package validation

import (
	"errors"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput binds the author to the authenticated caller; the
// payload never carries it.
func BuildCreateTaskInput(req dto.CreateTaskRequest, caller string) (domain.CreateTaskInput, error) {
	if req.Text == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if err := domain.ValidateIdentity(req.ID); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.CreateTaskInput{
		ID:     req.ID,
		Text:   *req.Text,
		Author: caller,
	}, nil
}

func CompletionValue(req dto.UpdateCompletionRequest) (bool, error) {
	if req.IsDone == nil {
		return false, ErrInvalidTaskPayload
	}
	return *req.IsDone, nil
}

// TaskID validates an identity taken from the request path. Create and path
// lookups share the same rule, so a created id is always addressable.
func TaskID(raw string) (string, error) {
	if err := domain.ValidateIdentity(raw); err != nil {
		return "", ErrInvalidTaskPayload
	}
	return raw, nil
}
