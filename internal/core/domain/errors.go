package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrTextTooLong       = fmt.Errorf("%w: text is too long", ErrInvalidInput)
	ErrDuplicateIdentity = errors.New("task identity already in use")
	ErrTaskNotFound      = errors.New("task not found")
	ErrUnauthorized      = errors.New("caller is not the task author")
)
