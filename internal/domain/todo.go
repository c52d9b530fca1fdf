package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Todo is the single persisted entity: a task with a title and completion flag.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// UpdateTodoParams describes a coalescing update.
// A nil field keeps the stored value.
type UpdateTodoParams struct {
	ID        int64
	Title     *Title
	Completed *bool
}

// Title is a validated todo title.
// Validation trims surrounding whitespace but the value is kept as given.
type Title struct {
	value string
}

// NewTitle creates a new Title, rejecting blank input.
func NewTitle(s string) (Title, error) {
	if strings.TrimSpace(s) == "" {
		return Title{}, ErrTitleRequired
	}
	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// ParseID parses a path identifier into a todo ID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return id, nil
}
