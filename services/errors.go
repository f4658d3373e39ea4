package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"restaurant/entity"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid state or already updated")
	ErrOrderClosed        = errors.New("order is already closed")
	ErrTableOccupied      = errors.New("table already has an active order")
	ErrInUse              = errors.New("record is referenced by existing orders")
)

// ValidationError carries per-field messages for re-rendering a form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// lookup maps gorm's not-found error onto ErrNotFound and wraps the rest.
func lookup(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// TableNotifier is told about every table status change after it commits.
type TableNotifier interface {
	TableChanged(t entity.Table)
}
