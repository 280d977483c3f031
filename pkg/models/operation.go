package models

import (
	"time"
)

// Mode selects whether computed timestamps are applied
type Mode string

const (
	// ModeDryRun reports intended changes without touching the filesystem
	ModeDryRun Mode = "dry-run"
	// ModeConfirm applies changes
	ModeConfirm Mode = "confirm"
)

// DefaultTolerance absorbs sub-second rounding by filesystems that truncate on write
const DefaultTolerance = time.Second

// StampOperation represents a stamp run configuration
type StampOperation struct {
	ID              string
	RootPath        string
	Mode            Mode
	Tolerance       time.Duration
	ShowDates       bool
	ExcludePatterns []string
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// DryRun reports whether the operation must not write
func (op *StampOperation) DryRun() bool {
	return op.Mode != ModeConfirm
}

// Validate checks if the operation configuration is valid
func (op *StampOperation) Validate() error {
	if op.RootPath == "" {
		return &ValidationError{Field: "RootPath", Message: "root path is required"}
	}
	if op.Mode != ModeDryRun && op.Mode != ModeConfirm {
		return &ValidationError{Field: "Mode", Message: "mode must be dry-run or confirm"}
	}
	if op.Tolerance < 0 {
		return &ValidationError{Field: "Tolerance", Message: "tolerance must not be negative"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PreconditionError is returned when the traversal root is unusable.
// It aborts the run before any directory is visited.
type PreconditionError struct {
	Path string
	Err  error
}

func (e *PreconditionError) Error() string {
	return "invalid root '" + e.Path + "': " + e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}
