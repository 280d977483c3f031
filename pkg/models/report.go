package models

import (
	"time"
)

// StampReport represents the results of a stamp run
type StampReport struct {
	// Operation details
	OperationID string
	RootPath    string
	Mode        Mode

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Decisions in post-order traversal order
	Decisions []Decision

	// Errors encountered
	Errors []StampError

	// Overall status
	Status StampStatus
}

// DryRun reports whether the run was a dry run
func (r *StampReport) DryRun() bool {
	return r.Mode != ModeConfirm
}

// Changed returns the number of directories updated or that would be updated
func (r *StampReport) Changed() int {
	return r.Stats.DirsUpdated + r.Stats.DirsWouldUpdate
}

// Statistics holds stamp run metrics
type Statistics struct {
	DirsScanned     int
	DirsUpdated     int
	DirsWouldUpdate int
	DirsSkipped     int
	DirsEmpty       int // Skipped because they have no content
	DirsErrored     int

	FilesScanned      int
	EntriesUnreadable int // Entries whose metadata could not be read
	EntriesExcluded   int
}

// Record updates the counters for one decision
func (s *Statistics) Record(d *Decision) {
	s.DirsScanned++
	switch d.Action {
	case ActionUpdated:
		s.DirsUpdated++
	case ActionWouldUpdate:
		s.DirsWouldUpdate++
	default:
		s.DirsSkipped++
		if d.Reason == SkipNoContent {
			s.DirsEmpty++
		}
	}
	if d.Err != nil {
		s.DirsErrored++
	}
}

// StampStatus represents the overall result
type StampStatus string

const (
	// StatusSuccess indicates every directory was processed without error
	StatusSuccess StampStatus = "success"
	// StatusPartial indicates some directories failed
	StatusPartial StampStatus = "partial"
	// StatusFailed indicates the run could not start
	StatusFailed StampStatus = "failed"
	// StatusCancelled indicates the run was interrupted
	StatusCancelled StampStatus = "cancelled"
)

// StampError represents a per-directory error
type StampError struct {
	Path      string
	Reason    SkipReason
	Error     string
	Timestamp time.Time
}

// ExitCode returns the appropriate exit code for the stamp status
func (s StampStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
