package models

import (
	"time"
)

// Action represents what was decided for a directory
type Action string

const (
	// ActionSkip leaves the directory timestamp untouched
	ActionSkip Action = "skip"
	// ActionWouldUpdate is an update that a dry run did not apply
	ActionWouldUpdate Action = "would_update"
	// ActionUpdated is an update applied to the filesystem
	ActionUpdated Action = "updated"
)

// SkipReason explains why a directory was skipped
type SkipReason string

const (
	// SkipWithinTolerance means the target is within the tolerance of the current mtime
	SkipWithinTolerance SkipReason = "within_tolerance"
	// SkipNoContent means the directory has no files and no subdirectories
	SkipNoContent SkipReason = "no_content"
	// SkipListFailed means the directory could not be enumerated
	SkipListFailed SkipReason = "list_failed"
	// SkipStatFailed means the directory's own mtime could not be read
	SkipStatFailed SkipReason = "stat_failed"
	// SkipWriteFailed means the new mtime could not be applied
	SkipWriteFailed SkipReason = "write_failed"
)

// Decision is the outcome of reconciling one directory
type Decision struct {
	// Path is the directory path as displayed to the user (root argument joined)
	Path string

	// RelativePath is the path relative to the traversal root ("." for the root)
	RelativePath string

	// Previous is the mtime the directory had when it was visited
	Previous time.Time

	// Target is the newest content timestamp, or Previous when none exists
	Target time.Time

	// Resolved is the mtime the parent sees for this directory
	Resolved time.Time

	// HasResolved is false when no mtime is known for the directory at all
	HasResolved bool

	// Delta is Target - Previous
	Delta time.Duration

	// Source tells whether Target came from a file or a subdirectory
	Source ContentKind

	Action Action
	Reason SkipReason

	// Err is set for listing, stat and write failures
	Err error
}

// Changed reports whether the decision alters (or would alter) the mtime
func (d Decision) Changed() bool {
	return d.Action == ActionUpdated || d.Action == ActionWouldUpdate
}

// Failed reports whether the decision carries a per-directory error
func (d Decision) Failed() bool {
	return d.Err != nil
}

// ContentKind tags where a directory's newest content timestamp came from
type ContentKind int

const (
	// NoContent means there is neither a file nor a subdirectory to take a timestamp from
	NoContent ContentKind = iota
	// NewestFile means the timestamp is the newest immediate file
	NewestFile
	// NewestSubdir means there were no files and the newest resolved subdirectory was used
	NewestSubdir
)

// String returns the content kind name
func (k ContentKind) String() string {
	switch k {
	case NewestFile:
		return "file"
	case NewestSubdir:
		return "subdir"
	default:
		return "none"
	}
}

// Content is the result of scanning a directory's immediate children
type Content struct {
	Kind    ContentKind
	ModTime time.Time
}
