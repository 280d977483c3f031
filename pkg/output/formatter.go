package output

import (
	"fmt"
	"time"

	"github.com/sdejongh/dirstamp/pkg/models"
)

// Formatter defines the interface for output formatting
// Implementations include human-readable, progress and JSON formatters
type Formatter interface {
	// Start initializes the formatter for a new stamp run
	Start(op *models.StampOperation) error

	// Decision reports one directory outcome, in post-order
	Decision(d *models.Decision) error

	// Complete finalizes output and displays the summary
	Complete(report *models.StampReport) error

	// Error reports a run-level error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

const timestampLayout = "2006-01-02 15:04:05 UTC"

// FormatTimestamp renders t in UTC with second precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// FormatDays renders a signed delta as fractional days, e.g. "-412.3 days"
func FormatDays(d time.Duration) string {
	return fmt.Sprintf("%+.1f days", d.Hours()/24)
}

// failureLabel names the step that failed for a skipped directory
func failureLabel(reason models.SkipReason) string {
	switch reason {
	case models.SkipListFailed:
		return "child scan failed"
	case models.SkipStatFailed:
		return "mtime read failed"
	case models.SkipWriteFailed:
		return "set mtime failed"
	default:
		return string(reason)
	}
}
