// Package stamp sets directory modification times from their newest content,
// walking the tree bottom-up so a parent sees its children's final timestamps.
package stamp

import (
	"context"
	"time"

	"github.com/sdejongh/dirstamp/pkg/models"
)

// TimeSetter is the write primitive used in confirm mode
type TimeSetter interface {
	SetModTime(ctx context.Context, path string, mtime time.Time) error
}

// ScanContent picks a directory's newest content timestamp.
// Files win whenever there is at least one, even if a subdirectory is newer.
func ScanContent(files, subdirs []time.Time) models.Content {
	if newest, ok := latest(files); ok {
		return models.Content{Kind: models.NewestFile, ModTime: newest}
	}
	if newest, ok := latest(subdirs); ok {
		return models.Content{Kind: models.NewestSubdir, ModTime: newest}
	}
	return models.Content{Kind: models.NoContent}
}

func latest(times []time.Time) (time.Time, bool) {
	if len(times) == 0 {
		return time.Time{}, false
	}
	newest := times[0]
	for _, t := range times[1:] {
		if t.After(newest) {
			newest = t
		}
	}
	return newest, true
}

// Reconciler decides, and in confirm mode applies, a directory's new mtime
type Reconciler struct {
	setter    TimeSetter
	mode      models.Mode
	tolerance time.Duration
}

// NewReconciler creates a reconciler. setter is only called in confirm mode.
func NewReconciler(setter TimeSetter, mode models.Mode, tolerance time.Duration) *Reconciler {
	return &Reconciler{
		setter:    setter,
		mode:      mode,
		tolerance: tolerance,
	}
}

// Reconcile compares the directory's current mtime with its newest content.
// subdirs must hold the resolved mtimes of already reconciled subdirectories.
func (r *Reconciler) Reconcile(ctx context.Context, path string, current time.Time, files, subdirs []time.Time) models.Decision {
	d := models.Decision{
		RelativePath: path,
		Previous:     current,
		Target:       current,
		Resolved:     current,
		HasResolved:  true,
		Action:       models.ActionSkip,
	}

	content := ScanContent(files, subdirs)
	d.Source = content.Kind
	if content.Kind == models.NoContent {
		d.Reason = models.SkipNoContent
		return d
	}

	d.Target = content.ModTime
	d.Delta = d.Target.Sub(current)

	// Inclusive: a difference of exactly the tolerance is not a change
	if d.Delta <= r.tolerance && d.Delta >= -r.tolerance {
		d.Reason = models.SkipWithinTolerance
		return d
	}

	if r.mode != models.ModeConfirm {
		// Nothing is applied, so the parent keeps seeing the on-disk mtime
		d.Action = models.ActionWouldUpdate
		return d
	}

	if err := r.setter.SetModTime(ctx, path, d.Target); err != nil {
		d.Reason = models.SkipWriteFailed
		d.Err = err
		return d
	}

	d.Action = models.ActionUpdated
	d.Resolved = d.Target
	return d
}
