package stamp

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sdejongh/dirstamp/pkg/logging"
	"github.com/sdejongh/dirstamp/pkg/models"
	"github.com/sdejongh/dirstamp/pkg/storage"
)

// Walker drives a depth-first post-order traversal. Every directory is
// reconciled after all of its subdirectories, and its decision is emitted
// after theirs.
type Walker struct {
	backend    storage.Backend
	reconciler *Reconciler
	excluder   *Excluder
	logger     logging.Logger

	// rootLabel prefixes decision paths for display
	rootLabel string

	// OnDecision, when set, is called for each decision as soon as it is final
	OnDecision func(d *models.Decision)

	decisions []models.Decision
	stats     models.Statistics
}

// NewWalker creates a walker over backend. excluder and logger may be nil.
func NewWalker(
	backend storage.Backend,
	reconciler *Reconciler,
	excluder *Excluder,
	logger logging.Logger,
	rootLabel string,
) *Walker {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if rootLabel == "" {
		rootLabel = "."
	}

	return &Walker{
		backend:    backend,
		reconciler: reconciler,
		excluder:   excluder,
		logger:     logger,
		rootLabel:  rootLabel,
	}
}

// Walk processes the whole tree and returns every decision in post-order.
// Per-directory failures are recorded in the decisions; the only error
// returned is the context's, in which case the decisions made so far are
// returned too.
func (w *Walker) Walk(ctx context.Context) ([]models.Decision, error) {
	w.decisions = nil
	w.stats = models.Statistics{}

	_, _, err := w.visit(ctx, ".", nil)
	return w.decisions, err
}

// Stats returns the counters of the last walk
func (w *Walker) Stats() models.Statistics {
	return w.stats
}

// visit reconciles the directory at rel and returns the mtime its parent should see.
// listed is the entry the parent's listing produced, nil for the root.
func (w *Walker) visit(ctx context.Context, rel string, listed *storage.FileInfo) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}

	entries, err := w.backend.ReadDir(ctx, rel)
	if err != nil {
		if ctx.Err() != nil {
			return time.Time{}, false, ctx.Err()
		}
		w.logger.Warn(ctx, "Skipping directory that cannot be listed", logging.Fields{
			"path":  rel,
			"error": err.Error(),
		})
		d := w.failed(rel, listed, models.SkipListFailed, err)
		return d.Resolved, d.HasResolved, nil
	}

	// Files are never modified by the walk, so their mtimes from this single
	// listing are still current once the subdirectories are done.
	var files, subdirs []time.Time
	for i := range entries {
		entry := &entries[i]

		if w.excluder.Match(entry.RelativePath, entry.IsDir()) {
			w.stats.EntriesExcluded++
			w.logger.Debug(ctx, "Excluded entry", logging.Fields{"path": entry.RelativePath})
			continue
		}

		if entry.StatErr != nil {
			w.stats.EntriesUnreadable++
			w.logger.Warn(ctx, "Ignoring entry with unreadable metadata", logging.Fields{
				"path":  entry.RelativePath,
				"error": entry.StatErr.Error(),
			})
			continue
		}

		switch entry.Kind {
		case storage.KindFile:
			w.stats.FilesScanned++
			files = append(files, entry.ModTime)

		case storage.KindDir:
			resolved, ok, err := w.visit(ctx, entry.RelativePath, entry)
			if err != nil {
				return time.Time{}, false, err
			}
			if ok {
				subdirs = append(subdirs, resolved)
			}
		}
	}

	info, err := w.backend.Stat(ctx, rel)
	if err != nil {
		w.logger.Warn(ctx, "Skipping directory whose mtime cannot be read", logging.Fields{
			"path":  rel,
			"error": err.Error(),
		})
		d := w.failed(rel, listed, models.SkipStatFailed, err)
		return d.Resolved, d.HasResolved, nil
	}

	d := w.reconciler.Reconcile(ctx, rel, info.ModTime, files, subdirs)
	if d.Err != nil {
		w.logger.Error(ctx, "Failed to set directory mtime", d.Err, logging.Fields{
			"path":   rel,
			"target": d.Target.UTC().Format(time.RFC3339Nano),
		})
	} else if d.Changed() {
		w.logger.Debug(ctx, "Directory mtime reconciled", logging.Fields{
			"path":   rel,
			"action": string(d.Action),
			"source": d.Source.String(),
			"delta":  d.Delta.String(),
		})
	}

	w.emit(&d)
	return d.Resolved, d.HasResolved, nil
}

// failed records a skip for a directory that could not be processed. The
// parent still sees the mtime from its own listing when one is known.
func (w *Walker) failed(rel string, listed *storage.FileInfo, reason models.SkipReason, err error) *models.Decision {
	d := models.Decision{
		RelativePath: rel,
		Action:       models.ActionSkip,
		Reason:       reason,
		Err:          err,
	}
	if listed != nil {
		d.Previous = listed.ModTime
		d.Target = listed.ModTime
		d.Resolved = listed.ModTime
		d.HasResolved = true
	}

	w.emit(&d)
	return &d
}

func (w *Walker) emit(d *models.Decision) {
	d.Path = w.displayPath(d.RelativePath)
	w.stats.Record(d)
	w.decisions = append(w.decisions, *d)
	if w.OnDecision != nil {
		w.OnDecision(d)
	}
}

func (w *Walker) displayPath(rel string) string {
	if rel == "." {
		return w.rootLabel
	}
	return filepath.Join(w.rootLabel, rel)
}
