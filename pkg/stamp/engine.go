package stamp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sdejongh/dirstamp/pkg/logging"
	"github.com/sdejongh/dirstamp/pkg/models"
	"github.com/sdejongh/dirstamp/pkg/output"
	"github.com/sdejongh/dirstamp/pkg/storage"
)

// Engine orchestrates a stamp run over one root
type Engine struct {
	backend   storage.Backend
	formatter output.Formatter
	logger    logging.Logger
	operation *models.StampOperation
}

// NewEngine creates a new stamp engine. formatter and logger may be nil.
func NewEngine(
	backend storage.Backend,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.StampOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:   backend,
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// Run walks the tree and returns the report.
// An error is returned only when the run cannot start; per-directory
// failures and cancellation are reflected in the report status.
func (e *Engine) Run(ctx context.Context) (*models.StampReport, error) {
	op := e.operation
	startTime := time.Now()
	report := &models.StampReport{
		OperationID: op.ID,
		RootPath:    op.RootPath,
		Mode:        op.Mode,
		StartTime:   startTime,
		Status:      models.StatusSuccess,
	}

	if err := op.Validate(); err != nil {
		report.Status = models.StatusFailed
		return report, err
	}

	logger := e.logger.WithFields(logging.Fields{"operation_id": op.ID})

	if err := e.checkRoot(ctx); err != nil {
		report.Status = models.StatusFailed
		logger.Error(ctx, "Cannot start stamp operation", err, logging.Fields{"root": op.RootPath})
		return report, err
	}

	excluder, err := NewExcluder(op.ExcludePatterns)
	if err != nil {
		report.Status = models.StatusFailed
		return report, err
	}

	logger.Info(ctx, "Starting stamp operation", logging.Fields{
		"root":      op.RootPath,
		"mode":      string(op.Mode),
		"tolerance": op.Tolerance.String(),
		"excludes":  len(op.ExcludePatterns),
	})

	started := startTime
	op.StartedAt = &started

	if e.formatter != nil {
		if err := e.formatter.Start(op); err != nil {
			return report, fmt.Errorf("formatter start: %w", err)
		}
	}

	reconciler := NewReconciler(e.backend, op.Mode, op.Tolerance)
	walker := NewWalker(e.backend, reconciler, excluder, logger.WithFields(logging.Fields{"component": "walker"}), op.RootPath)
	walker.OnDecision = func(d *models.Decision) {
		if d.Err != nil {
			report.Errors = append(report.Errors, models.StampError{
				Path:      d.Path,
				Reason:    d.Reason,
				Error:     d.Err.Error(),
				Timestamp: time.Now(),
			})
		}
		if e.formatter != nil {
			if err := e.formatter.Decision(d); err != nil {
				logger.Warn(ctx, "Failed to write decision", logging.Fields{"path": d.Path, "error": err.Error()})
			}
		}
	}

	decisions, walkErr := walker.Walk(ctx)
	report.Decisions = decisions
	report.Stats = walker.Stats()

	switch {
	case walkErr != nil && errors.Is(walkErr, ctx.Err()):
		report.Status = models.StatusCancelled
	case walkErr != nil:
		report.Status = models.StatusFailed
	case len(report.Errors) > 0:
		report.Status = models.StatusPartial
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	completed := report.EndTime
	op.CompletedAt = &completed

	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			return report, fmt.Errorf("formatter complete: %w", err)
		}
	}

	logger.Info(ctx, "Stamp operation completed", logging.Fields{
		"duration":          report.Duration.String(),
		"status":            string(report.Status),
		"dirs_scanned":      report.Stats.DirsScanned,
		"dirs_updated":      report.Stats.DirsUpdated,
		"dirs_would_update": report.Stats.DirsWouldUpdate,
		"dirs_errored":      report.Stats.DirsErrored,
	})

	if walkErr != nil && report.Status == models.StatusFailed {
		return report, walkErr
	}
	return report, nil
}

// checkRoot verifies the root exists and is a directory before anything is visited
func (e *Engine) checkRoot(ctx context.Context) error {
	info, err := e.backend.Stat(ctx, ".")
	if err != nil {
		return &models.PreconditionError{Path: e.operation.RootPath, Err: err}
	}
	if !info.IsDir() {
		return &models.PreconditionError{Path: e.operation.RootPath, Err: errors.New("not a directory")}
	}
	return nil
}
