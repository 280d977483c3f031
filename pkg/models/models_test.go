package models

import (
	"errors"
	"os"
	"testing"
	"time"
)

// ============== Decision Tests ==============

func TestAction(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionSkip, "skip"},
		{ActionWouldUpdate, "would_update"},
		{ActionUpdated, "updated"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if string(tt.action) != tt.expected {
				t.Errorf("Action = %s, want %s", string(tt.action), tt.expected)
			}
		})
	}
}

func TestDecisionChanged(t *testing.T) {
	tests := []struct {
		action   Action
		expected bool
	}{
		{ActionSkip, false},
		{ActionWouldUpdate, true},
		{ActionUpdated, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			d := &Decision{Action: tt.action}
			if d.Changed() != tt.expected {
				t.Errorf("Changed() = %v, want %v", d.Changed(), tt.expected)
			}
		})
	}
}

func TestDecisionFailed(t *testing.T) {
	d := &Decision{Action: ActionSkip, Reason: SkipWriteFailed, Err: os.ErrPermission}
	if !d.Failed() {
		t.Error("Failed() should be true when Err is set")
	}
	if d.Changed() {
		t.Error("a failed write must not count as a change")
	}

	ok := &Decision{Action: ActionUpdated}
	if ok.Failed() {
		t.Error("Failed() should be false without Err")
	}
}

func TestContentKindString(t *testing.T) {
	tests := []struct {
		kind     ContentKind
		expected string
	}{
		{NoContent, "none"},
		{NewestFile, "file"},
		{NewestSubdir, "subdir"},
		{ContentKind(42), "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.kind.String() != tt.expected {
				t.Errorf("String() = %s, want %s", tt.kind.String(), tt.expected)
			}
		})
	}
}

// ============== StampOperation Tests ==============

func TestStampOperationValidate(t *testing.T) {
	t.Run("ValidOperation", func(t *testing.T) {
		op := &StampOperation{
			RootPath:  "/data",
			Mode:      ModeDryRun,
			Tolerance: DefaultTolerance,
		}

		if err := op.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("EmptyRootPath", func(t *testing.T) {
		op := &StampOperation{Mode: ModeDryRun}

		err := op.Validate()
		if err == nil {
			t.Fatal("Validate() should fail for empty root path")
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "RootPath" {
			t.Errorf("Validate() error = %v, want ValidationError on RootPath", err)
		}
	})

	t.Run("UnknownMode", func(t *testing.T) {
		op := &StampOperation{RootPath: "/data", Mode: Mode("yolo")}

		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for unknown mode")
		}
	})

	t.Run("NegativeTolerance", func(t *testing.T) {
		op := &StampOperation{RootPath: "/data", Mode: ModeConfirm, Tolerance: -time.Second}

		if err := op.Validate(); err == nil {
			t.Error("Validate() should fail for negative tolerance")
		}
	})

	t.Run("ZeroToleranceAllowed", func(t *testing.T) {
		op := &StampOperation{RootPath: "/data", Mode: ModeConfirm}

		if err := op.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

func TestStampOperationDryRun(t *testing.T) {
	if !(&StampOperation{Mode: ModeDryRun}).DryRun() {
		t.Error("dry-run mode should report DryRun()")
	}
	if (&StampOperation{Mode: ModeConfirm}).DryRun() {
		t.Error("confirm mode should not report DryRun()")
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "Mode", Message: "bad"}
	if err.Error() != "Mode: bad" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Mode: bad")
	}
}

func TestPreconditionError(t *testing.T) {
	err := &PreconditionError{Path: "/missing", Err: os.ErrNotExist}

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("PreconditionError should unwrap to its cause")
	}
	if err.Error() != "invalid root '/missing': file does not exist" {
		t.Errorf("Error() = %q", err.Error())
	}
}

// ============== Report Tests ==============

func TestStatisticsRecord(t *testing.T) {
	var stats Statistics

	stats.Record(&Decision{Action: ActionUpdated})
	stats.Record(&Decision{Action: ActionWouldUpdate})
	stats.Record(&Decision{Action: ActionSkip, Reason: SkipWithinTolerance})
	stats.Record(&Decision{Action: ActionSkip, Reason: SkipNoContent})
	stats.Record(&Decision{Action: ActionSkip, Reason: SkipListFailed, Err: os.ErrPermission})

	if stats.DirsScanned != 5 {
		t.Errorf("DirsScanned = %d, want 5", stats.DirsScanned)
	}
	if stats.DirsUpdated != 1 {
		t.Errorf("DirsUpdated = %d, want 1", stats.DirsUpdated)
	}
	if stats.DirsWouldUpdate != 1 {
		t.Errorf("DirsWouldUpdate = %d, want 1", stats.DirsWouldUpdate)
	}
	if stats.DirsSkipped != 3 {
		t.Errorf("DirsSkipped = %d, want 3", stats.DirsSkipped)
	}
	if stats.DirsEmpty != 1 {
		t.Errorf("DirsEmpty = %d, want 1", stats.DirsEmpty)
	}
	if stats.DirsErrored != 1 {
		t.Errorf("DirsErrored = %d, want 1", stats.DirsErrored)
	}
}

func TestReportChanged(t *testing.T) {
	r := &StampReport{Mode: ModeDryRun, Stats: Statistics{DirsWouldUpdate: 3}}
	if r.Changed() != 3 {
		t.Errorf("Changed() = %d, want 3", r.Changed())
	}
	if !r.DryRun() {
		t.Error("DryRun() should be true")
	}
}

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		status   StampStatus
		expected int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 1},
		{StatusFailed, 2},
		{StatusCancelled, 3},
		{StampStatus("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.ExitCode() != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", tt.status.ExitCode(), tt.expected)
			}
		})
	}
}
