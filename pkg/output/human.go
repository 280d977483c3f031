package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/sdejongh/dirstamp/pkg/models"
)

// HumanOptions controls what the human formatter prints
type HumanOptions struct {
	ShowDates bool // Append from/to timestamps and the day delta
	Quiet     bool // Only print per-directory errors
}

// HumanFormatter prints one line per changed directory
type HumanFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	opts      HumanOptions
	dryRun    bool
}

// NewHumanFormatter creates a new human-readable formatter.
// Changes go to w, per-directory failures to errW.
func NewHumanFormatter(w, errW io.Writer, opts HumanOptions) *HumanFormatter {
	if w == nil {
		w = io.Discard
	}
	if errW == nil {
		errW = w
	}
	return &HumanFormatter{
		writer:    w,
		errWriter: errW,
		opts:      opts,
		dryRun:    true,
	}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(op *models.StampOperation) error {
	f.dryRun = op.DryRun()
	return nil
}

// Decision prints a changed or failed directory; plain skips are silent
func (f *HumanFormatter) Decision(d *models.Decision) error {
	if d.Err != nil {
		_, err := fmt.Fprintf(f.errWriter, "skipped (%s): %q (%v)\n", failureLabel(d.Reason), d.Path, d.Err)
		return err
	}

	if !d.Changed() || f.opts.Quiet {
		return nil
	}

	verb := "updated"
	if d.Action == models.ActionWouldUpdate {
		verb = "would update"
	}

	if f.opts.ShowDates {
		_, err := fmt.Fprintf(f.writer, "%s %q (from %s to %s, %s)\n",
			verb, d.Path, FormatTimestamp(d.Previous), FormatTimestamp(d.Target), FormatDays(d.Delta))
		return err
	}

	_, err := fmt.Fprintf(f.writer, "%s %q\n", verb, d.Path)
	return err
}

// Complete prints the closing line
func (f *HumanFormatter) Complete(report *models.StampReport) error {
	if report.Status == models.StatusCancelled {
		fmt.Fprintf(f.errWriter, "Interrupted after %s directories.\n", humanize.Comma(int64(report.Stats.DirsScanned)))
	}

	if f.opts.Quiet {
		return nil
	}

	switch {
	case report.Changed() == 0 && report.Status == models.StatusCancelled:
		// Nothing was decided for the rest of the tree
	case report.Changed() == 0:
		fmt.Fprintln(f.writer, "No folder timestamps needed updating.")
	case report.DryRun():
		fmt.Fprintln(f.writer, "\nNote: this was a dry run. Use -C to confirm and apply changes.")
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	_, werr := fmt.Fprintf(f.errWriter, "Error: %v\n", err)
	return werr
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
