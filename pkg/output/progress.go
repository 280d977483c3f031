package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/sdejongh/dirstamp/pkg/models"
)

const progressTemplate = `{{ cycle . "⠋" "⠙" "⠹" "⠸" "⠼" "⠴" "⠦" "⠧" "⠇" "⠏" }} {{ string . "dirs" }} directories, {{ string . "changes" }} changes {{ etime . }}`

// ProgressFormatter shows a live directory counter on stderr while the walk
// runs and prints the human-readable lines once it is done, so the two never
// interleave on a terminal.
type ProgressFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	barWriter io.Writer

	out   bytes.Buffer
	errs  bytes.Buffer
	inner *HumanFormatter

	bar       *pb.ProgressBar
	dirs      int
	changes   int
	startTime time.Time
}

// NewProgressFormatter creates a progress formatter. The bar is drawn on barW
// (stderr when nil).
func NewProgressFormatter(w, errW, barW io.Writer, opts HumanOptions) *ProgressFormatter {
	if barW == nil {
		barW = os.Stderr
	}
	if w == nil {
		w = io.Discard
	}
	if errW == nil {
		errW = w
	}

	f := &ProgressFormatter{
		writer:    w,
		errWriter: errW,
		barWriter: barW,
	}
	f.inner = NewHumanFormatter(&f.out, &f.errs, opts)
	return f
}

// Start initializes the formatter and starts the bar
func (f *ProgressFormatter) Start(op *models.StampOperation) error {
	f.startTime = time.Now()
	f.dirs, f.changes = 0, 0

	f.bar = pb.ProgressBarTemplate(progressTemplate).New(0)
	f.bar.SetWriter(f.barWriter)
	f.bar.SetRefreshRate(150 * time.Millisecond)
	f.bar.Set("dirs", "0")
	f.bar.Set("changes", "0")
	f.bar.Start()

	return f.inner.Start(op)
}

// Decision advances the counter and buffers the line
func (f *ProgressFormatter) Decision(d *models.Decision) error {
	f.dirs++
	if d.Changed() {
		f.changes++
	}
	if f.bar != nil {
		f.bar.Set("dirs", humanize.Comma(int64(f.dirs)))
		f.bar.Set("changes", humanize.Comma(int64(f.changes)))
		f.bar.Increment()
	}
	return f.inner.Decision(d)
}

// Complete stops the bar and flushes everything buffered
func (f *ProgressFormatter) Complete(report *models.StampReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}

	if err := f.inner.Complete(report); err != nil {
		return err
	}

	if _, err := f.errWriter.Write(f.errs.Bytes()); err != nil {
		return err
	}
	if _, err := f.writer.Write(f.out.Bytes()); err != nil {
		return err
	}

	_, err := fmt.Fprintf(f.barWriter, "Scanned %s directories in %s\n",
		humanize.Comma(int64(report.Stats.DirsScanned)), time.Since(f.startTime).Round(time.Millisecond))
	return err
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	return f.inner.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
