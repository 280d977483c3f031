package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/dirstamp/pkg/models"
)

// WriteChangesReport writes every changed or failed directory to a file.
// Format can be "human" or "json". Nothing is written when there is nothing to report.
func WriteChangesReport(report *models.StampReport, path string, format string) error {
	if report.Changed() == 0 && len(report.Errors) == 0 {
		return nil
	}

	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "json":
		return writeChangesJSON(report, w)
	default:
		return writeChangesHuman(report, w)
	}
}

func writeChangesHuman(report *models.StampReport, w io.Writer) error {
	fmt.Fprintf(w, "Directory Timestamp Report\n")
	fmt.Fprintf(w, "==========================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Operation: %s\n", report.OperationID)
	fmt.Fprintf(w, "Root: %s\n", report.RootPath)
	fmt.Fprintf(w, "Mode: %s\n", report.Mode)
	fmt.Fprintf(w, "Status: %s\n\n", report.Status)

	var changed, failed []models.Decision
	for _, d := range report.Decisions {
		switch {
		case d.Err != nil:
			failed = append(failed, d)
		case d.Changed():
			changed = append(changed, d)
		}
	}

	if len(changed) > 0 {
		label := fmt.Sprintf("Changed (%d directories)", len(changed))
		fmt.Fprintf(w, "%s\n%s\n", label, strings.Repeat("-", len(label)))
		for _, d := range changed {
			fmt.Fprintf(w, "  %s\n", d.Path)
			fmt.Fprintf(w, "    From:   %s\n", FormatTimestamp(d.Previous))
			fmt.Fprintf(w, "    To:     %s (%s)\n", FormatTimestamp(d.Target), FormatDays(d.Delta))
			fmt.Fprintf(w, "    Source: newest %s\n\n", d.Source)
		}
	}

	if len(failed) > 0 {
		label := fmt.Sprintf("Errors (%d directories)", len(failed))
		fmt.Fprintf(w, "%s\n%s\n", label, strings.Repeat("-", len(label)))
		for _, d := range failed {
			fmt.Fprintf(w, "  %s\n    %s: %v\n\n", d.Path, failureLabel(d.Reason), d.Err)
		}
	}

	return nil
}

func writeChangesJSON(report *models.StampReport, w io.Writer) error {
	f := NewJSONFormatter(w)
	for i := range report.Decisions {
		if err := f.Decision(&report.Decisions[i]); err != nil {
			return err
		}
	}
	return f.Complete(report)
}
