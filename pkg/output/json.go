package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/dirstamp/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer  io.Writer
	changes []JSONChangeData
}

// JSONReportData represents the final report
type JSONReportData struct {
	OperationID string           `json:"operation_id"`
	Root        string           `json:"root"`
	Mode        string           `json:"mode"`
	Status      string           `json:"status"`
	Duration    string           `json:"duration"`
	DurationMs  int64            `json:"duration_ms"`
	Stats       JSONStatsData    `json:"stats"`
	Changes     []JSONChangeData `json:"changes,omitempty"`
	Errors      []JSONErrorData  `json:"errors,omitempty"`
}

// JSONChangeData represents a directory whose mtime changed or would change
type JSONChangeData struct {
	Path         string  `json:"path"`
	Action       string  `json:"action"`
	Source       string  `json:"source"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	DeltaSeconds float64 `json:"delta_seconds"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	DirsScanned       int `json:"dirs_scanned"`
	DirsUpdated       int `json:"dirs_updated"`
	DirsWouldUpdate   int `json:"dirs_would_update"`
	DirsSkipped       int `json:"dirs_skipped"`
	DirsEmpty         int `json:"dirs_empty"`
	DirsErrored       int `json:"dirs_errored"`
	FilesScanned      int `json:"files_scanned"`
	EntriesUnreadable int `json:"entries_unreadable"`
	EntriesExcluded   int `json:"entries_excluded"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter writing to w (stdout when nil)
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(op *models.StampOperation) error {
	f.changes = f.changes[:0]
	return nil
}

// Decision records changed directories; nothing is written until Complete
func (f *JSONFormatter) Decision(d *models.Decision) error {
	if !d.Changed() {
		return nil
	}

	f.changes = append(f.changes, JSONChangeData{
		Path:         d.Path,
		Action:       string(d.Action),
		Source:       d.Source.String(),
		From:         d.Previous.UTC().Format(time.RFC3339Nano),
		To:           d.Target.UTC().Format(time.RFC3339Nano),
		DeltaSeconds: d.Delta.Seconds(),
	})
	return nil
}

// Complete writes the whole report as one JSON document
func (f *JSONFormatter) Complete(report *models.StampReport) error {
	var errors []JSONErrorData
	for _, e := range report.Errors {
		errors = append(errors, JSONErrorData{
			Path:   e.Path,
			Reason: string(e.Reason),
			Error:  e.Error,
		})
	}

	s := report.Stats
	data := JSONReportData{
		OperationID: report.OperationID,
		Root:        report.RootPath,
		Mode:        string(report.Mode),
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			DirsScanned:       s.DirsScanned,
			DirsUpdated:       s.DirsUpdated,
			DirsWouldUpdate:   s.DirsWouldUpdate,
			DirsSkipped:       s.DirsSkipped,
			DirsEmpty:         s.DirsEmpty,
			DirsErrored:       s.DirsErrored,
			FilesScanned:      s.FilesScanned,
			EntriesUnreadable: s.EntriesUnreadable,
			EntriesExcluded:   s.EntriesExcluded,
		},
		Changes: f.changes,
		Errors:  errors,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Error is folded into the report's error list by the engine
func (f *JSONFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
