package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sdejongh/dirstamp/pkg/config"
	"github.com/sdejongh/dirstamp/pkg/logging"
	"github.com/sdejongh/dirstamp/pkg/models"
	"github.com/sdejongh/dirstamp/pkg/output"
	"github.com/sdejongh/dirstamp/pkg/stamp"
	"github.com/sdejongh/dirstamp/pkg/storage"
)

// StampFlags holds stamp command flags
type StampFlags struct {
	Confirm      bool
	ShowDates    bool
	Tolerance    time.Duration
	Backend      string
	Exclude      []string
	Output       string
	Progress     bool
	Report       string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var stampFlags StampFlags

// AddStampFlags registers the stamp flags on the command that runs it
func AddStampFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&stampFlags.Confirm, "confirm", "C", false, "apply changes (default is a dry run)")
	cmd.Flags().BoolVarP(&stampFlags.ShowDates, "show-dates", "D", false, "show old and new timestamps for each change")
	cmd.Flags().DurationVar(&stampFlags.Tolerance, "tolerance", models.DefaultTolerance, "ignore differences up to this duration")
	cmd.Flags().StringVar(&stampFlags.Backend, "backend", storage.KindOS, "filesystem backend: os, billy")
	cmd.Flags().StringSliceVar(&stampFlags.Exclude, "exclude", []string{}, "glob patterns to exclude (dir/ matches directories only)")
	cmd.Flags().StringVarP(&stampFlags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().BoolVar(&stampFlags.Progress, "progress", false, "show a live directory counter on stderr")
	cmd.Flags().StringVar(&stampFlags.Report, "report", "", "write a changes report to file")
	cmd.Flags().StringVar(&stampFlags.ReportFormat, "report-format", "human", "changes report format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&stampFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&stampFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&stampFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// RunStamp reconciles the directory tree rooted at the first argument
func RunStamp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := validateRoot(root)
	if err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	operation, err := createStampOperation(cfg, root)
	if err != nil {
		return fmt.Errorf("failed to create stamp operation: %w", err)
	}

	backend, err := storage.Open(cfg.Stamp.Backend, root)
	if err != nil {
		return &models.PreconditionError{Path: root, Err: err}
	}
	defer backend.Close()

	formatter := createFormatter(cfg)

	logger, err := createLogger(cfg.Logging, globalFlags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	engine := stamp.NewEngine(backend, formatter, logger, operation)

	report, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	// Show report if:
	// - --report is specified (write to file)
	// - --report-format is explicitly set (write to stdout)
	if stampFlags.Report != "" || cmd.Flags().Changed("report-format") {
		if err := output.WriteChangesReport(report, stampFlags.Report, stampFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write changes report: %w", err)
		}
	}

	if report.Status != models.StatusSuccess {
		return &StatusError{Status: report.Status}
	}
	return nil
}

// createFormatter picks the formatter from the output settings
func createFormatter(cfg *config.Config) output.Formatter {
	opts := output.HumanOptions{
		ShowDates: cfg.Output.ShowDates,
		Quiet:     cfg.Output.Quiet,
	}

	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter(os.Stdout)
	case cfg.Output.Progress && term.IsTerminal(int(os.Stderr.Fd())):
		return output.NewProgressFormatter(os.Stdout, os.Stderr, os.Stderr, opts)
	default:
		return output.NewHumanFormatter(os.Stdout, os.Stderr, opts)
	}
}

// createLogger creates a logger based on configuration.
// A log file takes precedence; --verbose without one logs to stderr.
func createLogger(cfg config.LoggingConfig, verbose bool) (logging.Logger, error) {
	if cfg.File == "" {
		if verbose {
			return logging.NewConsoleLogger(os.Stderr, logging.DebugLevel), nil
		}
		return logging.NewNullLogger(), nil
	}

	// Parse log format
	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	// Create file logger
	fileConfig := logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(fileConfig)
}

// StatusError carries a non-success run status to the process exit code
type StatusError struct {
	Status models.StampStatus
}

func (e *StatusError) Error() string {
	return "stamp finished with status " + string(e.Status)
}
