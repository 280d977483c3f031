package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/dirstamp/internal/platform"
	"github.com/sdejongh/dirstamp/pkg/config"
	"github.com/sdejongh/dirstamp/pkg/models"
)

// validateRoot normalizes the root argument and checks it is an existing directory
func validateRoot(root string) (string, error) {
	if err := platform.ValidatePath(root); err != nil {
		return "", err
	}
	root = platform.NormalizePath(root)

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return "", &models.PreconditionError{Path: root, Err: errors.New("path does not exist")}
	} else if err != nil {
		return "", &models.PreconditionError{Path: root, Err: err}
	} else if !info.IsDir() {
		return "", &models.PreconditionError{Path: root, Err: errors.New("not a directory")}
	}

	return root, nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with the flags set on the command line
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("tolerance") {
		cfg.Stamp.Tolerance = stampFlags.Tolerance
	}
	if flags.Changed("backend") {
		cfg.Stamp.Backend = stampFlags.Backend
	}

	// Exclude patterns
	if len(stampFlags.Exclude) > 0 {
		cfg.Exclude = stampFlags.Exclude
	}

	// Output format
	if flags.Changed("output") {
		cfg.Output.Format = stampFlags.Output
	}
	if stampFlags.ShowDates {
		cfg.Output.ShowDates = true
	}
	if stampFlags.Progress {
		cfg.Output.Progress = true
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Logging
	if stampFlags.LogFile != "" {
		cfg.Logging.File = stampFlags.LogFile
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = stampFlags.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = stampFlags.LogLevel
	}
}

// createStampOperation creates a stamp operation from configuration
func createStampOperation(cfg *config.Config, root string) (*models.StampOperation, error) {
	mode := models.ModeDryRun
	if stampFlags.Confirm {
		mode = models.ModeConfirm
	}

	operation := &models.StampOperation{
		ID:              uuid.New().String(),
		RootPath:        root,
		Mode:            mode,
		Tolerance:       cfg.Stamp.Tolerance,
		ShowDates:       cfg.Output.ShowDates,
		ExcludePatterns: cfg.Exclude,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// ExitCode maps the error returned by the root command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status.ExitCode()
	}

	var preErr *models.PreconditionError
	if errors.As(err, &preErr) {
		return models.StatusFailed.ExitCode()
	}

	return 1
}

// ReportError prints err unless it only carries a run status the formatter already showed
func ReportError(err error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
