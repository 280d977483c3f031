package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dirstamp/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		cli.ReportError(err)
		os.Exit(cli.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date

	rootCmd := &cobra.Command{
		Use:   "dirstamp [PATH]",
		Short: "Set folder timestamps from their newest content",
		Long: `dirstamp walks a directory tree bottom-up and sets each folder's
modification time to the newest file it directly contains. Folders without
files take the newest timestamp of their subfolders; empty folders are left
alone. Nothing is changed unless -C/--confirm is given.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cli.RunStamp,
	}
	rootCmd.SetVersionTemplate(cli.VersionString() + "\n")

	// Add flags
	cli.AddGlobalFlags(rootCmd)
	cli.AddStampFlags(rootCmd)
	cli.AddVersionFlag(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.ExecuteContext(ctx)
}
