package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// VersionString returns "dirstamp <version> (<commit> <date>)", dropping
// the build details that were not provided at build time
func VersionString() string {
	hasCommit := Commit != "" && Commit != "none"
	hasDate := BuildDate != "" && BuildDate != "unknown"

	switch {
	case hasCommit && hasDate:
		return fmt.Sprintf("dirstamp %s (%s %s)", Version, Commit, BuildDate)
	case hasCommit:
		return fmt.Sprintf("dirstamp %s (%s)", Version, Commit)
	default:
		return "dirstamp " + Version
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, Version)
				return
			}

			fmt.Fprintln(out, VersionString())
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	return cmd
}
