package cmd

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/kubev2v/action-agent/cmd.version=...".
var (
	version   = "v0.0.0"
	gitCommit = "unknown"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the agent version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			label := color.New(color.FgCyan, color.Bold).SprintFunc()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", label("Version:"), version)
			fmt.Fprintf(out, "%s %s\n", label("Commit: "), gitCommit)
			fmt.Fprintf(out, "%s %s/%s %s\n", label("Runtime:"), runtime.GOOS, runtime.GOARCH, runtime.Version())
			return nil
		},
	}
}
