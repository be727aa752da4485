package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tpanh/rentd/internal/version"
)

func versionCommand() *cobra.Command {
	var command = &cobra.Command{
		Use:          "version",
		Short:        "Display version information",
		SilenceUsage: true,
	}

	command.Run = func(cmd *cobra.Command, args []string) {
		v, revision := version.GetReleaseInfo()
		fmt.Printf(`
Version:       %s
Git Revision:  %s
`, v, revision)
	}

	return command
}
