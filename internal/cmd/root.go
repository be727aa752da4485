package cmd

import (
	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	rootCmd := rootCommand()
	rootCmd.AddCommand(serverCommand())
	rootCmd.AddCommand(versionCommand())

	return rootCmd
}

func Execute() error {
	return Command().Execute()
}

func rootCommand() *cobra.Command {
	return &cobra.Command{
		Use: "rentd",
	}
}
