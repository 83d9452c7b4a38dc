package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCommand creates the CLI with all sub-commands attached
func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stackit",
		Short:         "StackIt Q&A API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		serveCommand(),
		questionsCommand(),
		tokenCommand(),
	)
	return rootCmd
}
