package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/cloudtranslate/internal/archive"
	"codeberg.org/snonux/cloudtranslate/internal/cli"
	"codeberg.org/snonux/cloudtranslate/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.Archive {
		if err := archive.ArchiveData(processor.DataDir(flags)); err != nil {
			return fmt.Errorf("failed to archive data: %w", err)
		}
		return nil
	}

	// Create processor
	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	// Handle utility flags that do not translate anything
	switch {
	case flags.ListLanguages:
		proc.ListLanguages()
		return nil
	case flags.ShowHistory:
		proc.ShowHistory()
		return nil
	case flags.ShowUsage:
		proc.ShowUsage()
		return nil
	case flags.ClearHistory:
		return proc.ClearHistory()
	}

	// Handle batch translation
	if flags.BatchFile != "" {
		return proc.ProcessBatch()
	}

	// Translate a single text from the command line
	if len(args) > 0 {
		return proc.TranslateOne(args[0])
	}

	// No input provided - launch GUI mode by default
	return proc.RunGUIMode()
}
