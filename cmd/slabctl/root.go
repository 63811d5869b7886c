package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/cmd/slabctl/logger"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	capacity  int
	allocName string
	eager     bool
	logDir    string
)

var rootCmd = &cobra.Command{
	Use:   "slabctl",
	Short: "Accumulate text in OS-mapped slab chains",
	Long: `slabctl feeds files or standard input into a slab-chained string builder.
It can print the flattened result, transcode it, render minimal printf-style
templates, and report how the chain grew.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return logger.Init(logger.Options{
			Enabled: verbose || logDir != "",
			LogDir:  logDir,
			Level:   level,
		})
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 0, "Slab capacity in bytes (default 16384)")
	rootCmd.PersistentFlags().
		StringVar(&allocName, "allocator", "os", "Slab allocator: os, portable or heap")
	rootCmd.PersistentFlags().
		BoolVar(&eager, "eager", false, "Acquire the next slab as soon as one fills")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
