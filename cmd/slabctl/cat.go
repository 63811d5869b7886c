package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/cmd/slabctl/logger"
)

func init() {
	rootCmd.AddCommand(newCatCmd())
}

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat [files...]",
		Short: "Accumulate input and print the flattened result",
		Long: `The cat command appends every file (or standard input) to one builder,
materializes the chain into a single buffer and writes it to stdout.

Example:
  slabctl cat part1.txt part2.txt
  generate-report | slabctl cat --capacity 4096`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(args)
		},
	}
	return cmd
}

func runCat(args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	if _, err := readInputs(s.b, args); err != nil {
		return err
	}

	m, err := s.b.Materialize()
	if err != nil {
		return fmt.Errorf("failed to materialize: %w", err)
	}
	defer m.Release()

	logger.Debug("materialized", "bytes", m.Len(), "slabs", s.b.SlabCount())
	if _, err := os.Stdout.Write(m.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
