package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/sb"
)

var (
	formatStrict  bool
	formatNewline bool
)

func init() {
	cmd := newFormatCmd()
	cmd.Flags().BoolVar(&formatStrict, "strict", false, "Reject unknown directives and a trailing '%'")
	cmd.Flags().BoolVarP(&formatNewline, "newline", "n", true, "Terminate output with a newline")
	rootCmd.AddCommand(cmd)
}

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <template> [args...]",
		Short: "Render a %s/%d/%c/%% template",
		Long: `The format command renders a template with the builder's directive set.
Each argument names its kind with a prefix: s:text, d:integer or c:character.

Example:
  slabctl format "%d-%s" d:42 s:x
  slabctl format "100%%"
  slabctl format --strict "%s %c" s:grade c:A`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(args)
		},
	}
	return cmd
}

// parseArg turns a kind-prefixed command-line argument into an sb.Arg.
func parseArg(raw string) (sb.Arg, error) {
	kind, value, ok := strings.Cut(raw, ":")
	if !ok {
		return sb.Arg{}, fmt.Errorf("argument %q: want s:, d: or c: prefix", raw)
	}
	switch kind {
	case "s":
		return sb.Str(value), nil
	case "d":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return sb.Arg{}, fmt.Errorf("argument %q: %w", raw, err)
		}
		return sb.Int64(n), nil
	case "c":
		if len(value) != 1 {
			return sb.Arg{}, fmt.Errorf("argument %q: character must be exactly one byte", raw)
		}
		return sb.Char(value[0]), nil
	default:
		return sb.Arg{}, fmt.Errorf("argument %q: unknown kind %q", raw, kind)
	}
}

func runFormat(args []string) error {
	template := args[0]
	parsed := make([]sb.Arg, 0, len(args)-1)
	for _, raw := range args[1:] {
		a, err := parseArg(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, a)
	}

	s, err := newSession(formatStrict)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.b.Appendf(template, parsed...); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	if formatNewline {
		if err := s.b.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := s.b.WriteTo(os.Stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
