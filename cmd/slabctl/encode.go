package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var encodeCharset string

func init() {
	cmd := newEncodeCmd()
	cmd.Flags().StringVar(&encodeCharset, "charset", "windows-1252", "Target charset: windows-1252, iso-8859-1, utf-16le or utf-16be")
	rootCmd.AddCommand(cmd)
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [files...]",
		Short: "Transcode UTF-8 input while accumulating it",
		Long: `The encode command streams UTF-8 input through a charset encoder into the
builder and writes the encoded bytes to stdout.

Example:
  slabctl encode --charset utf-16le notes.txt > notes.utf16`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args)
		},
	}
	return cmd
}

func lookupCharset(name string) (encoding.Encoding, error) {
	switch name {
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	default:
		return nil, fmt.Errorf("unknown charset %q", name)
	}
}

func runEncode(args []string) error {
	enc, err := lookupCharset(encodeCharset)
	if err != nil {
		return err
	}

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	w := s.b.EncodingWriter(enc)
	if _, err := readInputs(w, args); err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}

	if _, err := s.b.WriteTo(os.Stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
