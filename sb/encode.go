package sb

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// EncodingWriter returns a writer that transcodes UTF-8 input with enc and
// appends the result to b. Close flushes any buffered tail.
func (b *Builder) EncodingWriter(enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(b, enc.NewEncoder())
}

// AppendEncoded transcodes s from UTF-8 with enc (for example
// charmap.Windows1252) and appends the encoded bytes. A rune the encoding
// cannot represent fails the call; bytes encoded before it may already be in
// the chain.
func (b *Builder) AppendEncoded(s string, enc encoding.Encoding) error {
	if err := b.check(); err != nil {
		return err
	}
	w := b.EncodingWriter(enc)
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
