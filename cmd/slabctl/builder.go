package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/slabkit/cmd/slabctl/logger"
	"github.com/joshuapare/slabkit/internal/mmfile"
	"github.com/joshuapare/slabkit/sb"
	"github.com/joshuapare/slabkit/sb/alloc"
)

// session is one builder plus the registry its allocator reports to.
type session struct {
	b   *sb.Builder
	reg *prometheus.Registry
}

// selectAllocator maps the --allocator flag to an implementation.
func selectAllocator(name string) (alloc.Allocator, error) {
	switch name {
	case "", "os":
		return alloc.NewOS(), nil
	case "portable":
		return alloc.NewPortable(), nil
	case "heap":
		return alloc.NewHeap(), nil
	default:
		return nil, fmt.Errorf("unknown allocator %q (want os, portable or heap)", name)
	}
}

// newSession builds an instrumented builder from the global flags.
func newSession(strict bool) (*session, error) {
	base, err := selectAllocator(allocName)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	a, err := alloc.Instrument(base, reg, allocName)
	if err != nil {
		return nil, fmt.Errorf("instrument allocator: %w", err)
	}

	b, err := sb.New(&sb.Options{
		Capacity:         capacity,
		Allocator:        a,
		EagerGrowth:      eager,
		StrictDirectives: strict,
		Logger:           logger.L,
	})
	if err != nil {
		return nil, err
	}
	return &session{b: b, reg: reg}, nil
}

// close tears the builder down and logs the outcome.
func (s *session) close() error {
	err := s.b.Free()
	if err != nil {
		logger.Warn("teardown incomplete", "error", err)
	}
	return err
}

// readInputs copies every named file, or stdin when there are none, into w.
func readInputs(w io.Writer, paths []string) (int64, error) {
	if len(paths) == 0 {
		return io.Copy(w, os.Stdin)
	}
	var total int64
	for _, p := range paths {
		n, err := copyFile(w, p)
		total += n
		if err != nil {
			return total, err
		}
		printVerbose("Read %s (%d bytes)\n", p, n)
	}
	return total, nil
}

// copyFile maps path and writes its bytes to w in one call.
func copyFile(w io.Writer, path string) (int64, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer m.Close()
	n, err := w.Write(m.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("failed to read %s: %w", path, err)
	}
	return int64(n), nil
}
