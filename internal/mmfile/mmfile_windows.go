//go:build windows

package mmfile

import "os"

// Open reads the whole file; slabctl inputs are small enough that a mapping
// view buys nothing on Windows.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}
