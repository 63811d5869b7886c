// Package mmfile provides platform-specific helpers for reading input files
// through memory mappings.
package mmfile

// Mapping is a read-only view of a file's contents.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Close releases the mapping. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.unmap == nil || m.data == nil {
		m.data = nil
		return nil
	}
	err := m.unmap(m.data)
	m.data = nil
	return err
}
