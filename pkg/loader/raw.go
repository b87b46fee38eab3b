package loader

import (
	"fmt"
	"io"
	"os"

	"rv32i/pkg/core"
)

// LoadRaw copies a flat little-endian machine-code image from r
// directly to the start of m's memory image, with no ELF parsing. It is
// the non-ELF counterpart to LoadELF, for synthetic test images that
// are just a sequence of instruction words.
func LoadRaw(m *core.Machine, r io.Reader) error {
	n, err := io.ReadFull(r, m.Memory)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("loader: reading raw image: %w", err)
	}
	_ = n
	return nil
}

// LoadRawFile is a convenience wrapper around LoadRaw that opens path
// itself.
func LoadRawFile(m *core.Machine, path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer fp.Close()
	return LoadRaw(m, fp)
}
