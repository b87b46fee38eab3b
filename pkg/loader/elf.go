// Package loader populates a core.Machine's memory image from an ELF32
// image, the collaborator the core spec calls out as "external — only
// its interface matters". Loading happens entirely before a Machine's
// first Step call; the loader never touches the register file.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/yalue/elf_reader"

	"rv32i/pkg/core"
)

// LoadELF reads a complete ELF32 image from r, then copies every
// PT_LOAD program header whose physical address is non-zero into m's
// memory image at offset (physical address - m.Base()). Headers with a
// zero physical address are skipped, matching the convention the
// rv32ui-p-* test binaries' linker scripts rely on. A segment whose
// destination range falls outside m's memory image is reported as an
// error; this is a load-time error distinct from a core.Fault, since it
// happens before the machine ever executes an instruction.
func LoadELF(m *core.Machine, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("loader: reading ELF image: %w", err)
	}

	elfFile, err := elf_reader.ParseELFFile(raw)
	if err != nil {
		return fmt.Errorf("loader: parsing ELF image: %w", err)
	}

	count := elfFile.GetProgramHeaderCount()
	for i := uint16(0); i < count; i++ {
		header, err := elfFile.GetProgramHeader(i)
		if err != nil {
			return fmt.Errorf("loader: reading program header %d: %w", i, err)
		}

		phys := header.GetPhysicalAddress()
		if phys == 0 {
			continue
		}
		if header.GetType() != elf_reader.ProgramHeaderTypeLoad {
			continue
		}

		data, err := elfFile.GetProgramContent(header)
		if err != nil {
			return fmt.Errorf("loader: reading segment %d content: %w", i, err)
		}

		dest := uint32(phys) - m.Base()
		end := int64(dest) + int64(len(data))
		if dest > uint32(len(m.Memory)) || end > int64(len(m.Memory)) {
			return fmt.Errorf("loader: segment %d at physical address 0x%08x (size %d) "+
				"does not fit in a %d-byte image based at 0x%08x",
				i, phys, len(data), len(m.Memory), m.Base())
		}

		copy(m.Memory[dest:], data)
	}
	return nil
}

// LoadELFFile is a convenience wrapper around LoadELF that opens path
// itself.
func LoadELFFile(m *core.Machine, path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer fp.Close()
	return LoadELF(m, fp)
}
