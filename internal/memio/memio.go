// Package memio implements bounds-checked little-endian accessors over a
// flat byte-addressable memory image, translating architectural addresses
// to image offsets.
package memio

import "fmt"

// OutOfRangeError reports an access outside the valid memory window. It
// carries the original architectural address, not the translated offset.
type OutOfRangeError struct {
	Address uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("memio: address 0x%08x is out of range", e.Address)
}

func offset(base, size, address uint32, width int) (int, error) {
	off := int64(address) - int64(base)
	if off < 0 || off+int64(width) > int64(size) {
		return 0, &OutOfRangeError{Address: address}
	}
	return int(off), nil
}

// LoadWord reads a little-endian 32-bit word at the given architectural
// address.
func LoadWord(image []byte, base, address uint32) (uint32, error) {
	off, err := offset(base, uint32(len(image)), address, 4)
	if err != nil {
		return 0, err
	}
	b := image[off : off+4]
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// StoreWord writes a little-endian 32-bit word at the given architectural
// address.
func StoreWord(image []byte, base, address, value uint32) error {
	off, err := offset(base, uint32(len(image)), address, 4)
	if err != nil {
		return err
	}
	b := image[off : off+4]
	b[0] = byte(value)
	b[1] = byte(value >> 8)
	b[2] = byte(value >> 16)
	b[3] = byte(value >> 24)
	return nil
}

// StoreHalf writes a little-endian 16-bit halfword at the given
// architectural address.
func StoreHalf(image []byte, base, address uint32, value uint16) error {
	off, err := offset(base, uint32(len(image)), address, 2)
	if err != nil {
		return err
	}
	b := image[off : off+2]
	b[0] = byte(value)
	b[1] = byte(value >> 8)
	return nil
}

// StoreByte writes a single byte at the given architectural address.
func StoreByte(image []byte, base, address uint32, value uint8) error {
	off, err := offset(base, uint32(len(image)), address, 1)
	if err != nil {
		return err
	}
	image[off] = value
	return nil
}
