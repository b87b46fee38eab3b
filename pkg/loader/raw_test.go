package loader

import (
	"bytes"
	"testing"

	"rv32i/pkg/core"
)

func TestLoadRawCopiesFromStart(t *testing.T) {
	m := core.NewMachine(16, 0x8000_0000)
	data := []byte{0xAA, 0xBB, 0xCC, 0xDD}

	if err := LoadRaw(m, bytes.NewReader(data)); err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if !bytes.Equal(m.Memory[:4], data) {
		t.Fatalf("memory[:4] = %v, want %v", m.Memory[:4], data)
	}
	for _, b := range m.Memory[4:] {
		if b != 0 {
			t.Fatalf("memory beyond the short image was not left zeroed")
		}
	}
}

func TestLoadRawShorterThanImageIsNotAnError(t *testing.T) {
	m := core.NewMachine(4, 0)
	if err := LoadRaw(m, bytes.NewReader([]byte{1, 2})); err != nil {
		t.Fatalf("LoadRaw: unexpected error for a short image: %v", err)
	}
}
