package memio

import "testing"

func TestLoadStoreWordRoundTrip(t *testing.T) {
	image := make([]byte, 16)
	base := uint32(0x8000_0000)

	if err := StoreWord(image, base, base+4, 0xDEADBEEF); err != nil {
		t.Fatalf("StoreWord: %v", err)
	}
	got, err := LoadWord(image, base, base+4)
	if err != nil {
		t.Fatalf("LoadWord: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("LoadWord() = 0x%x, want 0xDEADBEEF", got)
	}
}

func TestLoadWordLittleEndian(t *testing.T) {
	image := []byte{0x01, 0x02, 0x03, 0x04}
	got, err := LoadWord(image, 0, 0)
	if err != nil {
		t.Fatalf("LoadWord: %v", err)
	}
	if got != 0x04030201 {
		t.Fatalf("LoadWord() = 0x%x, want 0x04030201", got)
	}
}

func TestStoreHalf(t *testing.T) {
	image := make([]byte, 4)
	if err := StoreHalf(image, 0, 0, 0xABCD); err != nil {
		t.Fatalf("StoreHalf: %v", err)
	}
	if image[0] != 0xCD || image[1] != 0xAB {
		t.Fatalf("image = %v, want [0xCD 0xAB ...]", image)
	}
}

func TestStoreByte(t *testing.T) {
	image := make([]byte, 1)
	if err := StoreByte(image, 0, 0, 0x7F); err != nil {
		t.Fatalf("StoreByte: %v", err)
	}
	if image[0] != 0x7F {
		t.Fatalf("image[0] = 0x%x, want 0x7F", image[0])
	}
}

func TestOutOfRangeBelowBase(t *testing.T) {
	image := make([]byte, 16)
	_, err := LoadWord(image, 0x8000_0000, 0x7FFF_FFFC)
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
	var oor *OutOfRangeError
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Fatalf("error type = %T, want *OutOfRangeError", err)
	}
	_ = oor
}

func TestOutOfRangeBeyondEnd(t *testing.T) {
	image := make([]byte, 4)
	if _, err := LoadWord(image, 0, 2); err == nil {
		t.Fatal("expected out-of-range error for a word straddling the end")
	}
}

func TestOutOfRangeErrorCarriesArchitecturalAddress(t *testing.T) {
	image := make([]byte, 4)
	_, err := LoadWord(image, 0x8000_0000, 0x9000_0000)
	oor, ok := err.(*OutOfRangeError)
	if !ok {
		t.Fatalf("error type = %T, want *OutOfRangeError", err)
	}
	if oor.Address != 0x9000_0000 {
		t.Fatalf("Address = 0x%x, want 0x9000_0000", oor.Address)
	}
}
