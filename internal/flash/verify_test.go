package flash

import (
	"errors"
	"strings"
	"testing"
)

// convertForVerify produces an image, the padded ROM, and the placement
// for verify tests.
func convertForVerify(t *testing.T, rom []byte, typ CartType, chip ChipSize, addr int) ([]byte, []byte, Placement) {
	t.Helper()

	img, p, err := Convert(rom, typ, chip, addr)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return img, Pad(rom), p
}

// TestVerify verifies a freshly converted image passes for every
// cartridge type.
func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		size int
		typ  CartType
		chip ChipSize
		addr int
	}{
		{"MegaSCC", 20000, MegaSCC, Chip128, -1},
		{"RC755", 3 * BankSize, RC755, Chip256, -1},
		{"Simple64K auto", 16 * 1024, Simple64K, Chip64, -1},
		{"Simple64K explicit", 3 * BankSize, Simple64K, Chip64, 5},
		{"empty ROM", 0, MegaSCC, Chip64, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, padded, p := convertForVerify(t, testROM(tt.size), tt.typ, tt.chip, tt.addr)
			if err := Verify(img, padded, p); err != nil {
				t.Errorf("Verify() error = %v, want nil", err)
			}
		})
	}
}

// TestVerifyBankMismatch verifies a corrupted placed bank is caught and
// identified.
func TestVerifyBankMismatch(t *testing.T) {
	img, padded, p := convertForVerify(t, testROM(20000), MegaSCC, Chip128, -1)

	// Corrupt one byte in the second placed bank
	img[BankSize+100] ^= 0x01

	err := Verify(img, padded, p)
	if !errors.Is(err, ErrBankMismatch) {
		t.Fatalf("Verify() error = %v, want %v", err, ErrBankMismatch)
	}
	if !strings.Contains(err.Error(), "bank 1") {
		t.Errorf("Verify() error %q does not identify bank 1", err)
	}
}

// TestVerifyNotErased verifies stray data outside the placed banks is
// caught.
func TestVerifyNotErased(t *testing.T) {
	tests := []struct {
		name   string
		offset int
	}{
		{"before the banks", 100},
		{"after the banks", 7*BankSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A 16 KiB ROM lands at banks 2-3 of the window
			img, padded, p := convertForVerify(t, testROM(2*BankSize), Simple64K, Chip64, -1)

			img[tt.offset] = 0x00

			err := Verify(img, padded, p)
			if !errors.Is(err, ErrNotErased) {
				t.Errorf("Verify() error = %v, want %v", err, ErrNotErased)
			}
		})
	}
}

// TestVerifyTruncatedImage verifies an image shorter than the placement
// is rejected.
func TestVerifyTruncatedImage(t *testing.T) {
	img, padded, p := convertForVerify(t, testROM(3*BankSize), MegaSCC, Chip128, -1)

	err := Verify(img[:2*BankSize], padded, p)
	if !errors.Is(err, ErrImageTruncated) {
		t.Errorf("Verify() error = %v, want %v", err, ErrImageTruncated)
	}
}

// TestVerifyEmptyROM verifies an all-erased image passes for a
// zero-bank placement and any stray data fails it.
func TestVerifyEmptyROM(t *testing.T) {
	img, padded, p := convertForVerify(t, nil, MegaSCC, Chip64, -1)

	if err := Verify(img, padded, p); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}

	img[0] = 'A'
	if err := Verify(img, padded, p); !errors.Is(err, ErrNotErased) {
		t.Errorf("Verify() error = %v, want %v", err, ErrNotErased)
	}
}
