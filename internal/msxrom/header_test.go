package msxrom

import (
	"errors"
	"testing"
)

// romWithHeader builds a ROM of n bytes carrying a header at the given
// offset, with INIT 0x4010 and STATEMENT 0x4020.
func romWithHeader(n, offset int) []byte {
	rom := make([]byte, n)
	rom[offset] = 'A'
	rom[offset+1] = 'B'
	rom[offset+2] = 0x10
	rom[offset+3] = 0x40
	rom[offset+4] = 0x20
	rom[offset+5] = 0x40
	return rom
}

// TestFindHeader verifies signature probing at both known offsets.
func TestFindHeader(t *testing.T) {
	// A dump with signatures at both offsets resolves to the first
	both := romWithHeader(0x8000, 0x0000)
	both[0x4000] = 'A'
	both[0x4001] = 'B'

	tests := []struct {
		name       string
		rom        []byte
		wantOffset int
		wantErr    error
	}{
		{"header at start", romWithHeader(0x4000, 0x0000), 0x0000, nil},
		{"header at 0x4000", romWithHeader(0x8000, 0x4000), 0x4000, nil},
		{"minimal header", romWithHeader(HeaderSize, 0x0000), 0x0000, nil},
		{"prefers the first offset", both, 0x0000, nil},
		{"no signature", make([]byte, 0x4000), 0, ErrNoSignature},
		{"half a signature", append([]byte{'A'}, make([]byte, HeaderSize)...), 0, ErrNoSignature},
		{"too short", make([]byte, HeaderSize-1), 0, ErrTooShort},
		{"empty", nil, 0, ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, header, err := FindHeader(tt.rom)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FindHeader() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			if offset != tt.wantOffset {
				t.Errorf("FindHeader() offset = 0x%04X, want 0x%04X", offset, tt.wantOffset)
			}

			// Vectors decode little-endian
			if header.Init != 0x4010 {
				t.Errorf("FindHeader() INIT = 0x%04X, want 0x4010", header.Init)
			}
			if header.Statement != 0x4020 {
				t.Errorf("FindHeader() STATEMENT = 0x%04X, want 0x4020", header.Statement)
			}
		})
	}
}

// TestHeaderPredicates verifies the presence predicates track the
// vectors.
func TestHeaderPredicates(t *testing.T) {
	h := &Header{Init: 0x4010}

	if !h.HasInit() {
		t.Error("HasInit() = false, want true")
	}
	if h.HasStatement() {
		t.Error("HasStatement() = true for a zero vector")
	}
	if h.HasDevice() {
		t.Error("HasDevice() = true for a zero vector")
	}
	if h.HasText() {
		t.Error("HasText() = true for a zero vector")
	}
}
