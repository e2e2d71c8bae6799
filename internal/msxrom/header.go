// Package msxrom inspects MSX cartridge ROM headers.
package msxrom

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the length of the cartridge header block.
const HeaderSize = 16

// Offsets at which a cartridge header may start. Page-1 dumps carry the
// header at the start of the file; 32 KiB and larger dumps whose first
// page is data carry it at 0x4000.
var headerOffsets = [...]int{0x0000, 0x4000}

// Header represents the MSX cartridge header: the "AB" signature
// followed by four little-endian entry vectors.
type Header struct {
	// INIT routine address (+0x0002-0x0003)
	Init uint16

	// STATEMENT handler address (+0x0004-0x0005)
	Statement uint16

	// DEVICE handler address (+0x0006-0x0007)
	Device uint16

	// TEXT (tokenized BASIC) address (+0x0008-0x0009)
	Text uint16
}

// ErrTooShort indicates the ROM is too small to contain a header.
var ErrTooShort = errors.New("ROM too small for a cartridge header")

// ErrNoSignature indicates no "AB" signature at any known offset.
var ErrNoSignature = errors.New("no AB cartridge signature")

// FindHeader probes the known header offsets in order and parses the
// first header it finds, returning the file offset it was found at.
func FindHeader(rom []byte) (int, *Header, error) {
	if len(rom) < HeaderSize {
		return 0, nil, fmt.Errorf("%w: got %d bytes", ErrTooShort, len(rom))
	}

	for _, off := range headerOffsets {
		if len(rom) < off+HeaderSize {
			break
		}
		if rom[off] == 'A' && rom[off+1] == 'B' {
			return off, parseHeader(rom[off : off+HeaderSize]), nil
		}
	}

	return 0, nil, ErrNoSignature
}

// parseHeader decodes the entry vectors of a HeaderSize-byte block.
func parseHeader(b []byte) *Header {
	return &Header{
		Init:      binary.LittleEndian.Uint16(b[0x02:0x04]),
		Statement: binary.LittleEndian.Uint16(b[0x04:0x06]),
		Device:    binary.LittleEndian.Uint16(b[0x06:0x08]),
		Text:      binary.LittleEndian.Uint16(b[0x08:0x0A]),
	}
}

// HasInit returns true if the cartridge declares an INIT routine.
func (h *Header) HasInit() bool {
	return h.Init != 0
}

// HasStatement returns true if the cartridge declares a STATEMENT handler.
func (h *Header) HasStatement() bool {
	return h.Statement != 0
}

// HasDevice returns true if the cartridge declares a DEVICE handler.
func (h *Header) HasDevice() bool {
	return h.Device != 0
}

// HasText returns true if the cartridge carries a BASIC program.
func (h *Header) HasText() bool {
	return h.Text != 0
}
