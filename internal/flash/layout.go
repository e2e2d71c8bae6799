// Package flash lays out raw ROM images as flash chip contents for
// MegaSCC, RC755, and Simple64K cartridge boards.
package flash

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	// BankSize is the unit of placement: ROM data moves in 8 KiB banks.
	BankSize = 8192

	// Erased is the value every byte of a blank flash chip reads as.
	// Padding and unwritten output regions hold it.
	Erased = 0xFF
)

// A Simple64K board exposes a fixed window of eight banks mapped
// linearly over the 64 KiB address space. ROMs of up to 32 KiB start at
// bank 2 so their first byte lands at 0x4000, the MSX page-1 base;
// larger ROMs start at bank 0.
const (
	windowBanks    = 8
	smallStartBank = 2
	smallROMLimit  = 32 * 1024
)

var (
	// ErrROMTooLarge indicates the padded ROM exceeds the eight-bank
	// window of a Simple64K board.
	ErrROMTooLarge = errors.New("ROM too large for Simple64K (max 64 KiB)")

	// ErrChipTooSmall indicates the padded ROM exceeds the selected chip.
	ErrChipTooSmall = errors.New("ROM larger than selected chip size")

	// ErrPlacementOverflow indicates a start bank that pushes the ROM
	// past the end of the Simple64K window.
	ErrPlacementOverflow = errors.New("placement exceeds the 64 KiB window")

	// ErrImageOverflow indicates a bank copy that would run past the end
	// of the output image.
	ErrImageOverflow = errors.New("bank placement exceeds the output image")
)

// Placement reports where a conversion put the ROM inside the output
// image.
type Placement struct {
	Type      CartType
	Chip      ChipSize
	StartBank int
	BankCount int
}

// String formats the placement the way the tool reports it after a
// conversion.
func (p Placement) String() string {
	return fmt.Sprintf("Type: %s, chip: %s, banks written: %d, start bank: %d, bank size: 8 KiB",
		p.Type, p.Chip, p.BankCount, p.StartBank)
}

// Pad returns rom extended at the tail with the erased value until its
// length is a multiple of BankSize. A ROM that is already aligned,
// including an empty one, is returned unchanged.
func Pad(rom []byte) []byte {
	rem := len(rom) % BankSize
	if rem == 0 {
		return rom
	}
	padded := make([]byte, len(rom)+BankSize-rem)
	copy(padded, rom)
	for i := len(rom); i < len(padded); i++ {
		padded[i] = Erased
	}
	return padded
}

// Plan computes where a ROM of bankCount banks lands for the given
// cartridge type and chip size. addr is the requested start bank on a
// Simple64K board; a negative addr selects automatic placement. The
// other types ignore addr and always start at bank 0.
func Plan(typ CartType, chip ChipSize, addr, bankCount int) (Placement, error) {
	if typ == Simple64K && bankCount > windowBanks {
		return Placement{}, fmt.Errorf("%w: got %d banks", ErrROMTooLarge, bankCount)
	}
	if bankCount*BankSize > chip.Bytes() {
		return Placement{}, fmt.Errorf("%w: %d bytes padded, %s chip holds %d",
			ErrChipTooSmall, bankCount*BankSize, chip, chip.Bytes())
	}

	p := Placement{Type: typ, Chip: chip, BankCount: bankCount}

	switch typ {
	case MegaSCC, RC755:
		p.StartBank = 0

	case Simple64K:
		switch {
		case addr >= 0:
			p.StartBank = addr
		case bankCount*BankSize <= smallROMLimit:
			p.StartBank = smallStartBank
		default:
			p.StartBank = 0
		}
		// The automatic branches cannot overflow after the eight-bank
		// check above, but the fit is re-validated for every branch.
		if p.StartBank+bankCount > windowBanks {
			return Placement{}, fmt.Errorf("%w: start bank %d + %d banks",
				ErrPlacementOverflow, p.StartBank, bankCount)
		}

	default:
		return Placement{}, fmt.Errorf("%w: %v", ErrUnknownCartType, typ)
	}

	return p, nil
}

// Convert lays out a raw ROM image as the content of a flash chip. The
// input is padded to a bank multiple, placed according to the cartridge
// type, and returned as a chip-sized image together with the placement.
// addr is the Simple64K start bank; negative means automatic.
func Convert(rom []byte, typ CartType, chip ChipSize, addr int) ([]byte, Placement, error) {
	padded := Pad(rom)
	if len(padded) != len(rom) {
		log.Debugf("padded ROM from %d to %d bytes", len(rom), len(padded))
	}

	p, err := Plan(typ, chip, addr, len(padded)/BankSize)
	if err != nil {
		return nil, Placement{}, err
	}
	log.Debugf("placing %d banks at start bank %d on a %s chip", p.BankCount, p.StartBank, p.Chip)

	img := make([]byte, chip.Bytes())
	for i := range img {
		img[i] = Erased
	}
	if err := placeBanks(img, padded, p.StartBank); err != nil {
		return nil, Placement{}, err
	}

	return img, p, nil
}

// placeBanks copies every bank of the padded ROM into the image at the
// given start bank. Bounds are re-checked per bank even though Plan
// already validated the fit.
func placeBanks(img, padded []byte, startBank int) error {
	for b := 0; b < len(padded)/BankSize; b++ {
		dst := (startBank + b) * BankSize
		if dst+BankSize > len(img) {
			return fmt.Errorf("%w: bank %d at offset 0x%05X", ErrImageOverflow, b, dst)
		}
		copy(img[dst:dst+BankSize], padded[b*BankSize:(b+1)*BankSize])
	}
	return nil
}
