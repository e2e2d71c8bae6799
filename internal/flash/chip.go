package flash

import (
	"errors"
	"fmt"
)

// ChipSize is the capacity of the target flash device in KiB. It fixes
// the output image length.
type ChipSize int

// Supported flash chips (SST39SF family).
const (
	Chip64  ChipSize = 64  // SST39SF512
	Chip128 ChipSize = 128 // SST39SF010
	Chip256 ChipSize = 256 // SST39SF020
	Chip512 ChipSize = 512 // SST39SF040
)

// ErrInvalidChipSize indicates a chip size outside the supported set.
var ErrInvalidChipSize = errors.New("unsupported chip size")

// ParseChipSize validates a --chip value in KiB.
func ParseChipSize(kib int) (ChipSize, error) {
	switch kib {
	case 64, 128, 256, 512:
		return ChipSize(kib), nil
	default:
		return 0, fmt.Errorf("%w: %d (use 64, 128, 256, or 512)", ErrInvalidChipSize, kib)
	}
}

// Bytes returns the chip capacity in bytes.
func (c ChipSize) Bytes() int {
	return int(c) * 1024
}

// Banks returns the chip capacity in 8 KiB banks.
func (c ChipSize) Banks() int {
	return c.Bytes() / BankSize
}

// Device returns the part number of the matching SST39SF flash chip.
func (c ChipSize) Device() string {
	switch c {
	case Chip64:
		return "SST39SF512"
	case Chip128:
		return "SST39SF010"
	case Chip256:
		return "SST39SF020"
	case Chip512:
		return "SST39SF040"
	default:
		return fmt.Sprintf("UNKNOWN (%d KiB)", int(c))
	}
}

// String returns the size the way reports print it, e.g. "128 KiB".
func (c ChipSize) String() string {
	return fmt.Sprintf("%d KiB", int(c))
}
