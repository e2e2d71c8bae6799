package flash

import (
	"errors"
	"fmt"
	"strings"
)

// CartType selects the bank-placement convention of the target cartridge board.
type CartType int

// Cartridge types as selectable with --type.
const (
	// MegaSCC is a Konami SCC style MegaROM board; banks fill the chip
	// from the start.
	MegaSCC CartType = iota

	// RC755 is a Konami (without SCC) RC755 board; same placement as
	// MegaSCC, different hardware.
	RC755

	// Simple64K is a mapper-less 64 KiB board: eight 8 KiB blocks
	// addressed directly, so the start bank matters.
	Simple64K
)

// String returns a human-readable name for the cartridge type.
func (t CartType) String() string {
	switch t {
	case MegaSCC:
		return "MegaSCC"
	case RC755:
		return "RC755"
	case Simple64K:
		return "Simple64K"
	default:
		return fmt.Sprintf("UNKNOWN (%d)", int(t))
	}
}

// ErrUnknownCartType indicates an unsupported or unknown cartridge type.
var ErrUnknownCartType = errors.New("unknown cartridge type")

// ParseCartType maps a command-line spelling to a cartridge type.
// Accepted spellings are mega, scc and megascc for MegaSCC, rc755 for
// RC755, and s64k and simple64k for Simple64K, case-insensitively.
func ParseCartType(s string) (CartType, error) {
	switch strings.ToLower(s) {
	case "mega", "scc", "megascc":
		return MegaSCC, nil
	case "rc755":
		return RC755, nil
	case "s64k", "simple64k":
		return Simple64K, nil
	default:
		return 0, fmt.Errorf("%w: %q (use mega, rc755, or s64k)", ErrUnknownCartType, s)
	}
}
