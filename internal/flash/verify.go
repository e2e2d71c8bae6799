package flash

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrImageTruncated indicates the persisted image is too short to
	// contain the placed banks.
	ErrImageTruncated = errors.New("image shorter than the placed banks")

	// ErrBankMismatch indicates a placed bank differs from the ROM.
	ErrBankMismatch = errors.New("image does not match ROM")

	// ErrNotErased indicates data outside the placed banks.
	ErrNotErased = errors.New("unexpected data outside the placed banks")
)

// Verify checks a persisted image against the padded ROM it was built
// from. Every placed bank must match the ROM byte for byte, and every
// byte outside the placed banks must hold the erased value. padded must
// cover the placement's bank count, as returned by Pad on the original
// input.
func Verify(img, padded []byte, p Placement) error {
	start := p.StartBank * BankSize
	end := (p.StartBank + p.BankCount) * BankSize
	if len(img) < end {
		return fmt.Errorf("%w: image is %d bytes, banks end at %d",
			ErrImageTruncated, len(img), end)
	}

	for b := 0; b < p.BankCount; b++ {
		src := b * BankSize
		dst := (p.StartBank + b) * BankSize
		for i := 0; i < BankSize; i++ {
			if img[dst+i] != padded[src+i] {
				return fmt.Errorf("%w: bank %d, offset 0x%05X",
					ErrBankMismatch, b, dst+i)
			}
		}
	}
	log.Debugf("verified %d banks at start bank %d", p.BankCount, p.StartBank)

	for i, v := range img {
		if i >= start && i < end {
			continue
		}
		if v != Erased {
			return fmt.Errorf("%w: 0x%02X at offset 0x%05X", ErrNotErased, v, i)
		}
	}

	return nil
}
