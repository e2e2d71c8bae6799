// Package main provides the rom2msx CLI application.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/general-ackbar/rom2msx/internal/flash"
	"github.com/general-ackbar/rom2msx/internal/msxrom"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidAddr indicates the requested start bank is out of range.
var ErrInvalidAddr = errors.New("--addr must be between 0 and 7")

// CLI represents the command-line interface structure.
type CLI struct {
	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert a ROM image into a flash image (default command)."`
	Info    InfoCmd    `cmd:"" help:"Display ROM information and placement plans."`
	Verify  VerifyCmd  `cmd:"" help:"Check a flash image against the ROM it was built from."`
}

// ConvertCmd converts a ROM image into a flash image.
type ConvertCmd struct {
	Input  string `arg:"" help:"Path to ROM file."`
	Output string `arg:"" help:"Path to flash image to write."`

	Chip    int    `default:"128" help:"Flash chip size in KiB: 64, 128, 256, or 512."`
	Type    string `default:"mega" help:"Cartridge type: mega|scc|megascc, rc755, or s64k|simple64k."`
	Addr    *int   `placeholder:"BANK" help:"Start bank for Simple64K (0-7); omitted means automatic."`
	Verify  bool   `help:"Read the output back and check the placement."`
	Verbose bool   `short:"v" help:"Show debug output."`
}

// Run executes the convert command.
func (c *ConvertCmd) Run() error {
	if c.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Validate layout options before touching any file
	chip, typ, addr, err := parseLayout(c.Chip, c.Type, c.Addr)
	if err != nil {
		return err
	}

	// Read ROM file
	rom, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}
	log.Debugf("read %d bytes from %s", len(rom), c.Input)

	// Lay the ROM out as chip contents
	img, placement, err := flash.Convert(rom, typ, chip, addr)
	if err != nil {
		return err
	}

	// Write flash image
	if err := os.WriteFile(c.Output, img, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	log.Debugf("wrote %d bytes to %s", len(img), c.Output)

	report := placement.String()
	if c.Verify {
		if err := verifyFile(c.Output, flash.Pad(rom), placement); err != nil {
			return err
		}
		report += "; verify: OK"
	}
	fmt.Println(report)

	return nil
}

// InfoCmd displays ROM information and placement plans.
type InfoCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to ROM file."`

	Chip    int  `default:"128" help:"Flash chip size in KiB the plans assume."`
	Verbose bool `short:"v" help:"Show debug output."`
}

// Run executes the info command.
func (c *InfoCmd) Run() error {
	if c.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	chip, err := flash.ParseChipSize(c.Chip)
	if err != nil {
		return err
	}

	// Read ROM file
	data, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}
	padded := flash.Pad(data)
	banks := len(padded) / flash.BankSize

	// Display ROM information
	fmt.Printf("ROM Information:\n")
	fmt.Printf("  File:        %s\n", c.ROM)
	fmt.Printf("  Size:        %d bytes\n", len(data))
	fmt.Printf("  Padded size: %d bytes (%d banks of 8 KiB)\n", len(padded), banks)

	// The header is informational only; conversion never reads it
	offset, header, err := msxrom.FindHeader(data)
	if err != nil {
		fmt.Printf("  Header:      none\n")
	} else {
		fmt.Printf("  Header:      found at 0x%04X\n", offset)
		fmt.Printf("  INIT:        %s\n", vector(header.Init))
		fmt.Printf("  STATEMENT:   %s\n", vector(header.Statement))
		fmt.Printf("  DEVICE:      %s\n", vector(header.Device))
		fmt.Printf("  TEXT:        %s\n", vector(header.Text))
	}

	// Show where each cartridge type would place the ROM
	fmt.Printf("\nPlacement on a %s chip (%s):\n", chip, chip.Device())
	for _, typ := range []flash.CartType{flash.MegaSCC, flash.RC755, flash.Simple64K} {
		p, err := flash.Plan(typ, chip, -1, banks)
		switch {
		case err != nil:
			fmt.Printf("  %-11s %v\n", typ.String()+":", err)
		case p.BankCount == 0:
			fmt.Printf("  %-11s no banks (empty ROM)\n", typ.String()+":")
		default:
			fmt.Printf("  %-11s banks %d-%d\n", typ.String()+":", p.StartBank, p.StartBank+p.BankCount-1)
		}
	}

	return nil
}

// VerifyCmd checks an existing flash image against its source ROM.
type VerifyCmd struct {
	ROM   string `arg:"" type:"existingfile" help:"Path to ROM file the image was built from."`
	Image string `arg:"" type:"existingfile" help:"Path to flash image to check."`

	Chip    int    `default:"128" help:"Flash chip size in KiB: 64, 128, 256, or 512."`
	Type    string `default:"mega" help:"Cartridge type: mega|scc|megascc, rc755, or s64k|simple64k."`
	Addr    *int   `placeholder:"BANK" help:"Start bank for Simple64K (0-7); omitted means automatic."`
	Verbose bool   `short:"v" help:"Show debug output."`
}

// Run executes the verify command.
func (c *VerifyCmd) Run() error {
	if c.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	chip, typ, addr, err := parseLayout(c.Chip, c.Type, c.Addr)
	if err != nil {
		return err
	}

	// Read ROM file
	rom, err := os.ReadFile(c.ROM)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %w", err)
	}
	padded := flash.Pad(rom)

	// Recompute the placement the conversion would have used
	placement, err := flash.Plan(typ, chip, addr, len(padded)/flash.BankSize)
	if err != nil {
		return err
	}

	if err := verifyFile(c.Image, padded, placement); err != nil {
		return err
	}

	fmt.Printf("%s; verify: OK\n", placement)

	return nil
}

// parseLayout validates the layout options shared by convert and
// verify. A nil addr selects automatic placement, reported as -1.
func parseLayout(chipKiB int, typeName string, addr *int) (flash.ChipSize, flash.CartType, int, error) {
	chip, err := flash.ParseChipSize(chipKiB)
	if err != nil {
		return 0, 0, 0, err
	}

	typ, err := flash.ParseCartType(typeName)
	if err != nil {
		return 0, 0, 0, err
	}

	start := -1
	if addr != nil {
		if *addr < 0 || *addr > 7 {
			return 0, 0, 0, fmt.Errorf("%w: got %d", ErrInvalidAddr, *addr)
		}
		start = *addr
	}

	return chip, typ, start, nil
}

// verifyFile reads a written image back and checks it against the
// padded ROM.
func verifyFile(path string, padded []byte, p flash.Placement) error {
	img, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image back: %w", err)
	}
	return flash.Verify(img, padded, p)
}

// vector formats an entry vector, which reads zero when absent.
func vector(addr uint16) string {
	if addr == 0 {
		return "none"
	}
	return fmt.Sprintf("0x%04X", addr)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("rom2msx"),
		kong.Description("Convert raw ROM images into flash images for MegaSCC, RC755, and Simple64K MSX cartridges."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
