package coloransi

import (
	"fmt"
	"strings"
)

// ColorCode represents ANSI color codes and RGB colors as a 32-bit integer.
// The lower 8 bits represent ANSI color codes, and the upper 24 bits represent RGB values.
type ColorCode uint32

// ANSI color codes
const (
	Black   ColorCode = 30
	Red     ColorCode = 31
	Green   ColorCode = 32
	Yellow  ColorCode = 33
	Blue    ColorCode = 34
	Magenta ColorCode = 35
	Cyan    ColorCode = 36
	White   ColorCode = 37

	// For bright colors, add 60
	BrightBlack ColorCode = Black + 60
	BrightRed   ColorCode = Red + 60

	// RGB color mask
	RGBMask ColorCode = 0xFFFFFF00
)

type TextStyle uint8

const (
	Bold TextStyle = 1
	Dim  TextStyle = 2
)

// RGB creates a ColorCode from RGB values
func RGB(r, g, b uint8) ColorCode {
	return ColorCode(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8)
}

var ColorOrange ColorCode = RGB(255, 140, 0)

// IsRGB checks if the ColorCode represents an RGB color
func (c ColorCode) IsRGB() bool {
	return c&RGBMask != 0
}

// OneForeground returns the ANSI escape sequence for the given color code.
func OneForeground(code ColorCode) string {
	if code.IsRGB() {
		r := (code >> 24) & 0xFF
		g := (code >> 16) & 0xFF
		b := (code >> 8) & 0xFF
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
	}
	return fmt.Sprintf("\033[%dm", code)
}

// Reset returns the ANSI escape sequence to reset the text color.
func Reset() string {
	return "\033[0m"
}

// Painter applies colors and styles only when Enabled, so callers can build
// the same output for terminals and pipes.
type Painter struct {
	Enabled bool
}

// Foreground wraps s in the given foreground color
func (p Painter) Foreground(fg ColorCode, s string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return OneForeground(fg) + s + Reset()
}

// Style wraps s in the given text styles
func (p Painter) Style(s string, styles ...TextStyle) string {
	if !p.Enabled || s == "" || len(styles) == 0 {
		return s
	}
	var b strings.Builder
	for _, style := range styles {
		fmt.Fprintf(&b, "\033[%dm", style)
	}
	b.WriteString(s)
	b.WriteString(Reset())
	return b.String()
}
