package jsonlit

import "github.com/fatih/color"

// ColorMode defines color output behavior.
type ColorMode string

const (
	ColorModeAuto   ColorMode = "auto"   // Color when TTY
	ColorModeAlways ColorMode = "always" // Always color
	ColorModeNever  ColorMode = "never"  // No color
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc() // ✓
	colorFailure = color.New(color.FgRed).SprintFunc()   // ✗
	colorDetail  = color.New(color.FgHiBlack).SprintFunc()
	colorHeader  = color.New(color.Bold).SprintFunc()
)

// SetColorMode configures color output based on mode.
func SetColorMode(mode ColorMode) {
	switch mode {
	case ColorModeAlways:
		color.NoColor = false
	case ColorModeNever:
		color.NoColor = true
	case ColorModeAuto:
		// fatih/color detects the TTY on its own
	}
}

// IsColorEnabled returns whether color output is enabled.
// This should be called after SetColorMode.
func IsColorEnabled() bool {
	return !color.NoColor
}
