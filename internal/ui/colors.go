package ui

// Color accessor functions return the ANSI escape sequence for a color role
// in the currently active theme. They exist so callers can format with
// familiar color names while the theme decides the actual rendering; with the
// "none" theme every accessor returns the empty string.

// ColorReset returns the sequence that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color sequence.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color sequence.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color sequence.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent color sequence.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color sequence.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color sequence.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold text sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline sequence.
func ColorUnderline() string { return GetCurrentTheme().Underline }
