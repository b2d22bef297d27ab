package shared

import "os"

// unicodeDisabled is set when the terminal cannot be trusted with box-drawing glyphs.
//
//nolint:gochecknoglobals // Read once from the environment at startup
var unicodeDisabled = os.Getenv("TERM") == "dumb" || os.Getenv("ORGANIZE_FILES_ASCII") != ""

// ActiveSymbol returns a circled dot symbol with ASCII fallback
func ActiveSymbol() string {
	if unicodeDisabled {
		return "[*]"
	}

	return "◉"
}

// CancelledSymbol returns a cancelled/prohibited symbol with ASCII fallback
func CancelledSymbol() string {
	if unicodeDisabled {
		return "[!]"
	}

	return "⊘"
}

// ErrorSymbol returns a cross with ASCII fallback
func ErrorSymbol() string {
	if unicodeDisabled {
		return "[x]"
	}

	return "✗"
}

// PendingSymbol returns an empty circle with ASCII fallback
func PendingSymbol() string {
	if unicodeDisabled {
		return "[ ]"
	}

	return "○"
}

// SkippedSymbol returns a dash-in-circle with ASCII fallback
func SkippedSymbol() string {
	if unicodeDisabled {
		return "[-]"
	}

	return "⊖"
}

// SuccessSymbol returns a check mark with ASCII fallback
func SuccessSymbol() string {
	if unicodeDisabled {
		return "[v]"
	}

	return "✓"
}
