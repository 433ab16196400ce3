package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for the font package.
var (
	// ErrMalformedFont is matched by every *MalformedFontError.
	ErrMalformedFont = errors.New("font: malformed font")

	// ErrGlyphOutOfRange is returned for glyph ids not in the font.
	ErrGlyphOutOfRange = errors.New("font: glyph id out of range")

	// ErrEmptyFontData is wrapped by the *MalformedFontError returned when
	// Open is given no bytes.
	ErrEmptyFontData = errors.New("font: empty font data")
)

// MalformedFontError reports a missing, truncated or inconsistent table.
// Table names the offending table tag, or a comma-separated list of tags
// when several required tables are missing. It is empty for problems in
// the file header or table directory itself.
type MalformedFontError struct {
	Table  string
	Reason string
	Err    error // underlying sentinel, if any
}

func (e *MalformedFontError) Error() string {
	if e.Table == "" {
		return "font: malformed font: " + e.Reason
	}
	return fmt.Sprintf("font: malformed %q table: %s", e.Table, e.Reason)
}

// Is reports whether target is ErrMalformedFont.
func (e *MalformedFontError) Is(target error) bool {
	return target == ErrMalformedFont
}

func (e *MalformedFontError) Unwrap() error { return e.Err }

func malformed(table, format string, args ...any) error {
	return &MalformedFontError{Table: table, Reason: fmt.Sprintf(format, args...)}
}
