// Package indent infers the indentation convention of a text file from the
// leading whitespace of its lines.
//
// The work is split into three stages: [ScanLine] classifies one line,
// [Aggregator] folds the classifications of a file into [FileStatistics], and
// [Classifier] turns the statistics into a [Verdict].
package indent

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownName is returned when decoding an unrecognised character or type name.
var ErrUnknownName = errors.New("unknown name")

// Character is the whitespace character a line's indentation begins with.
type Character int

const (
	// None marks a line without recognised leading indentation.
	None Character = iota
	// Space marks a line indented with ' '.
	Space
	// Tab marks a line indented with '\t'.
	Tab
)

// Characters lists every Character value in a stable order.
var Characters = []Character{Space, Tab, None}

// String returns the lower-case name of the character.
func (c Character) String() string {
	switch c {
	case Space:
		return "space"
	case Tab:
		return "tab"
	case None:
		return "none"
	default:
		return fmt.Sprintf("character(%d)", int(c))
	}
}

// MarshalText encodes the character by name so it can be used as a map key.
func (c Character) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (c *Character) UnmarshalText(text []byte) error {
	for _, candidate := range Characters {
		if candidate.String() == string(text) {
			*c = candidate

			return nil
		}
	}

	return fmt.Errorf("%w: character %q", ErrUnknownName, text)
}

// Type is the indentation style of a whole file.
type Type int

const (
	// TypeNone means no indentation style dominates.
	TypeNone Type = iota
	// TypeSpaces means the file is indented with spaces.
	TypeSpaces
	// TypeTabs means the file is indented with tabs.
	TypeTabs
	// TypeMixed means both spaces and tabs are in use.
	TypeMixed
)

// String returns the upper-case name used in human-readable output.
func (t Type) String() string {
	switch t {
	case TypeSpaces:
		return "SPACES"
	case TypeTabs:
		return "TABS"
	case TypeMixed:
		return "MIXED"
	case TypeNone:
		return "NONE"
	default:
		return fmt.Sprintf("TYPE(%d)", int(t))
	}
}

// MarshalText encodes the type as its lower-case name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText decodes a type name, case-insensitively.
func (t *Type) UnmarshalText(text []byte) error {
	for _, candidate := range []Type{TypeNone, TypeSpaces, TypeTabs, TypeMixed} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*t = candidate

			return nil
		}
	}

	return fmt.Errorf("%w: type %q", ErrUnknownName, text)
}

// HasSpaces reports whether the type calls for space-width inference.
func (t Type) HasSpaces() bool {
	return t == TypeSpaces || t == TypeMixed
}

// LineClassification is the indentation of a single line: the character the
// line starts with and the length of its leading run of that character.
type LineClassification struct {
	Char  Character
	Count int
}
