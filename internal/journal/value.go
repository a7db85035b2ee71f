// Package journal persists proposition sessions: every dispatched action is
// appended to a SQLite log under a content-addressed ID, and a stored session
// replays into the identical live session.
//
// Records are canonicalized before hashing with RFC 8785 canonical JSON.
// The value union deliberately has no float and no null: coordinates cross
// the boundary as shortest-round-trip decimal strings, so the same geometry
// always hashes to the same ID on every platform.
package journal

import (
	"slices"
	"unicode/utf16"
)

// Value is the sealed union of canonical JSON values. Only VString, VInt,
// VBool, VArray, and VObject implement it; floats and nulls cannot be
// represented at all.
type Value interface {
	value() // sealed
}

// VString is a canonical JSON string.
type VString string

func (VString) value() {}

// VInt is a canonical JSON integer, always int64.
type VInt int64

func (VInt) value() {}

// VBool is a canonical JSON boolean.
type VBool bool

func (VBool) value() {}

// VArray is a canonical JSON array.
type VArray []Value

func (VArray) value() {}

// VObject is a canonical JSON object. Iterate via SortedKeys.
type VObject map[string]Value

func (VObject) value() {}

// SortedKeys returns the object's keys in RFC 8785 order: by UTF-16 code
// units, not UTF-8 bytes. The two orders differ for characters outside the
// BMP, so Go's native string comparison cannot be used here.
func (o VObject) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

// compareUTF16 compares strings by UTF-16 code units, surrogates included.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
