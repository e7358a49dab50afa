// Package scanner implements the UTF-8 and width scanning primitives used by
// the rope, edit, and view layers: grapheme decoding, newline scanning, and
// soft-wrap break detection. It is pure and allocation-free except for
// output collections, and never looks at anything but the byte slice and
// width oracle it is given.
package scanner

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// WidthMethod selects which grapheme-width algorithm an Oracle built by
// OracleFor uses. Both are deterministic and side-effect free.
type WidthMethod int

const (
	// WidthMethodUnicode is the default tiered unicode-width lookup: O(1)
	// fast paths for ASCII/CJK/simple emoji, grapheme clustering only for
	// combining marks, ZWJ sequences, and emoji modifiers.
	WidthMethodUnicode WidthMethod = iota

	// WidthMethodWCWidth mirrors POSIX wcwidth semantics via go-runewidth,
	// for hosts that need parity with terminal emulators built against the
	// classic wcwidth table rather than the newer Unicode emoji-width data.
	WidthMethodWCWidth
)

// UnicodeConfig is the locale-sensitive knob for ambiguous-width characters
// (±, ½, °, ×, …): narrow in neutral/Western locales, wide in CJK locales.
// Immutable value object; zero value is the narrow (neutral) default.
type UnicodeConfig struct {
	eastAsianWide bool
}

// NewUnicodeConfig returns the default configuration (East Asian Ambiguous
// characters rendered narrow).
func NewUnicodeConfig() UnicodeConfig { return UnicodeConfig{} }

// WithEastAsianWide returns a copy configured for CJK locales.
func (c UnicodeConfig) WithEastAsianWide() UnicodeConfig {
	c.eastAsianWide = true
	return c
}

// IsEastAsianWide reports whether ambiguous-width characters render wide.
func (c UnicodeConfig) IsEastAsianWide() bool { return c.eastAsianWide }

// Oracle maps a single grapheme cluster's bytes to a terminal cell count.
// It must be deterministic and side-effect free.
type Oracle func(cluster []byte) int

// OracleFor builds a width Oracle for the given method and locale config.
func OracleFor(method WidthMethod, cfg UnicodeConfig) Oracle {
	switch method {
	case WidthMethodWCWidth:
		cond := runewidth.NewCondition()
		cond.EastAsianWidth = cfg.eastAsianWide
		return func(cluster []byte) int {
			width := 0
			for _, r := range string(cluster) {
				width += cond.RuneWidth(r)
			}
			return width
		}
	default:
		eaw := uniwidth.EANarrow
		if cfg.eastAsianWide {
			eaw = uniwidth.EAWide
		}
		return func(cluster []byte) int {
			return clusterWidthUnicode(cluster, eaw)
		}
	}
}

// clusterWidthUnicode computes a single grapheme cluster's width using the
// tiered uniwidth lookup, falling back to first-rune width for multi-rune
// clusters (emoji modifiers, ZWJ sequences, combining marks don't add
// visual width beyond the base character).
func clusterWidthUnicode(cluster []byte, eaw uniwidth.EAWidth) int {
	if len(cluster) == 0 {
		return 0
	}
	s := string(cluster)
	runeCount := 0
	var first, second rune
	for i, r := range s {
		switch runeCount {
		case 0:
			first = r
		case 1:
			second = r
			_ = i
		}
		runeCount++
		if runeCount > 2 {
			break
		}
	}
	if runeCount <= 1 {
		return uniwidth.RuneWidthWithOptions(first, uniwidth.WithEastAsianAmbiguous(eaw))
	}
	if second == 0xFE0E || second == 0xFE0F {
		return uniwidth.StringWidthWithOptions(s, uniwidth.WithEastAsianAmbiguous(eaw))
	}
	return uniwidth.RuneWidthWithOptions(first, uniwidth.WithEastAsianAmbiguous(eaw))
}

// StringWidth sums an Oracle over every grapheme cluster in s. Convenience
// wrapper for callers working in strings rather than chunk byte ranges.
func StringWidth(s string, oracle Oracle) int {
	width := 0
	state := -1
	b := []byte(s)
	for len(b) > 0 {
		var cluster []byte
		cluster, b, _, state = uniseg.FirstGraphemeCluster(b, state)
		width += oracle(cluster)
	}
	return width
}
