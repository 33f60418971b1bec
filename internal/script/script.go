// Package script classifies track titles by the writing system they use.
//
// Classification drives the localization report only: whether a title needs a
// translation entry is decided by [IsNonASCII], and the [Tag] annotates why.
package script

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Tag names the script detected in a title.
type Tag int

const (
	Other Tag = iota
	Korean
	Japanese
)

func (t Tag) String() string {
	switch t {
	case Korean:
		return "KO"
	case Japanese:
		return "JA"
	default:
		return "OTHER"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Hangul syllables, compatibility jamo consonants and vowels.
// The jamo ranges overlap at U+3141..U+314E; Merge folds them.
var hangul = rangetable.Merge(
	&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0xAC00, Hi: 0xD7A3, Stride: 1}}},
	&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3131, Hi: 0x314E, Stride: 1}}},
	&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3141, Hi: 0x3163, Stride: 1}}},
)

// Hiragana, Katakana and CJK unified ideographs.
var kana = rangetable.Merge(
	&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3040, Hi: 0x309F, Stride: 1}}},
	&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x30A0, Hi: 0x30FF, Stride: 1}}},
	&unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}}},
)

// HasKorean reports whether s contains any Hangul code point.
func HasKorean(s string) bool {
	return containsAny(s, hangul)
}

// HasJapanese reports whether s contains any kana or CJK ideograph.
func HasJapanese(s string) bool {
	return containsAny(s, kana)
}

// IsNonASCII reports whether s contains a code point above 127.
func IsNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// Classify tags s by first match: Korean wins over Japanese, anything else is [Other].
func Classify(s string) Tag {
	switch {
	case HasKorean(s):
		return Korean
	case HasJapanese(s):
		return Japanese
	default:
		return Other
	}
}

func containsAny(s string, table *unicode.RangeTable) bool {
	for _, r := range s {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}
