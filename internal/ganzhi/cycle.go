package ganzhi

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/saju/internal/ir"
)

// StemBranch is a position 0 (甲子) through 59 (癸亥) in the sexagenary
// cycle. Only pairs with matching stem and branch parity exist, so the
// position alone identifies both halves.
type StemBranch int

// CycleLength is the period of the sexagenary cycle.
const CycleLength = 60

// FromIndex maps any integer onto the cycle (negative values wrap).
func FromIndex(i int) StemBranch { return StemBranch(Mod(i, CycleLength)) }

// NewStemBranch pairs s and b. It fails for the 60 mixed-parity pairs
// (e.g. 甲丑) that are not part of the cycle.
func NewStemBranch(s Stem, b Branch) (StemBranch, error) {
	if !s.Valid() || !b.Valid() {
		return 0, ir.InvalidInput("stem %d / branch %d out of range", int(s), int(b))
	}
	if int(s)%2 != int(b)%2 {
		return 0, ir.InvalidInput("%s%s is not a sexagenary pair", s.Hanja(), b.Hanja())
	}
	return Pair(s, b), nil
}

// Pair is NewStemBranch without the checks. Callers guarantee s and b share
// parity, which holds for every pair derived from the cycle tables.
func Pair(s Stem, b Branch) StemBranch {
	// Chinese remainder: i ≡ s (mod 10), i ≡ b (mod 12).
	return FromIndex(6*int(s) - 5*int(b))
}

// Index returns the 0-59 position.
func (p StemBranch) Index() int { return int(p) }

// Stem returns the heavenly stem half.
func (p StemBranch) Stem() Stem { return Stem(int(p) % 10) }

// Branch returns the earthly branch half.
func (p StemBranch) Branch() Branch { return Branch(int(p) % 12) }

// Add steps n positions around the cycle (n may be negative).
func (p StemBranch) Add(n int) StemBranch { return FromIndex(int(p) + n) }

// Hanja returns the two-character form (庚午).
func (p StemBranch) Hanja() string { return p.Stem().Hanja() + p.Branch().Hanja() }

// Hangul returns the Korean reading (경오).
func (p StemBranch) Hangul() string { return p.Stem().Hangul() + p.Branch().Hangul() }

func (p StemBranch) String() string { return p.Hanja() }

// ParseStemBranch accepts a pair in hanja (庚午) or hangul (경오).
// Input is NFC normalized first so decomposed jamo are accepted.
func ParseStemBranch(s string) (StemBranch, error) {
	runes := []rune(norm.NFC.String(strings.TrimSpace(s)))
	if len(runes) != 2 {
		return 0, ir.InvalidInput("stem-branch %q must be two characters", s)
	}
	stem, ok := lookupStem(string(runes[0]))
	if !ok {
		return 0, ir.InvalidInput("unknown stem %q", string(runes[0]))
	}
	branch, ok := lookupBranch(string(runes[1]))
	if !ok {
		return 0, ir.InvalidInput("unknown branch %q", string(runes[1]))
	}
	return NewStemBranch(stem, branch)
}

func lookupStem(s string) (Stem, bool) {
	for i := range stemHanja {
		if stemHanja[i] == s || stemHangul[i] == s {
			return Stem(i), true
		}
	}
	return 0, false
}

// Several branch readings collide with stem readings (신 is both 辛 and 申),
// so branches are looked up in their own table.
func lookupBranch(s string) (Branch, bool) {
	for i := range branchHanja {
		if branchHanja[i] == s || branchHangul[i] == s {
			return Branch(i), true
		}
	}
	return 0, false
}

// MarshalText renders the pair in hanja so JSON output stays readable.
func (p StemBranch) MarshalText() ([]byte, error) {
	return []byte(p.Hanja()), nil
}

// UnmarshalText accepts hanja or hangul.
func (p *StemBranch) UnmarshalText(text []byte) error {
	v, err := ParseStemBranch(string(text))
	if err != nil {
		return fmt.Errorf("stem-branch: %w", err)
	}
	*p = v
	return nil
}
