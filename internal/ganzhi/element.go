package ganzhi

// Element is one of the five phases, in generating order.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five elements in generating order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var (
	elementNames  = [5]string{"wood", "fire", "earth", "metal", "water"}
	elementHanja  = [5]string{"木", "火", "土", "金", "水"}
	elementHangul = [5]string{"목", "화", "토", "금", "수"}
)

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool { return e >= Wood && e <= Water }

// Generates returns the element e produces (wood feeds fire, fire makes earth...).
func (e Element) Generates() Element { return Element(Mod(int(e)+1, 5)) }

// Overcomes returns the element e controls (wood parts earth, earth dams water...).
func (e Element) Overcomes() Element { return Element(Mod(int(e)+2, 5)) }

func (e Element) String() string { return elementNames[e] }

// Hanja returns the single-character form (木).
func (e Element) Hanja() string { return elementHanja[e] }

// Hangul returns the Korean reading (목).
func (e Element) Hangul() string { return elementHangul[e] }

// MarshalText renders the English name.
func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Polarity is yin or yang.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yang {
		return "yang"
	}
	return "yin"
}

// MarshalText renders "yang" or "yin".
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Mod is the floor modulus: the result always has the sign of n.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
