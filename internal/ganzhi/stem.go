package ganzhi

// Stem is a heavenly stem, 0 (甲) through 9 (癸).
type Stem int

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

var (
	stemHanja  = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemHangul = [10]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}
	stemPinyin = [10]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}
)

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= StemJia && s <= StemGui }

// Add steps n positions around the 10-cycle (n may be negative).
func (s Stem) Add(n int) Stem { return Stem(Mod(int(s)+n, 10)) }

// Element pairs stems: 甲乙 wood, 丙丁 fire, 戊己 earth, 庚辛 metal, 壬癸 water.
func (s Stem) Element() Element { return Element(int(s) / 2) }

// Polarity alternates yang, yin within each element pair.
func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

// IsYang reports whether s is a yang stem.
func (s Stem) IsYang() bool { return s.Polarity() == Yang }

func (s Stem) String() string { return stemPinyin[s] }

// Hanja returns the stem character (甲).
func (s Stem) Hanja() string { return stemHanja[s] }

// Hangul returns the Korean reading (갑).
func (s Stem) Hangul() string { return stemHangul[s] }

// MasterLabel is the Korean day-master label: reading plus element (갑목).
func (s Stem) MasterLabel() string { return s.Hangul() + s.Element().Hangul() }
