package ganzhi

// TenGod classifies a stem against the day stem ("self").
type TenGod int

const (
	Friend           TenGod = iota // 比肩: same element, same polarity
	RobWealth                      // 劫財: same element, other polarity
	EatingGod                      // 食神: self generates it, same polarity
	HurtingOfficer                 // 傷官: self generates it, other polarity
	IndirectWealth                 // 偏財: self overcomes it, same polarity
	DirectWealth                   // 正財: self overcomes it, other polarity
	SevenKillings                  // 七殺: it overcomes self, same polarity
	DirectOfficer                  // 正官: it overcomes self, other polarity
	IndirectResource               // 偏印: it generates self, same polarity
	DirectResource                 // 正印: it generates self, other polarity
)

// Self is the category every stem takes against itself.
const Self = Friend

var (
	tenGodNames  = [10]string{"friend", "rob_wealth", "eating_god", "hurting_officer", "indirect_wealth", "direct_wealth", "seven_killings", "direct_officer", "indirect_resource", "direct_resource"}
	tenGodHanja  = [10]string{"比肩", "劫財", "食神", "傷官", "偏財", "正財", "七殺", "正官", "偏印", "正印"}
	tenGodHangul = [10]string{"비견", "겁재", "식신", "상관", "편재", "정재", "편관", "정관", "편인", "정인"}
)

func (g TenGod) String() string { return tenGodNames[g] }

// Hanja returns the two-character name (比肩).
func (g TenGod) Hanja() string { return tenGodHanja[g] }

// Hangul returns the Korean name (비견).
func (g TenGod) Hangul() string { return tenGodHangul[g] }

// MarshalText renders the snake_case name.
func (g TenGod) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// tenGodTable[self][other], filled once from the element cycle.
var tenGodTable = buildTenGodTable()

func buildTenGodTable() [10][10]TenGod {
	var t [10][10]TenGod
	for self := StemJia; self <= StemGui; self++ {
		for other := StemJia; other <= StemGui; other++ {
			t[self][other] = relate(self, other)
		}
	}
	return t
}

func relate(self, other Stem) TenGod {
	var base TenGod
	se, oe := self.Element(), other.Element()
	switch {
	case se == oe:
		base = Friend
	case se.Generates() == oe:
		base = EatingGod
	case se.Overcomes() == oe:
		base = IndirectWealth
	case oe.Overcomes() == se:
		base = SevenKillings
	default: // oe.Generates() == se
		base = IndirectResource
	}
	if self.Polarity() != other.Polarity() {
		base++
	}
	return base
}

// TenGodOf returns the category of other relative to self.
func TenGodOf(self, other Stem) TenGod { return tenGodTable[self][other] }

// BranchTenGod classifies a branch through its main hidden stem.
func BranchTenGod(self Stem, b Branch) TenGod { return tenGodTable[self][b.MainStem()] }
