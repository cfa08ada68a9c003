package ganzhi

// Branch is an earthly branch, 0 (子) through 11 (亥).
type Branch int

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var (
	branchHanja  = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchHangul = [12]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
	branchPinyin = [12]string{"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai"}

	branchElement = [12]Element{
		Water, Earth, Wood, Wood, Earth, Fire,
		Fire, Earth, Metal, Metal, Earth, Water,
	}

	// Main qi first, then middle and residual.
	hiddenStems = [12][]Stem{
		{StemGui},
		{StemJi, StemGui, StemXin},
		{StemJia, StemBing, StemWu},
		{StemYi},
		{StemWu, StemYi, StemGui},
		{StemBing, StemGeng, StemWu},
		{StemDing, StemJi},
		{StemJi, StemDing, StemYi},
		{StemGeng, StemRen, StemWu},
		{StemXin},
		{StemWu, StemXin, StemDing},
		{StemRen, StemJia},
	}

	zodiacNames  = [12]string{"rat", "ox", "tiger", "rabbit", "dragon", "snake", "horse", "goat", "monkey", "rooster", "dog", "pig"}
	zodiacHanja  = [12]string{"鼠", "牛", "虎", "兔", "龍", "蛇", "馬", "羊", "猴", "鷄", "狗", "猪"}
	zodiacHangul = [12]string{"쥐", "소", "호랑이", "토끼", "용", "뱀", "말", "양", "원숭이", "닭", "개", "돼지"}
)

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= BranchZi && b <= BranchHai }

// Add steps n positions around the 12-cycle (n may be negative).
func (b Branch) Add(n int) Branch { return Branch(Mod(int(b)+n, 12)) }

// Element follows the seasonal table: 寅卯 wood, 巳午 fire, 申酉 metal,
// 亥子 water and the four storage branches 辰戌丑未 earth.
func (b Branch) Element() Element { return branchElement[b] }

// Polarity follows index parity: 子 yang, 丑 yin, ...
func (b Branch) Polarity() Polarity {
	if b%2 == 0 {
		return Yang
	}
	return Yin
}

// HiddenStems returns the stems stored in the branch, main qi first.
// The returned slice must not be modified.
func (b Branch) HiddenStems() []Stem { return hiddenStems[b] }

// MainStem returns the branch's main hidden stem.
func (b Branch) MainStem() Stem { return hiddenStems[b][0] }

func (b Branch) String() string { return branchPinyin[b] }

// Hanja returns the branch character (子).
func (b Branch) Hanja() string { return branchHanja[b] }

// Hangul returns the Korean reading (자).
func (b Branch) Hangul() string { return branchHangul[b] }

// Zodiac is the animal of a branch.
type Zodiac struct {
	Name   string `json:"name"`
	Hanja  string `json:"hanja"`
	Hangul string `json:"hangul"`
}

// Zodiac returns the animal for b.
func (b Branch) Zodiac() Zodiac {
	return Zodiac{Name: zodiacNames[b], Hanja: zodiacHanja[b], Hangul: zodiacHangul[b]}
}
