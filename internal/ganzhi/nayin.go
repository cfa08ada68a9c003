package ganzhi

// NaYin is the "sound" element shared by each consecutive pair of the cycle
// (甲子 and 乙丑 are both 海中金).
type NaYin struct {
	Hanja   string  `json:"hanja"`
	Hangul  string  `json:"hangul"`
	Element Element `json:"-"`
}

var naYinTable = [30]NaYin{
	{"海中金", "해중금", Metal},
	{"爐中火", "노중화", Fire},
	{"大林木", "대림목", Wood},
	{"路傍土", "노방토", Earth},
	{"劍鋒金", "검봉금", Metal},
	{"山頭火", "산두화", Fire},
	{"澗下水", "간하수", Water},
	{"城頭土", "성두토", Earth},
	{"白蠟金", "백랍금", Metal},
	{"楊柳木", "양류목", Wood},
	{"泉中水", "천중수", Water},
	{"屋上土", "옥상토", Earth},
	{"霹靂火", "벽력화", Fire},
	{"松柏木", "송백목", Wood},
	{"長流水", "장류수", Water},
	{"沙中金", "사중금", Metal},
	{"山下火", "산하화", Fire},
	{"平地木", "평지목", Wood},
	{"壁上土", "벽상토", Earth},
	{"金箔金", "금박금", Metal},
	{"覆燈火", "복등화", Fire},
	{"天河水", "천하수", Water},
	{"大驛土", "대역토", Earth},
	{"釵釧金", "차천금", Metal},
	{"桑柘木", "상자목", Wood},
	{"大溪水", "대계수", Water},
	{"沙中土", "사중토", Earth},
	{"天上火", "천상화", Fire},
	{"石榴木", "석류목", Wood},
	{"大海水", "대해수", Water},
}

// NaYin returns the sound element of p.
func (p StemBranch) NaYin() NaYin { return naYinTable[int(p)/2] }
