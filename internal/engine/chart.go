package engine

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/saju/internal/ganzhi"
	"github.com/roach88/saju/internal/ir"
	"github.com/roach88/saju/internal/luck"
)

// Chart is the structured result of a query. All fields are plain values.
type Chart struct {
	QueryID     string           `json:"query_id"`
	Solar       ir.GregorianDate `json:"solar"`
	HourKnown   bool             `json:"hour_known"`
	Lunar       ir.LunisolarDate `json:"lunar"`
	Pillars     PillarSet        `json:"pillars"`
	DayMaster   DayMaster        `json:"day_master"`
	Zodiac      ganzhi.Zodiac    `json:"zodiac"`
	NaYin       ganzhi.NaYin     `json:"na_yin"`
	Elements    ElementBalance   `json:"five_elements"`
	Luck        *LuckView        `json:"luck"`
	Policy      Policy           `json:"policy"`
	Fingerprint string           `json:"fingerprint"`
}

// PillarSet holds the four pillar views. Hour is nil when the hour is
// unknown.
type PillarSet struct {
	Year  PillarView  `json:"year"`
	Month PillarView  `json:"month"`
	Day   PillarView  `json:"day"`
	Hour  *PillarView `json:"hour"`
}

// PillarView describes one pillar relative to the day stem. StemTenGod is
// nil for the day pillar, whose stem is the reference itself.
type PillarView struct {
	Pillar        ganzhi.StemBranch `json:"pillar"`
	Hangul        string            `json:"hangul"`
	Stem          string            `json:"stem"`
	Branch        string            `json:"branch"`
	StemElement   ganzhi.Element    `json:"stem_element"`
	BranchElement ganzhi.Element    `json:"branch_element"`
	Polarity      ganzhi.Polarity   `json:"polarity"`
	StemTenGod    *ganzhi.TenGod    `json:"stem_ten_god"`
	BranchTenGod  ganzhi.TenGod     `json:"branch_ten_god"`
	HiddenStems   []string          `json:"hidden_stems"`
	NaYin         string            `json:"na_yin"`
}

// DayMaster is the day stem, the "self" of the chart.
type DayMaster struct {
	Stem    string         `json:"stem"`
	Hangul  string         `json:"hangul"`
	Element ganzhi.Element `json:"element"`
	Label   string         `json:"label"`
}

// ElementBalance counts the element of every stem and branch in the chart
// (six characters without an hour, eight with one).
type ElementBalance struct {
	Counts   map[ganzhi.Element]int `json:"counts"`
	Percent  map[ganzhi.Element]int `json:"percent"`
	Dominant ganzhi.Element         `json:"dominant"`
	Weak     ganzhi.Element         `json:"weak"`
}

// LuckView is the luck schedule of a chart queried with a gender.
type LuckView struct {
	Gender    ir.Gender      `json:"gender"`
	Direction luck.Direction `json:"direction"`
	StartAge  luck.Age       `json:"start_age_months"`
	Periods   []luck.Period  `json:"periods"`
}

func newPillarView(p ganzhi.StemBranch, self ganzhi.Stem, isDay bool) PillarView {
	s, b := p.Stem(), p.Branch()
	hidden := make([]string, 0, 3)
	for _, h := range b.HiddenStems() {
		hidden = append(hidden, h.Hanja())
	}
	v := PillarView{
		Pillar:        p,
		Hangul:        p.Hangul(),
		Stem:          s.Hanja(),
		Branch:        b.Hanja(),
		StemElement:   s.Element(),
		BranchElement: b.Element(),
		Polarity:      s.Polarity(),
		BranchTenGod:  ganzhi.BranchTenGod(self, b),
		HiddenStems:   hidden,
		NaYin:         p.NaYin().Hanja,
	}
	if !isDay {
		g := ganzhi.TenGodOf(self, s)
		v.StemTenGod = &g
	}
	return v
}

func newDayMaster(s ganzhi.Stem) DayMaster {
	return DayMaster{
		Stem:    s.Hanja(),
		Hangul:  s.Hangul(),
		Element: s.Element(),
		Label:   s.MasterLabel(),
	}
}

// newElementBalance rounds each share to the nearest percent, so the
// percentages need not sum to exactly 100. Ties for dominant go to the
// earlier element in generating order, ties for weak to the later one.
func newElementBalance(pillars []ganzhi.StemBranch) ElementBalance {
	var counts [5]int
	for _, p := range pillars {
		counts[p.Stem().Element()]++
		counts[p.Branch().Element()]++
	}
	total := 2 * len(pillars)

	bal := ElementBalance{
		Counts:  make(map[ganzhi.Element]int, 5),
		Percent: make(map[ganzhi.Element]int, 5),
	}
	for _, e := range ganzhi.Elements {
		bal.Counts[e] = counts[e]
		bal.Percent[e] = (200*counts[e] + total) / (2 * total)
		if counts[e] > counts[bal.Dominant] {
			bal.Dominant = e
		}
		if counts[e] <= counts[bal.Weak] {
			bal.Weak = e
		}
	}
	return bal
}

// fingerprint hashes the chart's content. The query id and the fingerprint
// field itself are excluded, so equal queries hash equally.
func (c *Chart) fingerprint() (string, error) {
	v, err := c.canonicalValue()
	if err != nil {
		return "", err
	}
	m := v.(map[string]any)
	delete(m, "query_id")
	delete(m, "fingerprint")
	return ir.Fingerprint(ir.DomainChart, m)
}

func (c *Chart) canonicalValue() (any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal chart: %w", err)
	}
	return ir.CanonicalFromJSON(data)
}

// Canonical returns the chart as RFC 8785 canonical JSON, the form used for
// golden snapshots.
func (c *Chart) Canonical() ([]byte, error) {
	v, err := c.canonicalValue()
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(v)
}
