package luck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/astro"
	"github.com/roach88/saju/internal/ganzhi"
	"github.com/roach88/saju/internal/ir"
)

var kst = time.FixedZone("KST", 9*60*60)

func newScheduler(t *testing.T, rule AgeRule) *Scheduler {
	t.Helper()
	tbl, err := astro.Compute(1989, 1991)
	require.NoError(t, err)
	s, err := New(tbl, rule, DefaultSpanYears)
	require.NoError(t, err)
	return s
}

// 1990-05-15 14:00 KST: 庚午 year, 辛巳 month.
func referenceInput(g ir.Gender) Input {
	return Input{
		Birth:  time.Date(1990, time.May, 15, 14, 0, 0, 0, kst),
		Gender: g,
		Year:   ganzhi.Pair(ganzhi.StemGeng, ganzhi.BranchWu),
		Month:  ganzhi.Pair(ganzhi.StemXin, ganzhi.BranchSi),
	}
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		gender ir.Gender
		stem   ganzhi.Stem
		want   Direction
	}{
		{ir.GenderMale, ganzhi.StemJia, Forward},
		{ir.GenderMale, ganzhi.StemYi, Backward},
		{ir.GenderFemale, ganzhi.StemYi, Forward},
		{ir.GenderFemale, ganzhi.StemGeng, Backward},
	}
	for _, tt := range tests {
		got, err := DirectionOf(tt.gender, tt.stem)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.gender, tt.stem.Hanja())
	}

	for _, g := range []ir.Gender{0, 3, -1} {
		_, err := DirectionOf(g, ganzhi.StemJia)
		assert.True(t, ir.IsInvalidGender(err), "gender %d", int(g))
	}
}

func TestAgeRules(t *testing.T) {
	month := 30 * 24 * time.Hour

	assert.Equal(t, Age(12), AgeThreeDays.apply(72*time.Hour, month))
	assert.Equal(t, Age(0), AgeThreeDays.apply(5*time.Hour+59*time.Minute, month))
	assert.Equal(t, Age(1), AgeThreeDays.apply(6*time.Hour, month))
	assert.Equal(t, Age(0), AgeThreeDays.apply(-time.Hour, month))
	assert.Equal(t, Age(120), AgeThreeDays.apply(month, month))

	assert.Equal(t, Age(60), AgeProportional.apply(month/2, month))
	assert.Equal(t, Age(120), AgeProportional.apply(month, month))
	assert.Equal(t, Age(0), AgeProportional.apply(time.Hour, 0))

	assert.Equal(t, "3y4m", Age(40).String())
}

func TestParseAgeRule(t *testing.T) {
	r, err := ParseAgeRule("PROPORTIONAL")
	require.NoError(t, err)
	assert.Equal(t, AgeProportional, r)

	r, err = ParseAgeRule("three_days")
	require.NoError(t, err)
	assert.Equal(t, AgeThreeDays, r)

	_, err = ParseAgeRule("four_days")
	assert.True(t, ir.IsInvalidInput(err))
}

func TestScheduleBackward(t *testing.T) {
	s := newScheduler(t, AgeThreeDays)

	sched, err := s.Schedule(referenceInput(ir.GenderFemale), DefaultCount)
	require.NoError(t, err)
	assert.Equal(t, Backward, sched.Direction)
	assert.GreaterOrEqual(t, int(sched.StartAge), 30)
	assert.LessOrEqual(t, int(sched.StartAge), 45)
	require.Len(t, sched.Periods, DefaultCount)

	want := []string{"庚辰", "己卯", "戊寅", "丁丑", "丙子", "乙亥", "甲戌", "癸酉"}
	for i, p := range sched.Periods {
		assert.Equal(t, want[i], p.Pillar.Hanja())
	}
	first := sched.Periods[0]
	assert.Equal(t, sched.StartAge, first.StartAge)
	assert.Equal(t, 1990+first.StartAge.Years(), first.StartYear)
	assert.Equal(t, first.StartYear+DefaultSpanYears-1, first.EndYear)
}

func TestScheduleForward(t *testing.T) {
	s := newScheduler(t, AgeThreeDays)

	sched, err := s.Schedule(referenceInput(ir.GenderMale), 3)
	require.NoError(t, err)
	assert.Equal(t, Forward, sched.Direction)
	require.Len(t, sched.Periods, 3)
	assert.Equal(t, "壬午", sched.Periods[0].Pillar.Hanja())
	assert.Equal(t, "癸未", sched.Periods[1].Pillar.Hanja())
	assert.Equal(t, "甲申", sched.Periods[2].Pillar.Hanja())

	// Grain in Ear is about three weeks after the birth.
	assert.GreaterOrEqual(t, int(sched.StartAge), 80)
	assert.LessOrEqual(t, int(sched.StartAge), 95)
}

func TestScheduleIsMonotonicAndContiguous(t *testing.T) {
	for _, rule := range []AgeRule{AgeThreeDays, AgeProportional} {
		for _, g := range []ir.Gender{ir.GenderMale, ir.GenderFemale} {
			t.Run(rule.String()+"/"+g.String(), func(t *testing.T) {
				s := newScheduler(t, rule)
				sched, err := s.Schedule(referenceInput(g), 12)
				require.NoError(t, err)

				step := 1
				if sched.Direction == Backward {
					step = 59
				}
				for i := 1; i < len(sched.Periods); i++ {
					prev, cur := sched.Periods[i-1], sched.Periods[i]
					assert.Equal(t, (prev.Pillar.Index()+step)%60, cur.Pillar.Index())
					assert.Equal(t, prev.EndAge, cur.StartAge)
					assert.Equal(t, Age(12*DefaultSpanYears), cur.EndAge-cur.StartAge)
					assert.Equal(t, prev.EndYear+1, cur.StartYear)
					assert.Equal(t, i, cur.Index)
				}
			})
		}
	}
}

func TestProportionalAgeIsClose(t *testing.T) {
	three := newScheduler(t, AgeThreeDays)
	prop := newScheduler(t, AgeProportional)
	birth := referenceInput(ir.GenderFemale).Birth

	a, err := three.StartAge(birth, Backward)
	require.NoError(t, err)
	b, err := prop.StartAge(birth, Backward)
	require.NoError(t, err)
	assert.InDelta(t, int(a), int(b), 3)
}

func TestScheduleErrors(t *testing.T) {
	s := newScheduler(t, AgeThreeDays)

	_, err := s.Schedule(referenceInput(0), 8)
	assert.True(t, ir.IsInvalidGender(err))

	_, err = s.Schedule(referenceInput(ir.GenderMale), 0)
	assert.True(t, ir.IsInvalidInput(err))

	in := referenceInput(ir.GenderMale)
	in.Birth = time.Date(1988, time.June, 1, 0, 0, 0, 0, kst)
	_, err = s.Schedule(in, 8)
	assert.True(t, ir.IsUnsupportedYear(err))

	_, err = New(s.ref, AgeThreeDays, 0)
	assert.True(t, ir.IsInvalidInput(err))
}
