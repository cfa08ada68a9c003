package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/saju/internal/ir"
)

func TestDayNumberAnchors(t *testing.T) {
	assert.Equal(t, 2451545, DayNumber(2000, 1, 1))
	assert.Equal(t, 2415021, DayNumber(1900, 1, 1))
	assert.Equal(t, 2440588, DayNumber(1970, 1, 1))
	assert.Equal(t, DayNumber(2000, 3, 1)-1, DayNumber(2000, 2, 29))
	assert.Equal(t, DayNumber(1900, 3, 1)-1, DayNumber(1900, 2, 28))
}

func TestFromDayNumberInverts(t *testing.T) {
	for jdn := DayNumber(1899, 12, 25); jdn <= DayNumber(1901, 3, 5); jdn++ {
		y, m, d := FromDayNumber(jdn)
		assert.Equal(t, jdn, DayNumber(y, m, d))
	}
	assert.Equal(t, ir.Date(2024, 2, 29), DateOf(DayNumber(2024, 2, 29)))
}
