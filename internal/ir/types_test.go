package ir

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGregorianDateValidate(t *testing.T) {
	tests := []struct {
		name  string
		date  GregorianDate
		valid bool
	}{
		{"ordinary", DateTime(1990, 5, 15, 14, 0), true},
		{"leap day", Date(2000, 2, 29), true},
		{"century non-leap", Date(1900, 2, 29), false},
		{"month zero", Date(1990, 0, 1), false},
		{"month 13", Date(1990, 13, 1), false},
		{"day 31 in april", Date(1990, 4, 31), false},
		{"hour 24", DateTime(1990, 5, 15, 24, 0), false},
		{"hour 23", DateTime(1990, 5, 15, 23, 59), true},
		{"minute 60", DateTime(1990, 5, 15, 1, 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.date.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))
		})
	}
}

func TestGregorianDateFormatting(t *testing.T) {
	d := DateTime(1990, 5, 15, 14, 5)
	assert.Equal(t, "1990-05-15", d.ISODate())
	assert.Equal(t, "1990-05-15 14:05:00", d.String())
	assert.Equal(t, Date(1990, 5, 15), d.DateOnly())
}

func TestGregorianDateInAndFromTime(t *testing.T) {
	kst := time.FixedZone("KST", 9*3600)
	d := DateTime(2020, 1, 1, 8, 30)

	instant := d.In(kst)
	assert.Equal(t, 2019, instant.UTC().Year(), "08:30 KST on Jan 1 is still Dec 31 in UTC")
	assert.Equal(t, d, FromTime(instant))
}

func TestLunisolarDateString(t *testing.T) {
	assert.Equal(t, "1990-04-21", LunisolarDate{Year: 1990, Month: 4, Day: 21}.String())
	assert.Equal(t, "2020-L04-10", LunisolarDate{Year: 2020, Month: 4, Day: 10, Leap: true}.String())
}

func TestParseGender(t *testing.T) {
	for _, in := range []string{"male", "M", " Male "} {
		g, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, GenderMale, g)
	}
	for _, in := range []string{"female", "F"} {
		g, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, GenderFemale, g)
	}

	_, err := ParseGender("unknown")
	require.Error(t, err)
	assert.True(t, IsInvalidGender(err))

	assert.False(t, Gender(0).Valid())
	assert.Equal(t, "female", GenderFemale.String())
}

func TestGenderText(t *testing.T) {
	out, err := json.Marshal(map[string]Gender{"g": GenderMale})
	require.NoError(t, err)
	assert.JSONEq(t, `{"g":"male"}`, string(out))

	var back struct {
		G Gender `json:"g"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"g":"F"}`), &back))
	assert.Equal(t, GenderFemale, back.G)

	err = json.Unmarshal([]byte(`{"g":"other"}`), &back)
	assert.True(t, IsInvalidGender(err))

	_, err = Gender(0).MarshalText()
	assert.True(t, IsInvalidGender(err))
}
