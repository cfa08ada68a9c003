package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chartData struct {
	Solar struct {
		Year, Month, Day, Hour int
	} `json:"solar"`
	Lunar struct {
		Year  int  `json:"year"`
		Month int  `json:"month"`
		Day   int  `json:"day"`
		Leap  bool `json:"is_leap_month"`
	} `json:"lunar"`
	Pillars map[string]*struct {
		Pillar string `json:"pillar"`
	} `json:"pillars"`
	Luck *struct {
		Direction string `json:"direction"`
		Periods   []struct {
			Pillar string `json:"pillar"`
		} `json:"periods"`
	} `json:"luck"`
	QueryID string `json:"query_id"`
}

func TestChartJSON(t *testing.T) {
	db := snapshot(t)
	out, err := runCLI(t, "--table-db", db, "--format", "json",
		"chart", "--date", "1990-05-15", "--time", "14:00", "--gender", "female", "--luck", "2")
	require.NoError(t, err)

	var c chartData
	resp := decodeResponse(t, out, &c)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, c.QueryID, resp.QueryID)
	assert.NotEmpty(t, resp.QueryID)

	assert.Equal(t, "庚午", c.Pillars["year"].Pillar)
	assert.Equal(t, "辛巳", c.Pillars["month"].Pillar)
	assert.Equal(t, "庚辰", c.Pillars["day"].Pillar)
	require.NotNil(t, c.Pillars["hour"])
	assert.Equal(t, "癸未", c.Pillars["hour"].Pillar)
	assert.Equal(t, 4, c.Lunar.Month)
	assert.Equal(t, 21, c.Lunar.Day)

	require.NotNil(t, c.Luck)
	assert.Equal(t, "backward", c.Luck.Direction)
	require.Len(t, c.Luck.Periods, 2)
	assert.Equal(t, "庚辰", c.Luck.Periods[0].Pillar)
}

func TestChartLunarInput(t *testing.T) {
	db := snapshot(t)
	out, err := runCLI(t, "--table-db", db, "--format", "json",
		"chart", "--date", "1990-05-01", "--lunar", "--leap")
	require.NoError(t, err)

	var c chartData
	decodeResponse(t, out, &c)
	assert.Equal(t, 1990, c.Solar.Year)
	assert.Equal(t, 6, c.Solar.Month)
	assert.Equal(t, 23, c.Solar.Day)
	assert.True(t, c.Lunar.Leap)
	assert.Nil(t, c.Pillars["hour"])
	assert.Nil(t, c.Luck)
}

func TestChartText(t *testing.T) {
	db := snapshot(t)
	out, err := runCLI(t, "--table-db", db, "chart", "--date", "1990-05-15", "--time", "14:00", "--gender", "f")
	require.NoError(t, err)

	assert.Contains(t, out, "1990-05-15 14:00 (KST)")
	assert.Contains(t, out, "1990-04-21")
	assert.Contains(t, out, "경오")
	assert.Contains(t, out, "계미")
	assert.Contains(t, out, "backward")
}

func TestChartErrors(t *testing.T) {
	db := snapshot(t)
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"bad gender", []string{"--date", "1990-05-15", "--gender", "x"}, ExitFailure, "INVALID_GENDER"},
		{"outside table", []string{"--date", "1975-05-15"}, ExitFailure, "UNSUPPORTED_YEAR"},
		{"missing leap month", []string{"--date", "1990-04-01", "--lunar", "--leap"}, ExitFailure, "INVALID_LUNAR_DATE"},
		{"bad date", []string{"--date", "15/05/1990"}, ExitFailure, "INVALID_INPUT"},
		{"leap without lunar", []string{"--date", "1990-05-15", "--leap"}, ExitCommandError, "E_COMMAND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--table-db", db, "--format", "json", "chart"}, tt.args...)
			out, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestChartMissingTableDB(t *testing.T) {
	_, err := runCLI(t, "--table-db", filepath.Join(t.TempDir(), "none.db"), "chart", "--date", "1990-05-15")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestChartRequiresDate(t *testing.T) {
	_, err := runCLI(t, "chart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"date" not set`)
}

func TestChartWithPolicy(t *testing.T) {
	db := snapshot(t)
	policy := filepath.Join("..", "config", "testdata", "midnight.cue")
	out, err := runCLI(t, "--table-db", db, "--policy", policy, "--format", "json",
		"chart", "--date", "1990-05-15", "--time", "14:00")
	require.NoError(t, err)

	var c struct {
		Policy struct {
			DayBoundary string `json:"day_boundary"`
			Zone        string `json:"zone"`
		} `json:"policy"`
	}
	decodeResponse(t, out, &c)
	assert.Equal(t, "midnight", c.Policy.DayBoundary)
	assert.Equal(t, "UTC+08:00", c.Policy.Zone)
}
