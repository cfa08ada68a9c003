package astro

import (
	"math"
	"time"
)

// unixEpochJD is the Julian Day of 1970-01-01T00:00:00Z.
const unixEpochJD = 2440587.5

// j2000 is the Julian Day of 2000-01-01T12:00:00 TT.
const j2000 = 2451545.0

// JulianDay converts an instant to a Julian Day (UT).
func JulianDay(t time.Time) float64 {
	return float64(t.Unix())/86400 + unixEpochJD
}

// unixFromJD converts a Julian Day (UT) to whole Unix seconds.
func unixFromJD(jd float64) int64 {
	return int64(math.Round((jd - unixEpochJD) * 86400))
}

// ttToUT converts a Julian Ephemeris Day to a Julian Day in UT.
func ttToUT(jde float64) float64 {
	year := 2000 + (jde-j2000)/365.25
	return jde - DeltaT(year)/86400
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// normDeg reduces d to [0, 360).
func normDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
