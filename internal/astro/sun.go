package astro

import (
	"math"
	"time"
)

const tropicalYear = 365.2422

// SolarLongitude returns the apparent geocentric longitude of the Sun in
// degrees [0, 360) at the given Julian Ephemeris Day. It follows the higher
// accuracy method of Meeus ch. 25: VSOP87 Earth position, FK5 correction,
// nutation in longitude and annual aberration. Error stays around 1″, about
// half a minute of time at a solar term.
func SolarLongitude(jde float64) float64 {
	tau := (jde - j2000) / 365250
	l := evalSeries(earthL, tau) * 180 / math.Pi
	r := evalSeries(earthR, tau)

	const arcsec = 1.0 / 3600
	theta := l + 180 - 0.09033*arcsec
	theta += nutationInLongitude(tau*10) * arcsec
	theta -= 20.4898 / r * arcsec
	return normDeg(theta)
}

// nutationInLongitude returns Δψ in arcseconds for T Julian centuries from
// J2000.0, to 0.5″ (Meeus ch. 22, abridged).
func nutationInLongitude(t float64) float64 {
	omega := degToRad(125.04452 - 1934.136261*t)
	sun := degToRad(280.4665 + 36000.7698*t)
	moon := degToRad(218.3165 + 481267.8813*t)
	return -17.20*math.Sin(omega) - 1.32*math.Sin(2*sun) -
		0.23*math.Sin(2*moon) + 0.21*math.Sin(2*omega)
}

// TermLongitude returns the apparent solar longitude that defines term i.
func TermLongitude(term int) float64 {
	return normDeg(285 + 15*float64(term))
}

// solarTermJD finds the moment (Julian Day, UT) of solar term `term` in
// Gregorian year `year`.
func solarTermJD(year, term int) float64 {
	target := TermLongitude(term)
	// Minor Cold falls around January 5-6; each term adds about 15.2 days.
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	jde := JulianDay(jan1) + 5 + float64(term)*tropicalYear/24
	for range 50 {
		diff := target - SolarLongitude(jde)
		// wrap into (-180, 180] so the step always goes the short way
		diff = math.Mod(diff+540, 360) - 180
		jde += diff * tropicalYear / 360
		if math.Abs(diff) < 1e-7 {
			break
		}
	}
	return ttToUT(jde)
}

// SolarTermUnix computes the UTC moment of term `term` (0-23) in `year` as
// Unix seconds, straight from the ephemeris model.
func SolarTermUnix(year, term int) int64 {
	return unixFromJD(solarTermJD(year, term))
}
