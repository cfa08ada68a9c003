package astro

import "math"

const synodicMonth = 29.530588861

// Periodic terms for the new moon (Meeus table 49.A): coefficient, the power
// of E it carries, and multipliers of M, M′, F, Ω.
var newMoonTerms = [25]struct {
	coef          float64
	ePow          int
	m, mp, f, omg float64
}{
	{-0.40720, 0, 0, 1, 0, 0},
	{0.17241, 1, 1, 0, 0, 0},
	{0.01608, 0, 0, 2, 0, 0},
	{0.01039, 0, 0, 0, 2, 0},
	{0.00739, 1, -1, 1, 0, 0},
	{-0.00514, 1, 1, 1, 0, 0},
	{0.00208, 2, 2, 0, 0, 0},
	{-0.00111, 0, 0, 1, -2, 0},
	{-0.00057, 0, 0, 1, 2, 0},
	{0.00056, 1, 1, 2, 0, 0},
	{-0.00042, 0, 0, 3, 0, 0},
	{0.00042, 1, 1, 0, 2, 0},
	{0.00038, 1, 1, 0, -2, 0},
	{-0.00024, 1, -1, 2, 0, 0},
	{-0.00017, 0, 0, 0, 0, 1},
	{-0.00007, 0, 2, 1, 0, 0},
	{0.00004, 0, 0, 2, -2, 0},
	{0.00004, 0, 3, 0, 0, 0},
	{0.00003, 0, 1, 1, -2, 0},
	{0.00003, 0, 0, 2, 2, 0},
	{-0.00003, 0, 1, 1, 2, 0},
	{0.00003, 0, -1, 1, 2, 0},
	{-0.00002, 0, -1, 1, -2, 0},
	{-0.00002, 0, 1, 3, 0, 0},
	{0.00002, 0, 0, 4, 0, 0},
}

// Planetary arguments (Meeus ch. 49): base, rate per lunation, coefficient.
var planetaryTerms = [14]struct {
	base, rate, coef float64
}{
	{299.77, 0.107408, 0.000325},
	{251.88, 0.016321, 0.000165},
	{251.83, 26.651886, 0.000164},
	{349.42, 36.412478, 0.000126},
	{84.66, 18.206239, 0.000110},
	{141.74, 53.303771, 0.000062},
	{207.14, 2.453732, 0.000060},
	{154.84, 7.306860, 0.000056},
	{34.52, 27.261239, 0.000047},
	{207.19, 0.121824, 0.000042},
	{291.34, 1.844379, 0.000040},
	{161.72, 24.198154, 0.000037},
	{239.56, 25.513099, 0.000035},
	{331.55, 3.592518, 0.000023},
}

// newMoonJDE returns the Julian Ephemeris Day of lunation k, where k = 0 is
// the new moon of 2000-01-06.
func newMoonJDE(k int) float64 {
	kf := float64(k)
	t := kf / 1236.85
	t2, t3, t4 := t*t, t*t*t, t*t*t*t

	jde := 2451550.09766 + synodicMonth*kf + 0.00015437*t2 - 0.000000150*t3 + 0.00000000073*t4
	e := 1 - 0.002516*t - 0.0000074*t2
	m := degToRad(2.5534 + 29.10535670*kf - 0.0000014*t2 - 0.00000011*t3)
	mp := degToRad(201.5643 + 385.81693528*kf + 0.0107582*t2 + 0.00001238*t3 - 0.000000058*t4)
	f := degToRad(160.7108 + 390.67050284*kf - 0.0016118*t2 - 0.00000227*t3 + 0.000000011*t4)
	omg := degToRad(124.7746 - 1.56375588*kf + 0.0020672*t2 + 0.00000215*t3)

	for _, p := range newMoonTerms {
		c := p.coef * math.Pow(e, float64(p.ePow))
		jde += c * math.Sin(p.m*m+p.mp*mp+p.f*f+p.omg*omg)
	}
	for i, p := range planetaryTerms {
		a := p.base + p.rate*kf
		if i == 0 {
			a -= 0.009173 * t2
		}
		jde += p.coef * math.Sin(degToRad(a))
	}
	return jde
}

// NewMoonUnix computes the UTC moment of lunation k as Unix seconds.
func NewMoonUnix(k int) int64 {
	return unixFromJD(ttToUT(newMoonJDE(k)))
}

// lunationNear returns a lunation number close to (not after) the start of
// the given Gregorian year.
func lunationNear(year int) int {
	return int(math.Floor((float64(year)-2000)*12.3685)) - 1
}
