// Package luck schedules luck periods (大運), the decade-scale pillars that
// follow the month pillar through the sexagenary cycle.
//
// The direction is fixed by gender and year stem polarity: forward for a
// man born in a yang year or a woman born in a yin year, backward otherwise.
// The first period starts at an age derived from the distance between birth
// and the governing sectional term (the next one going forward, the previous
// one going backward). Ages are whole months.
package luck
