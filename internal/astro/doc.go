// Package astro provides the astronomical reference table: the moments of
// the 24 solar terms and of every new moon for a finite range of Gregorian
// years.
//
// The moments come from a compact ephemeris model:
//
//   - Apparent solar longitude: low-precision series (Meeus, Astronomical
//     Algorithms, ch. 25), good to about 0.01°, solved for each term
//     longitude by Newton iteration.
//   - New moons: mean lunation with the 25 periodic and 14 planetary
//     corrections (Meeus ch. 49).
//   - ΔT (TT − UT): Espenak–Meeus polynomials.
//
// All moments are stored as whole UTC seconds. A Table is immutable once
// built and is validated before it is handed out, so a caller holding a
// *Table always holds a self-consistent one.
//
// Solar term indexing: term 0 is Minor Cold (小寒, 285°) in early January,
// term 2 is Start of Spring (立春, 315°), and term i sits at apparent
// longitude (285 + 15i) mod 360. Even terms are sectional (節) and open a
// month section; odd terms are principal (中氣).
package astro
