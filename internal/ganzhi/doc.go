// Package ganzhi holds the sexagenary cycle and its fixed classification
// tables: the 10 heavenly stems, the 12 earthly branches, the 60 valid
// stem-branch pairs, the five elements, yin/yang polarity, hidden stems,
// the ten-god relation table, NaYin and the zodiac.
//
// Everything is an integer index. Stems are 0-9 (甲..癸), branches 0-11
// (子..亥), cycle positions 0-59 (甲子..癸亥). No runtime string comparison
// is used for identity; labels exist only for presentation.
//
// Lookup tables are built once at package initialisation and never mutated.
package ganzhi
