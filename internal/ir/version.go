package ir

// Version constants for the engine and its reference data.
const (
	// EngineVersion is the SAJU engine version.
	EngineVersion = "0.1.0"

	// TableModel identifies the ephemeris model used to build reference tables.
	// Snapshots built with a different model are rejected on load.
	TableModel = "meeus-lowprec/1"
)
