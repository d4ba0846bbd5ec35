package models

// FieldInfo describes the field a spectrum was reduced from
type FieldInfo struct {
	// Rank is 1 for signals and 2 for grids
	Rank int

	// Rows and Cols give the field extent. Cols is 1 for signals.
	Rows, Cols int

	// ExplicitAxes is true when the grid carried its own k/l wavenumbers
	ExplicitAxes bool
}

// Summary holds scalar characteristics of a reduced spectrum
type Summary struct {
	// TotalEnergy is the sum over all bins
	TotalEnergy float64

	// PeakWavenumber and PeakEnergy locate the most energetic bin
	PeakWavenumber float64
	PeakEnergy     float64

	// MeanWavenumber is the energy-weighted mean wavenumber, or 0 when the
	// total energy is not positive
	MeanWavenumber float64
}

// SpectrumRecord is the result of processing one input file
type SpectrumRecord struct {
	// Source is the path of the field file
	Source string

	// Field describes the input
	Field FieldInfo

	// Wavenumbers and Energy are the reduced spectrum
	Wavenumbers []float64
	Energy      []float64

	// Summary is computed from Energy and Wavenumbers
	Summary Summary

	// Artifacts lists the files written for this record
	Artifacts []string
}
