package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"isospectrum/internal/models"
	"isospectrum/pkg/isospectrum"
)

// Summarize computes the total energy, the peak bin, and the energy-weighted
// mean wavenumber of a spectrum.
func Summarize(s *isospectrum.Spectrum) models.Summary {
	if s.Len() == 0 {
		return models.Summary{}
	}

	peak := floats.MaxIdx(s.Energy)
	summary := models.Summary{
		TotalEnergy:    floats.Sum(s.Energy),
		PeakWavenumber: s.Wavenumbers[peak],
		PeakEnergy:     s.Energy[peak],
	}

	// stat.Mean needs non-negative weights with a positive sum.
	if summary.TotalEnergy > 0 && floats.Min(s.Energy) >= 0 {
		summary.MeanWavenumber = stat.Mean(s.Wavenumbers, s.Energy)
	}
	return summary
}
