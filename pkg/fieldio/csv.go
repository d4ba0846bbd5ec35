package fieldio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"isospectrum/pkg/isospectrum"
)

// WriteCSV writes a spectrum as "wavenumber,energy" rows, one per bin,
// preceded by a header row.
func WriteCSV(w io.Writer, s *isospectrum.Spectrum) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"wavenumber", "energy"}); err != nil {
		return err
	}
	for i, e := range s.Energy {
		row := []string{
			strconv.FormatFloat(s.Wavenumbers[i], 'g', -1, 64),
			strconv.FormatFloat(e, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes a spectrum to path, creating parent directories as needed.
func SaveCSV(path string, s *isospectrum.Spectrum) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating spectrum file: %w", err)
	}

	if err := WriteCSV(file, s); err != nil {
		file.Close()
		return fmt.Errorf("error writing spectrum file: %w", err)
	}
	return file.Close()
}
