package visualization

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"isospectrum/pkg/isospectrum"
)

func testSpectrum() *isospectrum.Spectrum {
	return &isospectrum.Spectrum{
		Wavenumbers: []float64{0, 1, 2, 3},
		Energy:      []float64{4, 0, 1, 0.5},
	}
}

// TestFieldImage checks min-max normalization and orientation
func TestFieldImage(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		-1, 0, 0,
		0, 0, 3,
	})

	img := FieldImage(m)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", img.Bounds())
	}
	if got := img.Gray16At(0, 0).Y; got != 0 {
		t.Errorf("Expected minimum to be black, got %d", got)
	}
	if got := img.Gray16At(2, 1).Y; got != 65535 {
		t.Errorf("Expected maximum to be white, got %d", got)
	}
	if got := img.Gray16At(1, 0).Y; got != 16383 {
		t.Errorf("Expected quarter gray at (1,0), got %d", got)
	}
}

// TestFieldImageConstant verifies a flat grid renders black
func TestFieldImageConstant(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{5, 5, 5, 5})
	img := FieldImage(m)
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatalf("Expected black image for constant grid")
		}
	}
}

// TestSaveFieldImage checks that the PNG is written
func TestSaveFieldImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "field.png")
	if err := SaveFieldImage(path, mat.NewDense(4, 4, nil)); err != nil {
		t.Fatalf("SaveFieldImage failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Field image not created: %v", err)
	}
}

// TestNewSpectrumPlotLogScale checks that non-positive bins are dropped
// on a log axis and that an all-zero spectrum is rejected
func TestNewSpectrumPlotLogScale(t *testing.T) {
	opts := DefaultPlotOptions()
	opts.LogScale = true

	if _, err := NewSpectrumPlot(testSpectrum(), opts); err != nil {
		t.Fatalf("NewSpectrumPlot failed: %v", err)
	}

	zero := &isospectrum.Spectrum{Wavenumbers: []float64{0, 1}, Energy: []float64{0, 0}}
	if _, err := NewSpectrumPlot(zero, opts); err == nil {
		t.Errorf("Expected error for spectrum with no positive bins")
	}
}

// TestSaveSpectrumPlot renders a PNG
func TestSaveSpectrumPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.png")
	opts := DefaultPlotOptions()
	opts.Width, opts.Height = 400, 300

	if err := SaveSpectrumPlot(path, testSpectrum(), opts); err != nil {
		t.Fatalf("SaveSpectrumPlot failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Plot not created: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("Plot file is empty")
	}

	opts.Width = 0
	if err := SaveSpectrumPlot(path, testSpectrum(), opts); err == nil {
		t.Errorf("Expected error for zero width")
	}
}
