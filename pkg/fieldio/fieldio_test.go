package fieldio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"isospectrum/pkg/isospectrum"
)

// TestParseJSON5Nested checks rank detection from nested arrays and that
// JSON5 comments and trailing commas are accepted
func TestParseJSON5Nested(t *testing.T) {
	doc := []byte(`{
		// a 2x3 grid
		"values": [
			[1, 2, 3],
			[4, 5, 6],
		],
	}`)

	f, err := ParseJSON5(doc)
	if err != nil {
		t.Fatalf("ParseJSON5 failed: %v", err)
	}
	g, ok := f.(isospectrum.Grid)
	if !ok {
		t.Fatalf("Expected Grid, got %T", f)
	}
	r, c := g.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Expected 2x3 grid, got %dx%d", r, c)
	}
	if g.Values.At(1, 2) != 6 {
		t.Errorf("Expected value 6 at (1,2), got %g", g.Values.At(1, 2))
	}
	if g.Axes != nil {
		t.Errorf("Expected no axes, got %+v", g.Axes)
	}
}

// TestParseJSON5Signal checks a rank-1 document
func TestParseJSON5Signal(t *testing.T) {
	f, err := ParseJSON5([]byte(`{"values": [4, 2, 2, 2]}`))
	if err != nil {
		t.Fatalf("ParseJSON5 failed: %v", err)
	}
	sig, ok := f.(isospectrum.Signal)
	if !ok {
		t.Fatalf("Expected Signal, got %T", f)
	}
	if len(sig) != 4 || sig[0] != 4 {
		t.Errorf("Unexpected signal %v", sig)
	}
}

// TestParseJSON5ShapeAndAxes checks the flat layout with explicit axes
func TestParseJSON5ShapeAndAxes(t *testing.T) {
	doc := []byte(`{
		"shape": [3, 3],
		"data": [1, 0, 0, 0, 0, 0, 0, 0, 0],
		"k": [0, 1, 2],
		"l": [0, 1, 2],
	}`)

	f, err := ParseJSON5(doc)
	if err != nil {
		t.Fatalf("ParseJSON5 failed: %v", err)
	}
	g := f.(isospectrum.Grid)
	if g.Axes == nil || len(g.Axes.K) != 3 || g.Axes.L[2] != 2 {
		t.Fatalf("Unexpected axes %+v", g.Axes)
	}

	s, err := isospectrum.Reduce(f)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if s.Len() != 2 || s.Energy[0] != 1 {
		t.Errorf("Unexpected spectrum %v", s.Energy)
	}
}

// TestParseJSON5Errors covers malformed documents
func TestParseJSON5Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"rank 3", `{"values": [[[1, 2], [3, 4]], [[5, 6], [7, 8]]]}`, isospectrum.ErrInvalidShape},
		{"ragged", `{"values": [[1, 2], [3]]}`, isospectrum.ErrInvalidShape},
		{"scalar", `{"values": 5}`, isospectrum.ErrInvalidShape},
		{"empty", `{"values": []}`, isospectrum.ErrEmptyInput},
		{"shape mismatch", `{"shape": [2, 2], "data": [1, 2, 3]}`, isospectrum.ErrInvalidShape},
		{"k without l", `{"values": [[1, 2, 3], [1, 2, 3], [1, 2, 3]], "k": [0, 1, 2]}`, isospectrum.ErrInvalidWavenumberGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON5([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := ParseJSON5([]byte(`{"values": ["a"]}`)); err == nil {
		t.Errorf("Expected error for non-numeric values")
	}
	if _, err := ParseJSON5([]byte(`{"shape": [2]}`)); err == nil {
		t.Errorf("Expected error for missing data")
	}
	if _, err := ParseJSON5([]byte(`not json`)); err == nil {
		t.Errorf("Expected parse error")
	}
}

// TestLoadImage round-trips a grayscale PNG into a grid
func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.png")

	img := image.NewGray16(image.Rect(0, 0, 4, 2))
	img.SetGray16(3, 1, color.Gray16{Y: 65535})

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	file.Close()

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	g := f.(isospectrum.Grid)
	r, c := g.Dims()
	if r != 2 || c != 4 {
		t.Fatalf("Expected 2x4 grid, got %dx%d", r, c)
	}
	if g.Values.At(1, 3) != 1 || g.Values.At(0, 0) != 0 {
		t.Errorf("Unexpected pixel values %g, %g", g.Values.At(1, 3), g.Values.At(0, 0))
	}
}

// TestLoadUnsupported checks the extension dispatch
func TestLoadUnsupported(t *testing.T) {
	if _, err := Load("field.txt"); err == nil {
		t.Errorf("Expected error for unsupported extension")
	}
}

// TestWriteCSV checks the header and one row per bin
func TestWriteCSV(t *testing.T) {
	s := &isospectrum.Spectrum{
		Wavenumbers: []float64{0, 0.5, 1},
		Energy:      []float64{5, 2, 0.25},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, s); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "wavenumber,energy\n0,5\n0.5,2\n1,0.25\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

// TestSaveCSV checks that parent directories are created
func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.spectrum.csv")
	s := &isospectrum.Spectrum{Wavenumbers: []float64{0}, Energy: []float64{1}}

	if err := SaveCSV(path, s); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Errorf("Expected 2 lines, got %d", lines)
	}
}
