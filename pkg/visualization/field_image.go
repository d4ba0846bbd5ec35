// Package visualization renders spectra and magnitude fields as images.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// FieldImage converts a grid into a 16-bit grayscale image, scaling values
// linearly so the minimum is black and the maximum is white. Row i of the
// grid becomes image row i. A constant grid renders black.
func FieldImage(m mat.Matrix) *image.Gray16 {
	rows, cols := m.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var value uint16
			if span > 0 {
				value = uint16(math.Max(0, math.Min(65535, (m.At(i, j)-lo)/span*65535)))
			}
			img.SetGray16(j, i, color.Gray16{Y: value})
		}
	}
	return img
}

// SaveFieldImage writes FieldImage(m) as a PNG file
func SaveFieldImage(path string, m mat.Matrix) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating image directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(file, FieldImage(m)); err != nil {
		file.Close()
		return fmt.Errorf("error encoding field image: %w", err)
	}
	return file.Close()
}
