// Package fieldio reads magnitude fields from disk and writes the spectra
// reduced from them.
package fieldio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	json "github.com/KevinWang15/go-json5"
	"gonum.org/v1/gonum/mat"

	"isospectrum/pkg/isospectrum"
)

// Load reads a field from path, choosing the decoder by file extension.
// Supported formats are JSON5 field documents (.json, .json5) and grayscale
// images (.png, .jpg, .jpeg).
func Load(path string) (isospectrum.Field, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		return LoadJSON5(path)
	case ".png", ".jpg", ".jpeg":
		return LoadImage(path)
	default:
		return nil, fmt.Errorf("unsupported field file %q (want .json, .json5, .png, .jpg)", path)
	}
}

// LoadJSON5 reads a JSON5 field document. See ParseJSON5 for the layout.
func LoadJSON5(path string) (isospectrum.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading field file: %w", err)
	}
	f, err := ParseJSON5(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseJSON5 decodes a field document of the form
//
//	{
//	  "values": [[...], [...]],   // nested array, rank from nesting depth
//	  "k": [...], "l": [...],     // optional wavenumber axes (rank 2)
//	}
//
// or, with a flat row-major array,
//
//	{ "shape": [rows, cols], "data": [...] }
func ParseJSON5(data []byte) (isospectrum.Field, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing field document: %w", err)
	}

	var (
		shape []int
		flat  []float64
		err   error
	)
	if values, ok := doc["values"]; ok {
		shape, flat, err = flatten(values)
		if err != nil {
			return nil, err
		}
	} else {
		shape, err = intList(doc, "shape")
		if err != nil {
			return nil, err
		}
		flat, err = floatList(doc, "data")
		if err != nil {
			return nil, err
		}
	}

	axes, err := parseAxes(doc)
	if err != nil {
		return nil, err
	}
	return isospectrum.FromArray(shape, flat, axes)
}

func parseAxes(doc map[string]interface{}) (*isospectrum.Axes, error) {
	_, hasK := doc["k"]
	_, hasL := doc["l"]
	if !hasK && !hasL {
		return nil, nil
	}
	if hasK != hasL {
		return nil, fmt.Errorf("%w: k and l must be given together", isospectrum.ErrInvalidWavenumberGrid)
	}

	k, err := floatList(doc, "k")
	if err != nil {
		return nil, err
	}
	l, err := floatList(doc, "l")
	if err != nil {
		return nil, err
	}
	return &isospectrum.Axes{K: k, L: l}, nil
}

// flatten walks a nested array and returns its shape and row-major values.
func flatten(v interface{}) ([]int, []float64, error) {
	switch x := v.(type) {
	case float64:
		return nil, []float64{x}, nil
	case []interface{}:
		if len(x) == 0 {
			return []int{0}, nil, nil
		}
		var (
			inner []int
			flat  []float64
		)
		for i, elem := range x {
			shape, values, err := flatten(elem)
			if err != nil {
				return nil, nil, err
			}
			if i == 0 {
				inner = shape
			} else if !equalShape(inner, shape) {
				return nil, nil, fmt.Errorf("%w: ragged array at element %d", isospectrum.ErrInvalidShape, i)
			}
			flat = append(flat, values...)
		}
		return append([]int{len(x)}, inner...), flat, nil
	default:
		return nil, nil, fmt.Errorf("non-numeric value %v in field", v)
	}
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func floatList(doc map[string]interface{}, key string) ([]float64, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("missing %q", key)
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: is not an array", key)
	}
	out := make([]float64, len(list))
	for i, item := range list {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: is not a number", key, i)
		}
		out[i] = f
	}
	return out, nil
}

func intList(doc map[string]interface{}, key string) ([]int, error) {
	values, err := floatList(doc, key)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(values))
	for i, f := range values {
		if f != float64(int(f)) {
			return nil, fmt.Errorf("%s[%d]: %g is not an integer", key, i, f)
		}
		out[i] = int(f)
	}
	return out, nil
}

// LoadImage decodes an image into a grid. Each pixel becomes its 16-bit red
// channel scaled to [0,1]; for grayscale images this is the luminance.
// Rows follow the image's y axis.
func LoadImage(path string) (isospectrum.Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("error decoding image %s: %w", path, err)
	}
	return ImageToGrid(img)
}

// ImageToGrid converts an image into a grid with integer index axes.
func ImageToGrid(img image.Image) (isospectrum.Field, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d image", isospectrum.ErrEmptyInput, width, height)
	}

	values := mat.NewDense(height, width, nil)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			values.Set(y, x, float64(r)/65535.0)
		}
	}
	return isospectrum.Grid{Values: values}, nil
}
