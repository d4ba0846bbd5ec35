package isospectrum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Field is a magnitude array whose dimensionality is already known.
// It is implemented only by Signal and Grid.
type Field interface {
	// Rank reports the number of dimensions of the field.
	Rank() int

	sealed()
}

// Signal is a one-dimensional two-sided magnitude sequence.
type Signal []float64

// Rank returns 1.
func (Signal) Rank() int { return 1 }

func (Signal) sealed() {}

// Axes holds explicit wavenumber coordinates for a 2D grid.
// K runs along the rows of Grid.Values and L along its columns.
type Axes struct {
	K []float64
	L []float64
}

// Grid is a two-dimensional isotropic magnitude field. Values(0,0) is the
// zero-wavenumber mode. A nil Axes selects the integer index grid.
type Grid struct {
	Values mat.Matrix
	Axes   *Axes
}

// Rank returns 2.
func (Grid) Rank() int { return 2 }

func (Grid) sealed() {}

// Dims returns the number of rows and columns of the grid, or zeros when
// Values is nil.
func (g Grid) Dims() (r, c int) {
	if g.Values == nil {
		return 0, 0
	}
	return g.Values.Dims()
}

// FromArray resolves a flat row-major array with the given shape into a
// Field. It is the boundary where a dynamically shaped array becomes one of
// the two supported variants. axes is only consulted for rank 2 input.
// The data is copied, so later writes to data do not affect the field.
func FromArray(shape []int, data []float64, axes *Axes) (Field, error) {
	switch len(shape) {
	case 1, 2:
	default:
		return nil, fmt.Errorf("%w: rank %d, want 1 or 2", ErrInvalidShape, len(shape))
	}

	size := 1
	for _, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative extent in shape %v", ErrInvalidShape, shape)
		}
		size *= n
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d values, got %d", ErrInvalidShape, shape, size, len(data))
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: shape %v", ErrEmptyInput, shape)
	}

	if len(shape) == 1 {
		return Signal(append([]float64(nil), data...)), nil
	}

	values := mat.NewDense(shape[0], shape[1], append([]float64(nil), data...))
	return Grid{Values: values, Axes: axes}, nil
}
