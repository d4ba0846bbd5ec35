// Package isospectrum reduces a magnitude field to an isotropic spectrum.
//
// A one-dimensional two-sided signal is folded pairwise into a one-sided
// spectrum. A two-dimensional isotropic grid is summed over annular
// wavenumber shells, with a quadrant weight of 1/4 that is doubled along the
// first row and first column so axis-aligned modes are not under-counted.
//
// The package does not transform data into the frequency domain. Callers
// pass an energy or squared-magnitude field that has already been computed.
package isospectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Spectrum is the result of a reduction.
type Spectrum struct {
	// Wavenumbers labels each bin. For a signal this is the bin index; for a
	// grid it is the shell sample r_i.
	Wavenumbers []float64

	// Energy holds one value per bin.
	Energy []float64

	// Shells is the radius interval summed into each bin. It is nil for
	// one-dimensional signals.
	Shells []Shell
}

// Len returns the number of bins.
func (s *Spectrum) Len() int { return len(s.Energy) }

// Option configures a reduction.
type Option func(*options)

type options struct {
	edges ShellEdges
}

// WithShellEdges selects the shell interval convention for grids.
// The default is EdgesLower.
func WithShellEdges(edges ShellEdges) Option {
	return func(o *options) { o.edges = edges }
}

func newOptions(opts []Option) options {
	o := options{edges: EdgesLower}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Reduce computes the isotropic spectrum of f. Options only affect grids.
func Reduce(f Field, opts ...Option) (*Spectrum, error) {
	switch field := f.(type) {
	case Signal:
		energy, err := Reduce1D(field)
		if err != nil {
			return nil, err
		}
		wavenumbers := make([]float64, len(energy))
		for i := range wavenumbers {
			wavenumbers[i] = float64(i)
		}
		return &Spectrum{Wavenumbers: wavenumbers, Energy: energy}, nil
	case Grid:
		return Reduce2D(field, opts...)
	case nil:
		return nil, fmt.Errorf("%w: nil field", ErrEmptyInput)
	default:
		return nil, fmt.Errorf("%w: unsupported field %T", ErrInvalidShape, f)
	}
}

// Reduce1D folds a two-sided signal into a one-sided spectrum.
//
// Bin i is the mean of samples 2i and 2i+1. Bin 0 additionally receives half
// of sample 0, so the DC term keeps its full weight. The result has
// len(x)/2 bins; a trailing odd sample is not paired and is ignored.
func Reduce1D(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least two samples to fold, got %d", ErrInvalidShape, len(x))
	}

	out := make([]float64, len(x)/2)
	for i := range out {
		out[i] = (x[2*i] + x[2*i+1]) / 2
	}
	out[0] += x[0] / 2
	return out, nil
}

// Reduce2D sums a grid over wavenumber shells.
//
// Cell (a, b) sits at radius hypot(K[a], L[b]), or hypot(a, b) on the index
// grid. Each cell inside a shell contributes its value times 1/4, times 2 if
// a == 0, times 2 if b == 0. The grid itself is never modified.
func Reduce2D(g Grid, opts ...Option) (*Spectrum, error) {
	o := newOptions(opts)

	samples, step, err := ShellSamples(g)
	if err != nil {
		return nil, err
	}
	shells, err := shellsFromSamples(samples, step, o.edges)
	if err != nil {
		return nil, err
	}

	rows, cols := g.Dims()
	k, l := gridAxes(g, rows, cols)

	radius := mat.NewDense(rows, cols, nil)
	radius.Apply(func(a, b int, _ float64) float64 {
		return math.Hypot(k[a], l[b])
	}, radius)
	weights := quadrantWeights(rows, cols)

	// mask and product are reused for every shell.
	mask := mat.NewDense(rows, cols, nil)
	product := mat.NewDense(rows, cols, nil)

	energy := make([]float64, len(shells))
	for i, shell := range shells {
		mask.Apply(func(a, b int, r float64) float64 {
			if shell.Contains(r) {
				return weights.At(a, b)
			}
			return 0
		}, radius)
		product.MulElem(mask, g.Values)
		energy[i] = mat.Sum(product)
	}

	return &Spectrum{Wavenumbers: samples, Energy: energy, Shells: shells}, nil
}

func gridAxes(g Grid, rows, cols int) (k, l []float64) {
	if g.Axes != nil {
		return g.Axes.K, g.Axes.L
	}
	k = make([]float64, rows)
	for i := range k {
		k[i] = float64(i)
	}
	l = make([]float64, cols)
	for i := range l {
		l[i] = float64(i)
	}
	return k, l
}

// quadrantWeights returns 1/4 everywhere, doubled on row 0 and on column 0.
// The DC cell ends up with weight 1.
func quadrantWeights(rows, cols int) *mat.Dense {
	w := mat.NewDense(rows, cols, nil)
	w.Apply(func(a, b int, _ float64) float64 {
		v := 0.25
		if a == 0 {
			v *= 2
		}
		if b == 0 {
			v *= 2
		}
		return v
	}, w)
	return w
}
