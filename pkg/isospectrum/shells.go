package isospectrum

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ShellEdges selects how a shell sample r_i maps to the half-open radius
// interval of output bin i.
type ShellEdges int

const (
	// EdgesLower uses [r_i, r_i+step). Bin 0 starts at the DC mode.
	EdgesLower ShellEdges = iota

	// EdgesUpper uses [r_{i-1}, r_i) with r_{-1} = 0, so bin 0 is empty.
	EdgesUpper

	// EdgesWrapped uses [r_{i-1}, r_i) with r_{-1} taken from the last
	// sample. Bin 0 is empty whenever the samples increase.
	EdgesWrapped
)

var shellEdgeNames = map[ShellEdges]string{
	EdgesLower:   "lower",
	EdgesUpper:   "upper",
	EdgesWrapped: "wrapped",
}

func (e ShellEdges) String() string {
	if name, ok := shellEdgeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ShellEdges(%d)", int(e))
}

// ParseShellEdges converts a configuration name into a ShellEdges value.
func ParseShellEdges(name string) (ShellEdges, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for edges, n := range shellEdgeNames {
		if n == key {
			return edges, nil
		}
	}
	return EdgesLower, fmt.Errorf("unknown shell edges %q (must be lower, upper, or wrapped)", name)
}

// Shell is the half-open radius interval [Inner, Outer) of one output bin.
type Shell struct {
	Inner float64
	Outer float64
}

// Contains reports whether radius r falls inside the shell.
func (s Shell) Contains(r float64) bool {
	return r >= s.Inner && r < s.Outer
}

// ShellSamples returns the wavenumbers at which the spectrum of g is sampled,
// along with the spacing between them.
//
// With no axes the samples are 0, 1, ..., N/2-1 for an N×N grid. With axes the
// samples run from 0 up to, but excluding, min(K[last], L[last]) in steps of
// the coarser axis spacing, measured between the second and third points.
func ShellSamples(g Grid) ([]float64, float64, error) {
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return nil, 0, fmt.Errorf("%w: %dx%d grid", ErrEmptyInput, rows, cols)
	}

	if g.Axes == nil {
		if rows != cols {
			return nil, 0, fmt.Errorf("%w: index grid must be square, got %dx%d", ErrInvalidShape, rows, cols)
		}
		samples := make([]float64, rows/2)
		for i := range samples {
			samples[i] = float64(i)
		}
		return samples, 1, nil
	}

	if err := validateAxis("k", g.Axes.K, rows); err != nil {
		return nil, 0, err
	}
	if err := validateAxis("l", g.Axes.L, cols); err != nil {
		return nil, 0, err
	}

	k, l := g.Axes.K, g.Axes.L
	step := math.Max(k[2]-k[1], l[2]-l[1])
	extent := math.Min(k[len(k)-1], l[len(l)-1])
	if extent <= 0 {
		return nil, 0, fmt.Errorf("%w: no positive extent (min last wavenumber %g)", ErrInvalidWavenumberGrid, extent)
	}

	n := int(math.Ceil(extent / step))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(i) * step
	}
	return samples, step, nil
}

// Shells returns the radius interval of every output bin of g.
func Shells(g Grid, edges ShellEdges) ([]Shell, error) {
	samples, step, err := ShellSamples(g)
	if err != nil {
		return nil, err
	}
	return shellsFromSamples(samples, step, edges)
}

func shellsFromSamples(samples []float64, step float64, edges ShellEdges) ([]Shell, error) {
	n := len(samples)
	shells := make([]Shell, n)
	for i, r := range samples {
		switch edges {
		case EdgesLower:
			shells[i] = Shell{Inner: r, Outer: r + step}
		case EdgesUpper:
			inner := 0.0
			if i > 0 {
				inner = samples[i-1]
			}
			shells[i] = Shell{Inner: inner, Outer: r}
		case EdgesWrapped:
			shells[i] = Shell{Inner: samples[(i-1+n)%n], Outer: r}
		default:
			return nil, fmt.Errorf("unsupported shell edges %v", edges)
		}
	}
	return shells, nil
}

func validateAxis(name string, axis []float64, extent int) error {
	if len(axis) < 3 {
		return fmt.Errorf("%w: %s axis has %d points, need at least 3", ErrInvalidWavenumberGrid, name, len(axis))
	}
	if len(axis) != extent {
		return fmt.Errorf("%w: %s axis has %d points, grid extent is %d", ErrInvalidWavenumberGrid, name, len(axis), extent)
	}
	if floats.HasNaN(axis) {
		return fmt.Errorf("%w: %s axis contains NaN", ErrInvalidWavenumberGrid, name)
	}
	for i, v := range axis {
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d] is infinite", ErrInvalidWavenumberGrid, name, i)
		}
		if i > 0 && v <= axis[i-1] {
			return fmt.Errorf("%w: %s axis is not strictly increasing at index %d", ErrInvalidWavenumberGrid, name, i)
		}
	}
	return nil
}
