package visualization

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"isospectrum/pkg/isospectrum"
)

const dpi = 96

// PlotOptions controls spectrum plot rendering
type PlotOptions struct {
	// Title is drawn above the plot
	Title string

	// Width and Height are the image size in pixels
	Width, Height int

	// LogScale draws energy on a logarithmic axis. Bins with non-positive
	// energy are left out.
	LogScale bool
}

// DefaultPlotOptions returns a 1000x600 linear plot
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Title: "Isotropic spectrum", Width: 1000, Height: 600}
}

// NewSpectrumPlot builds a line plot of energy against wavenumber
func NewSpectrumPlot(s *isospectrum.Spectrum, opts PlotOptions) (*plot.Plot, error) {
	pts := make(plotter.XYs, 0, s.Len())
	for i, e := range s.Energy {
		if opts.LogScale && e <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: s.Wavenumbers[i], Y: e})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("spectrum has no plottable bins")
	}

	p := plot.New()
	setFonts(p)

	p.Title.Text = opts.Title
	p.X.Label.Text = "wavenumber"
	p.Y.Label.Text = "energy"
	if opts.LogScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	p.Add(line)

	return p, nil
}

// SaveSpectrumPlot renders the spectrum to an image file. The format follows
// the file extension (.png, .svg, .pdf, ...).
func SaveSpectrumPlot(path string, s *isospectrum.Spectrum, opts PlotOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid plot size %dx%d", opts.Width, opts.Height)
	}

	p, err := NewSpectrumPlot(s, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating plot directory: %w", err)
	}

	width := vg.Length(opts.Width) * vg.Inch / dpi
	height := vg.Length(opts.Height) * vg.Inch / dpi
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("error saving plot: %w", err)
	}
	return nil
}

func setFonts(p *plot.Plot) {
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}
