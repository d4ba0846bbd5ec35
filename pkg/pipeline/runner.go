// Package pipeline reduces batches of field files to isotropic spectra and
// writes the results to disk.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"isospectrum/internal/models"
	"isospectrum/pkg/fieldio"
	"isospectrum/pkg/isospectrum"
	"isospectrum/pkg/visualization"
)

// Params holds the batch processing parameters
type Params struct {
	// Inputs are the field files to reduce, in output order
	Inputs []string

	// OutputDir receives <base>.spectrum.csv and optional images
	OutputDir string

	// NumCores bounds how many files are processed at once. Values below 1
	// are treated as 1.
	NumCores int

	// ShellEdges is passed to the reducer for 2D fields
	ShellEdges isospectrum.ShellEdges

	// SavePlots writes <base>.spectrum.png
	SavePlots bool

	// LogScale plots energy on a log axis
	LogScale bool

	// SaveFieldImages writes <base>.field.png for 2D fields
	SaveFieldImages bool

	// PlotWidth and PlotHeight are the plot size in pixels
	PlotWidth, PlotHeight int

	// Verbose prints progress to stdout
	Verbose bool
}

// Runner reduces a batch of field files
type Runner struct {
	params *Params
}

// NewRunner creates a runner for the given parameters
func NewRunner(params *Params) *Runner {
	return &Runner{params: params}
}

// Process reduces every input concurrently and returns one record per input,
// in input order. On failure the first error is returned, wrapped with the
// offending path.
func (r *Runner) Process() ([]models.SpectrumRecord, error) {
	if len(r.params.Inputs) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	if err := checkUniqueNames(r.params.Inputs); err != nil {
		return nil, err
	}

	workers := r.params.NumCores
	if workers < 1 {
		workers = 1
	}

	type processingResult struct {
		index  int
		record models.SpectrumRecord
		err    error
	}
	resultChan := make(chan processingResult)
	sem := make(chan struct{}, workers)

	for i, path := range r.params.Inputs {
		go func(index int, path string) {
			sem <- struct{}{}
			defer func() { <-sem }()

			record, err := r.ProcessFile(path)
			resultChan <- processingResult{index: index, record: record, err: err}
		}(i, path)
	}

	records := make([]models.SpectrumRecord, len(r.params.Inputs))
	var firstErr error
	totalTasks := len(r.params.Inputs)
	for completedTasks := 0; completedTasks < totalTasks; completedTasks++ {
		res := <-resultChan

		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.params.Inputs[res.index], res.err)
			}
			continue
		}
		records[res.index] = res.record

		if r.params.Verbose {
			progress := float64(completedTasks+1) / float64(totalTasks) * 100
			fmt.Printf("\rReducing fields: %.1f%% complete", progress)
		}
	}
	if r.params.Verbose {
		fmt.Println()
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return records, nil
}

// ProcessFile loads, reduces, and summarizes a single field file and writes
// its artifacts.
func (r *Runner) ProcessFile(path string) (models.SpectrumRecord, error) {
	field, err := fieldio.Load(path)
	if err != nil {
		return models.SpectrumRecord{}, err
	}

	spectrum, err := isospectrum.Reduce(field, isospectrum.WithShellEdges(r.params.ShellEdges))
	if err != nil {
		return models.SpectrumRecord{}, err
	}

	record := models.SpectrumRecord{
		Source:      path,
		Field:       describe(field),
		Wavenumbers: spectrum.Wavenumbers,
		Energy:      spectrum.Energy,
		Summary:     Summarize(spectrum),
	}

	base := filepath.Join(r.params.OutputDir, baseName(path))

	csvPath := base + ".spectrum.csv"
	if err := fieldio.SaveCSV(csvPath, spectrum); err != nil {
		return models.SpectrumRecord{}, err
	}
	record.Artifacts = append(record.Artifacts, csvPath)

	if r.params.SavePlots {
		plotPath := base + ".spectrum.png"
		opts := visualization.PlotOptions{
			Title:    fmt.Sprintf("Isotropic spectrum of %s", filepath.Base(path)),
			Width:    r.params.PlotWidth,
			Height:   r.params.PlotHeight,
			LogScale: r.params.LogScale,
		}
		if err := visualization.SaveSpectrumPlot(plotPath, spectrum, opts); err != nil {
			return models.SpectrumRecord{}, err
		}
		record.Artifacts = append(record.Artifacts, plotPath)
	}

	if grid, ok := field.(isospectrum.Grid); ok && r.params.SaveFieldImages {
		imagePath := base + ".field.png"
		if err := visualization.SaveFieldImage(imagePath, grid.Values); err != nil {
			return models.SpectrumRecord{}, err
		}
		record.Artifacts = append(record.Artifacts, imagePath)
	}

	return record, nil
}

func describe(f isospectrum.Field) models.FieldInfo {
	switch field := f.(type) {
	case isospectrum.Signal:
		return models.FieldInfo{Rank: 1, Rows: len(field), Cols: 1}
	case isospectrum.Grid:
		rows, cols := field.Dims()
		return models.FieldInfo{Rank: 2, Rows: rows, Cols: cols, ExplicitAxes: field.Axes != nil}
	}
	return models.FieldInfo{Rank: f.Rank()}
}

// baseName strips the directory and extension from path
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func checkUniqueNames(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, path := range inputs {
		name := baseName(path)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("inputs %s and %s would write the same output %q", prev, path, name)
		}
		seen[name] = path
	}
	return nil
}

// EnsureOutputDir creates the output directory if needed
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
