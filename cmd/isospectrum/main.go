package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"isospectrum/pkg/config"
	"isospectrum/pkg/pipeline"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "isospectrum.yaml", "YAML configuration file (defaults are used if it does not exist)")
	outputDir := flag.String("output", "", "Directory for spectra and plots (overrides output.dir)")
	numCores := flag.Int("cores", 0, "Number of files to process concurrently (overrides processing.numCores)")
	edges := flag.String("edges", "", "Shell edge convention: lower, upper, or wrapped (overrides processing.shellEdges)")
	savePlots := flag.Bool("plot", true, "Save a PNG plot of each spectrum")
	logScale := flag.Bool("log", false, "Plot energy on a logarithmic axis")
	fieldImages := flag.Bool("field-images", false, "Save a grayscale image of each 2D input field")
	initConfig := flag.Bool("init-config", false, "Write a default configuration file to -config and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <field-file>...\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Field files are JSON5 documents (.json, .json5) or grayscale images (.png, .jpg).")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags only override the config when given explicitly
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output.Dir = *outputDir
		case "cores":
			cfg.Processing.NumCores = *numCores
		case "edges":
			cfg.Processing.ShellEdges = *edges
		case "plot":
			cfg.Output.SavePlots = *savePlots
		case "log":
			cfg.Output.LogScale = *logScale
		case "field-images":
			cfg.Output.SaveFieldImages = *fieldImages
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	shellEdges, err := cfg.ShellEdges()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := pipeline.EnsureOutputDir(cfg.Output.Dir); err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("ISOTROPIC SPECTRUM REDUCTION")
		fmt.Println("================================")
		fmt.Printf("Fields: %d, cores: %d, shell edges: %s\n", flag.NArg(), cfg.Processing.NumCores, shellEdges)
	}

	params := &pipeline.Params{
		Inputs:          flag.Args(),
		OutputDir:       cfg.Output.Dir,
		NumCores:        cfg.Processing.NumCores,
		ShellEdges:      shellEdges,
		SavePlots:       cfg.Output.SavePlots,
		LogScale:        cfg.Output.LogScale,
		SaveFieldImages: cfg.Output.SaveFieldImages,
		PlotWidth:       cfg.Output.PlotWidth,
		PlotHeight:      cfg.Output.PlotHeight,
		Verbose:         cfg.Output.Verbose,
	}

	runner := pipeline.NewRunner(params)

	startTime := time.Now()
	records, err := runner.Process()
	if err != nil {
		log.Fatalf("Reduction failed: %v", err)
	}
	processingTime := time.Since(startTime)

	for _, rec := range records {
		fmt.Printf("\n%s (rank %d, %dx%d)\n", rec.Source, rec.Field.Rank, rec.Field.Rows, rec.Field.Cols)
		fmt.Printf("  bins:            %d\n", len(rec.Energy))
		fmt.Printf("  total energy:    %.6g\n", rec.Summary.TotalEnergy)
		fmt.Printf("  peak:            %.6g at k=%.6g\n", rec.Summary.PeakEnergy, rec.Summary.PeakWavenumber)
		fmt.Printf("  mean wavenumber: %.6g\n", rec.Summary.MeanWavenumber)
		if cfg.Output.Verbose {
			for _, path := range rec.Artifacts {
				fmt.Printf("  wrote %s\n", path)
			}
		}
	}

	fmt.Printf("\nReduced %d field(s) in %.2f seconds\n", len(records), processingTime.Seconds())
}
