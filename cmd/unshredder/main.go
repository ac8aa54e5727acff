package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"unshredder/pkg/config"
	"unshredder/pkg/imageio"
	"unshredder/pkg/unshred"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "Shredded input image (PNG or JPEG)")
	outputFile := flag.String("output", "unshredded.png", "Reconstructed output image")
	configFile := flag.String("config", "config.yaml", "Configuration file (optional)")
	numCores := flag.Int("cores", 0, "Number of CPU cores for pair scoring (default: all available)")
	saveIntermediary := flag.Bool("save-intermediary", false, "Save intermediary results during processing")
	intermediaryDir := flag.String("intermediary-dir", "", "Directory to save intermediary results")
	flag.Parse()

	// Validate inputs
	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration; a missing file falls back to the tuned defaults
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build pipeline parameters from configuration, then apply flag overrides
	params := &unshred.Params{
		BoundaryThreshold:       cfg.Detection.BoundaryThreshold,
		ConfirmationRatio:       cfg.Detection.ConfirmationRatio,
		LeftSampleWidth:         cfg.Matching.LeftSampleWidth,
		NumCores:                cfg.Processing.NumCores,
		SaveIntermediaryResults: cfg.Output.SaveIntermediaryResults,
		IntermediaryDir:         cfg.Output.IntermediaryDir,
		Verbose:                 cfg.Output.Verbose,
	}
	if *numCores > 0 {
		params.NumCores = *numCores
	}
	if *saveIntermediary {
		params.SaveIntermediaryResults = true
	}
	if *intermediaryDir != "" {
		params.IntermediaryDir = *intermediaryDir
	}

	fmt.Println("================================")
	fmt.Println("IMAGE UNSHREDDER")
	fmt.Println("Reconstructs an image whose vertical shreds were shuffled")
	fmt.Println("================================")

	// Load the shredded image
	grid, err := imageio.Load(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	fmt.Printf("Loaded %s (%dx%d)\n", *inputFile, grid.Width(), grid.Height())

	// Run the unshredding pipeline
	unshredder := unshred.NewUnshredder(params)
	startTime := time.Now()
	ordered, err := unshredder.Process(grid)
	if err != nil {
		log.Fatalf("Unshredding failed: %v", err)
	}
	processingTime := time.Since(startTime)

	// Reconstruct and persist the ordered sequence
	if err := imageio.Assemble(ordered, *outputFile); err != nil {
		log.Fatalf("Failed to write output image: %v", err)
	}

	stats := unshredder.GetStats()
	fmt.Printf("\nReconstruction completed in %.2f seconds\n", processingTime.Seconds())
	fmt.Printf("Output image saved to: %s\n\n", *outputFile)

	fmt.Printf("Seam quality statistics:\n")
	fmt.Printf("========================\n")
	fmt.Printf("Shreds placed: %d\n", stats.ShredCount)
	fmt.Printf("Reconciled matches: %d\n", stats.ReconciledCount)
	fmt.Printf("Mean seam score: %.2f\n", stats.MeanSeamScore)
	fmt.Printf("Seam score std dev: %.2f\n", stats.SeamScoreStdDev)
	fmt.Printf("Best seam score: %d\n", stats.BestSeamScore)
	fmt.Printf("Worst seam score: %d\n", stats.WorstSeamScore)

	if params.SaveIntermediaryResults {
		fmt.Println("\nIntermediary results saved to:")
		fmt.Printf("%s\n", params.IntermediaryDir)
		fmt.Println("The following stages were saved:")
		fmt.Println("- 01_detected_shreds: Each detected shred as its own image")
		fmt.Println("- 02_reconstructed: The reordered result")
	}
}
