package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/neurlang/audiopaint/analysis"
	"github.com/neurlang/audiopaint/internal/config"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load("topng", os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Println("Usage: topng <audio_file> [flags]")
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateAnalysis(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Create a new instance of Analyzer
	var m = analysis.NewAnalyzer()

	// Set parameters
	m.NumBins = cfg.Analysis.NumBins
	m.Window = cfg.Analysis.Window
	m.Resolut = cfg.Analysis.Resolution
	m.LowFrequency = cfg.Analysis.LowFrequency
	m.HighFrequency = cfg.Analysis.HighFrequency

	inputFile := cfg.Input
	outputFile := cfg.Output
	if outputFile == "" {
		outputFile = inputFile + ".png"
	}

	// Generate the spectrogram and save it as a PNG file
	switch lower := strings.ToLower(inputFile); {
	case strings.HasSuffix(lower, ".flac"):
		err = m.ToPngFlac(inputFile, outputFile)
	case strings.HasSuffix(lower, ".mp3"):
		err = m.ToPngMp3(inputFile, outputFile)
	default:
		err = m.ToPngWav(inputFile, outputFile)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating spectrogram")
	}
}
