package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/neurlang/audiopaint/internal/config"
	"github.com/neurlang/audiopaint/synth"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load("towav", os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Println("Usage: towav <image_file> [flags]")
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateSynth(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Create a new instance of Painter
	var m = synth.NewPainter()

	// Set parameters
	m.Duration = cfg.Synth.Duration
	m.SampleRate = cfg.Synth.SampleRate
	m.LowFrequency = cfg.Synth.LowFrequency
	m.HighFrequency = cfg.Synth.HighFrequency
	m.BitDepth = cfg.Synth.BitDepth
	m.Workers = cfg.Synth.Workers

	// Generate the wave from an image file
	inputFile := cfg.Input
	outputFile := cfg.Output
	if outputFile == "" {
		outputFile = inputFile + ".wav"
	}
	if err := m.ToWavImage(inputFile, outputFile); err != nil {
		log.Fatal().Err(err).Msg("Error generating wave from spectrogram")
	}
}
