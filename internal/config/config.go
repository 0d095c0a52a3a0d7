package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the command line tools
type Config struct {
	Input    string
	Output   string
	LogLevel string
	Synth    SynthConfig
	Analysis AnalysisConfig
}

// SynthConfig holds image to audio settings
type SynthConfig struct {
	Duration      float64
	SampleRate    int
	LowFrequency  float64
	HighFrequency float64
	BitDepth      int
	Workers       int
}

// AnalysisConfig holds audio to image settings
type AnalysisConfig struct {
	NumBins       int
	Window        int
	Resolution    int
	LowFrequency  float64
	HighFrequency float64
}

var ErrMissingInput = errors.New("no input file given")
var ErrHelp = pflag.ErrHelp

// Load reads configuration for the named command. Values come from, in
// increasing priority: defaults, an optional audiopaint config file,
// AUDIOPAINT_* environment variables and command line flags. The first
// positional argument stands in for --in.
func Load(name string, args []string) (*Config, error) {
	v := viper.New()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.StringP("in", "i", "", "The image or audio file to read")
	fs.StringP("out", "o", "", "The file to write")
	fs.String("config", "", "Config file (default ./audiopaint.{yaml,toml,json,env})")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")

	fs.Float64P("length", "l", 10, "The length of the audio file to create, in seconds")
	fs.IntP("samplerate", "s", 48000, "The sample rate to write. The top row of the image corresponds to a frequency of half the sample rate.")
	fs.Float64("low", 100, "Frequency of the bottom image row, hertz")
	fs.Float64("high", 0, "Frequency of the top image row, hertz (0 means half the sample rate)")
	fs.Int("bits", 32, "Bits per output sample: 8, 16, 24 or 32")
	fs.Int("workers", 0, "Goroutines used for synthesis (0 means one per CPU)")

	fs.Int("bins", 256, "Spectrogram rows when analyzing audio")
	fs.Int("window", 512, "Hop between analysis frames, samples")
	fs.Int("resolution", 2048, "Analysis frame length, samples")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("log-level", "info")
	v.SetDefault("length", 10.0)
	v.SetDefault("samplerate", 48000)
	v.SetDefault("low", 100.0)
	v.SetDefault("high", 0.0)
	v.SetDefault("bits", 32)
	v.SetDefault("workers", 0)
	v.SetDefault("bins", 256)
	v.SetDefault("window", 512)
	v.SetDefault("resolution", 2048)

	if file, _ := fs.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("audiopaint")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables override config file values
	v.SetEnvPrefix("AUDIOPAINT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	var config Config
	config.Input = v.GetString("in")
	if config.Input == "" && fs.NArg() > 0 {
		config.Input = fs.Arg(0)
	}
	config.Output = v.GetString("out")
	config.LogLevel = v.GetString("log-level")

	config.Synth.Duration = v.GetFloat64("length")
	config.Synth.SampleRate = v.GetInt("samplerate")
	config.Synth.LowFrequency = v.GetFloat64("low")
	config.Synth.HighFrequency = v.GetFloat64("high")
	config.Synth.BitDepth = v.GetInt("bits")
	config.Synth.Workers = v.GetInt("workers")

	config.Analysis.NumBins = v.GetInt("bins")
	config.Analysis.Window = v.GetInt("window")
	config.Analysis.Resolution = v.GetInt("resolution")
	config.Analysis.LowFrequency = config.Synth.LowFrequency
	config.Analysis.HighFrequency = config.Synth.HighFrequency

	if config.Input == "" {
		return nil, ErrMissingInput
	}

	return &config, nil
}

// ValidateSynth checks the settings used when turning images into audio.
func (c *Config) ValidateSynth() error {
	s := c.Synth
	switch {
	case !(s.Duration > 0):
		return fmt.Errorf("length must be positive, got %v", s.Duration)
	case s.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %d", s.SampleRate)
	case !(s.LowFrequency > 0):
		return fmt.Errorf("low frequency must be positive, got %v", s.LowFrequency)
	case s.HighFrequency < 0:
		return fmt.Errorf("high frequency must not be negative, got %v", s.HighFrequency)
	case s.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", s.Workers)
	case s.BitDepth != 8 && s.BitDepth != 16 && s.BitDepth != 24 && s.BitDepth != 32:
		return fmt.Errorf("bits must be 8, 16, 24 or 32, got %d", s.BitDepth)
	}
	return nil
}

// ValidateAnalysis checks the settings used when turning audio into images.
func (c *Config) ValidateAnalysis() error {
	a := c.Analysis
	switch {
	case a.NumBins <= 0:
		return fmt.Errorf("bins must be positive, got %d", a.NumBins)
	case a.Window <= 0:
		return fmt.Errorf("window must be positive, got %d", a.Window)
	case a.Resolution <= 0:
		return fmt.Errorf("resolution must be positive, got %d", a.Resolution)
	case !(a.LowFrequency > 0):
		return fmt.Errorf("low frequency must be positive, got %v", a.LowFrequency)
	}
	return nil
}

// SetupLogger configures the global zerolog logger for console output.
func SetupLogger(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}
