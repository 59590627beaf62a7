package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/analyzers"
	acoustic "github.com/RyanBlaney/acousticsim/pkg/acoustic/config"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Formant extraction configuration
	Formant FormantSettings `mapstructure:"formant"`

	// MFCC extraction configuration
	MFCC MFCCSettings `mapstructure:"mfcc"`
}

// FormantSettings contains formant extraction settings
type FormantSettings struct {
	MaxFrequency   float64 `mapstructure:"max_frequency"`
	NumFormants    int     `mapstructure:"num_formants"`
	WindowLength   float64 `mapstructure:"window_length"`
	TimeStep       float64 `mapstructure:"time_step"`
	WindowShape    string  `mapstructure:"window_shape"`
	MaxConcurrency int     `mapstructure:"max_concurrency"`
}

// MFCCSettings contains MFCC extraction settings
type MFCCSettings struct {
	MinFrequency    float64 `mapstructure:"min_frequency"`
	MaxFrequency    float64 `mapstructure:"max_frequency"`
	NumCoefficients int     `mapstructure:"num_coefficients"`
	WindowLength    float64 `mapstructure:"window_length"`
	TimeStep        float64 `mapstructure:"time_step"`
	NumFilters      int     `mapstructure:"num_filters"`
	UsePower        bool    `mapstructure:"use_power"`
	PreEmphasis     float64 `mapstructure:"pre_emphasis"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	setDefaults(viper.GetViper())

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// FormantConfig converts the app settings to a validated extractor config
func (c *Config) FormantConfig() (*acoustic.FormantConfig, error) {
	cfg := &acoustic.FormantConfig{
		MaxFrequency:   c.Formant.MaxFrequency,
		NumFormants:    c.Formant.NumFormants,
		WindowLength:   c.Formant.WindowLength,
		TimeStep:       c.Formant.TimeStep,
		WindowShape:    analyzers.WindowShape(c.Formant.WindowShape),
		MaxConcurrency: c.Formant.MaxConcurrency,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MFCCConfig converts the app settings to a validated extractor config
func (c *Config) MFCCConfig() (*acoustic.MFCCConfig, error) {
	cfg := &acoustic.MFCCConfig{
		MinFrequency:    c.MFCC.MinFrequency,
		MaxFrequency:    c.MFCC.MaxFrequency,
		NumCoefficients: c.MFCC.NumCoefficients,
		WindowLength:    c.MFCC.WindowLength,
		TimeStep:        c.MFCC.TimeStep,
		NumFilters:      c.MFCC.NumFilters,
		UsePower:        c.MFCC.UsePower,
		PreEmphasis:     c.MFCC.PreEmphasis,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
