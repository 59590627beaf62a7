package config

import (
	"fmt"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/analyzers"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// FormantConfig controls LPC formant track extraction.
// Every field is threaded through explicitly; extractors never fall back
// to package-level defaults for a caller-supplied value.
type FormantConfig struct {
	// MaxFrequency is the upper bound of the formant search range in Hz.
	// The signal is resampled to twice this value so the search range
	// spans the full working bandwidth.
	MaxFrequency float64 `json:"max_frequency"`

	// NumFormants is the fixed number of formants reported per frame.
	// The LPC order is twice this value (one complex pole pair per
	// formant).
	NumFormants int `json:"num_formants"`

	// WindowLength is the analysis window length in seconds. A Gaussian
	// window doubles the effective length, following the Praat
	// convention.
	WindowLength float64 `json:"window_length"`

	// TimeStep is the frame hop in seconds.
	TimeStep float64 `json:"time_step"`

	// WindowShape selects the analysis window; Gaussian is the default.
	WindowShape analyzers.WindowShape `json:"window_shape"`

	// MaxConcurrency bounds the frame worker pool. Values below two keep
	// extraction fully sequential.
	MaxConcurrency int `json:"max_concurrency"`
}

// DefaultFormantConfig returns a formant configuration suitable for adult
// speech
func DefaultFormantConfig() *FormantConfig {
	return &FormantConfig{
		MaxFrequency:   5500,
		NumFormants:    5,
		WindowLength:   0.025,
		TimeStep:       0.01,
		WindowShape:    analyzers.WindowGaussian,
		MaxConcurrency: 1,
	}
}

// Validate checks the configuration for internal consistency
func (c *FormantConfig) Validate() error {
	if c.MaxFrequency <= 100 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("max frequency must exceed the 50 Hz band guards, got %v", c.MaxFrequency))
	}
	if c.NumFormants < 1 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("num formants must be at least 1, got %d", c.NumFormants))
	}
	if c.WindowLength <= 0 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("window length must be positive, got %v", c.WindowLength))
	}
	if c.TimeStep <= 0 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("time step must be positive, got %v", c.TimeStep))
	}
	if c.WindowShape != analyzers.WindowGaussian && c.WindowShape != analyzers.WindowHann {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("unknown window shape %q", c.WindowShape))
	}
	if c.MaxConcurrency < 0 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("max concurrency must be non-negative, got %d", c.MaxConcurrency))
	}
	return nil
}

// MFCCConfig controls mel-frequency cepstral coefficient extraction
type MFCCConfig struct {
	// MinFrequency and MaxFrequency bound the mel filter bank in Hz.
	MinFrequency float64 `json:"min_frequency"`
	MaxFrequency float64 `json:"max_frequency"`

	// NumCoefficients is the number of cepstral coefficients per frame.
	NumCoefficients int `json:"num_coefficients"`

	// WindowLength is the analysis window length in seconds.
	WindowLength float64 `json:"window_length"`

	// TimeStep is the frame hop in seconds.
	TimeStep float64 `json:"time_step"`

	// NumFilters is the mel filter bank size.
	NumFilters int `json:"num_filters"`

	// UsePower keeps the power-based zeroth cepstral coefficient.
	UsePower bool `json:"use_power"`

	// PreEmphasis is the pre-emphasis filter coefficient.
	PreEmphasis float64 `json:"pre_emphasis"`
}

// DefaultMFCCConfig returns an HTK-style MFCC configuration
func DefaultMFCCConfig() *MFCCConfig {
	return &MFCCConfig{
		MinFrequency:    0,
		MaxFrequency:    8000,
		NumCoefficients: 13,
		WindowLength:    0.025,
		TimeStep:        0.01,
		NumFilters:      26,
		UsePower:        false,
		PreEmphasis:     0.97,
	}
}

// Validate checks the configuration for internal consistency
func (c *MFCCConfig) Validate() error {
	if c.MinFrequency < 0 || c.MaxFrequency <= c.MinFrequency {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("invalid frequency range [%v, %v]", c.MinFrequency, c.MaxFrequency))
	}
	if c.NumCoefficients < 1 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("num coefficients must be at least 1, got %d", c.NumCoefficients))
	}
	needed := c.NumCoefficients
	if !c.UsePower {
		needed++ // c0 is dropped, one extra cepstral value is consumed
	}
	if c.NumFilters < needed {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("num filters %d too small for %d coefficients", c.NumFilters, c.NumCoefficients))
	}
	if c.WindowLength <= 0 || c.TimeStep <= 0 {
		return common.NewInvalidInputError("config.Validate",
			"window length and time step must be positive")
	}
	if c.PreEmphasis < 0 || c.PreEmphasis >= 1 {
		return common.NewInvalidInputError("config.Validate",
			fmt.Sprintf("pre-emphasis must be in [0, 1), got %v", c.PreEmphasis))
	}
	return nil
}
