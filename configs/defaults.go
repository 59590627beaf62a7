package configs

import (
	"github.com/spf13/viper"
)

// setDefaults sets default configuration values for all components.
// Explicitly set values, from file or flags, always win.
func setDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "json")
	}

	// Formant extraction defaults
	if !v.IsSet("formant.max_frequency") {
		v.Set("formant.max_frequency", 5500.0)
	}
	if !v.IsSet("formant.num_formants") {
		v.Set("formant.num_formants", 5)
	}
	if !v.IsSet("formant.window_length") {
		v.Set("formant.window_length", 0.025)
	}
	if !v.IsSet("formant.time_step") {
		v.Set("formant.time_step", 0.01)
	}
	if !v.IsSet("formant.window_shape") {
		v.Set("formant.window_shape", "gaussian")
	}
	if !v.IsSet("formant.max_concurrency") {
		v.Set("formant.max_concurrency", 1)
	}

	// MFCC extraction defaults
	if !v.IsSet("mfcc.min_frequency") {
		v.Set("mfcc.min_frequency", 0.0)
	}
	if !v.IsSet("mfcc.max_frequency") {
		v.Set("mfcc.max_frequency", 8000.0)
	}
	if !v.IsSet("mfcc.num_coefficients") {
		v.Set("mfcc.num_coefficients", 13)
	}
	if !v.IsSet("mfcc.window_length") {
		v.Set("mfcc.window_length", 0.025)
	}
	if !v.IsSet("mfcc.time_step") {
		v.Set("mfcc.time_step", 0.01)
	}
	if !v.IsSet("mfcc.num_filters") {
		v.Set("mfcc.num_filters", 26)
	}
	if !v.IsSet("mfcc.use_power") {
		v.Set("mfcc.use_power", false)
	}
	if !v.IsSet("mfcc.pre_emphasis") {
		v.Set("mfcc.pre_emphasis", 0.97)
	}
}
