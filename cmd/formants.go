package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/acousticsim/configs"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/formant"
)

var (
	formantMaxFrequency float64
	formantCount        int
	formantWindowLength float64
	formantTimeStep     float64
	formantWindowShape  string
	formantConcurrency  int
)

var formantsCmd = &cobra.Command{
	Use:   "formants [wav-file...]",
	Short: "Extract LPC formant tracks from WAV files",
	Long: `Extract formant frequency and bandwidth tracks via frame-wise linear
prediction. Each analysis frame is windowed, fitted with a prediction
filter of twice the formant count, and the filter poles are reported as
(frequency, bandwidth) pairs sorted by ascending frequency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormants,
}

func init() {
	rootCmd.AddCommand(formantsCmd)

	formantsCmd.Flags().Float64Var(&formantMaxFrequency, "max-frequency", 5500,
		"upper bound of the formant search range in Hz")
	formantsCmd.Flags().IntVarP(&formantCount, "num-formants", "n", 5,
		"number of formants per frame")
	formantsCmd.Flags().Float64Var(&formantWindowLength, "window-length", 0.025,
		"analysis window length in seconds (doubled for gaussian)")
	formantsCmd.Flags().Float64Var(&formantTimeStep, "time-step", 0.01,
		"frame hop in seconds")
	formantsCmd.Flags().StringVar(&formantWindowShape, "window-shape", "gaussian",
		"analysis window shape (gaussian, hann)")
	formantsCmd.Flags().IntVar(&formantConcurrency, "concurrency", 1,
		"frame worker pool size (1 = sequential)")

	viper.BindPFlag("formant.max_frequency", formantsCmd.Flags().Lookup("max-frequency"))
	viper.BindPFlag("formant.num_formants", formantsCmd.Flags().Lookup("num-formants"))
	viper.BindPFlag("formant.window_length", formantsCmd.Flags().Lookup("window-length"))
	viper.BindPFlag("formant.time_step", formantsCmd.Flags().Lookup("time-step"))
	viper.BindPFlag("formant.window_shape", formantsCmd.Flags().Lookup("window-shape"))
	viper.BindPFlag("formant.max_concurrency", formantsCmd.Flags().Lookup("concurrency"))
}

func runFormants(cmd *cobra.Command, args []string) error {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := appConfig.FormantConfig()
	if err != nil {
		return err
	}

	extractor, err := formant.NewExtractor(cfg)
	if err != nil {
		return err
	}

	var outputs []*matrixOutput
	for _, path := range args {
		track, err := extractor.ExtractFile(path)
		if err != nil {
			return fmt.Errorf("extraction failed for %s: %w", path, err)
		}
		if track.Skipped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %d frames skipped\n",
				path, track.Skipped)
		}

		times := track.Times()
		outputs = append(outputs,
			newMatrixOutput(path, "formant", times, track.ToMatrix(formant.ValueFrequency)),
			newMatrixOutput(path, "bandwidth", times, track.ToMatrix(formant.ValueBandwidth)))
	}

	return writeOutput(appConfig.OutputFormat, outputs)
}
