package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/acousticsim/configs"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/mfcc"
)

var (
	mfccMinFrequency float64
	mfccMaxFrequency float64
	mfccCoefficients int
	mfccWindowLength float64
	mfccTimeStep     float64
	mfccFilters      int
	mfccUsePower     bool
)

var mfccCmd = &cobra.Command{
	Use:   "mfcc [wav-file...]",
	Short: "Extract mel-frequency cepstral coefficients from WAV files",
	Long: `Extract HTK-style MFCCs: pre-emphasis, short-time power spectrum,
mel filter bank, log compression, DCT cepstrum and sinusoidal liftering.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMFCC,
}

func init() {
	rootCmd.AddCommand(mfccCmd)

	mfccCmd.Flags().Float64Var(&mfccMinFrequency, "min-frequency", 0,
		"lower bound of the mel filter bank in Hz")
	mfccCmd.Flags().Float64Var(&mfccMaxFrequency, "max-frequency", 8000,
		"upper bound of the mel filter bank in Hz")
	mfccCmd.Flags().IntVarP(&mfccCoefficients, "num-coefficients", "n", 13,
		"number of cepstral coefficients per frame")
	mfccCmd.Flags().Float64Var(&mfccWindowLength, "window-length", 0.025,
		"analysis window length in seconds")
	mfccCmd.Flags().Float64Var(&mfccTimeStep, "time-step", 0.01,
		"frame hop in seconds")
	mfccCmd.Flags().IntVar(&mfccFilters, "num-filters", 26,
		"mel filter bank size")
	mfccCmd.Flags().BoolVar(&mfccUsePower, "use-power", false,
		"keep the power-based zeroth coefficient")

	viper.BindPFlag("mfcc.min_frequency", mfccCmd.Flags().Lookup("min-frequency"))
	viper.BindPFlag("mfcc.max_frequency", mfccCmd.Flags().Lookup("max-frequency"))
	viper.BindPFlag("mfcc.num_coefficients", mfccCmd.Flags().Lookup("num-coefficients"))
	viper.BindPFlag("mfcc.window_length", mfccCmd.Flags().Lookup("window-length"))
	viper.BindPFlag("mfcc.time_step", mfccCmd.Flags().Lookup("time-step"))
	viper.BindPFlag("mfcc.num_filters", mfccCmd.Flags().Lookup("num-filters"))
	viper.BindPFlag("mfcc.use_power", mfccCmd.Flags().Lookup("use-power"))
}

func runMFCC(cmd *cobra.Command, args []string) error {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := appConfig.MFCCConfig()
	if err != nil {
		return err
	}

	extractor, err := mfcc.NewExtractor(cfg)
	if err != nil {
		return err
	}

	var outputs []*matrixOutput
	for _, path := range args {
		track, err := extractor.ExtractFile(path)
		if err != nil {
			return fmt.Errorf("extraction failed for %s: %w", path, err)
		}
		outputs = append(outputs,
			newMatrixOutput(path, "mfcc", track.Times(), track.Coefficients()))
	}

	return writeOutput(appConfig.OutputFormat, outputs)
}
