package mfcc

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/analyzers"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/config"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/preproc"
)

// lifterLength is the HTK sinusoidal liftering parameter L
const lifterLength = 22.0

// logFloor keeps silent filter outputs out of the log; one ulp at 1.0
const logFloor = 2.220446049250313e-16

// Track is a time-indexed MFCC matrix
type Track struct {
	times        []float64
	coefficients [][]float64
}

// Times returns the frame center offsets in seconds, ascending
func (t *Track) Times() []float64 {
	return t.times
}

// Coefficients returns the frames x NumCoefficients cepstral matrix in
// ascending time order
func (t *Track) Coefficients() [][]float64 {
	return t.coefficients
}

// FrameLength returns the number of coefficients per frame
func (t *Track) FrameLength() int {
	if len(t.coefficients) == 0 {
		return 0
	}
	return len(t.coefficients[0])
}

// Len returns the number of frames in the track
func (t *Track) Len() int {
	return len(t.times)
}

// Duration returns the time span between the first and last frame centers
func (t *Track) Duration() float64 {
	if len(t.times) == 0 {
		return 0
	}
	return t.times[len(t.times)-1] - t.times[0]
}

var _ common.FeatureTrack = (*Track)(nil)

// Extractor computes HTK-style mel-frequency cepstral coefficients:
// power spectrogram, mel filter bank, log compression, DCT cepstrum and
// sinusoidal liftering.
type Extractor struct {
	config *config.MFCCConfig
	logger logging.Logger
}

// NewExtractor creates an MFCC extractor, validating the configuration
func NewExtractor(cfg *config.MFCCConfig) (*Extractor, error) {
	if cfg == nil {
		cfg = config.DefaultMFCCConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component":        "mfcc_extractor",
			"num_coefficients": cfg.NumCoefficients,
			"num_filters":      cfg.NumFilters,
		}),
	}, nil
}

// ExtractFile extracts an MFCC track from a WAV file
func (e *Extractor) ExtractFile(path string) (*Track, error) {
	sampleRate, signal, err := preproc.Load(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(signal, sampleRate)
}

// Extract extracts an MFCC track from an in-memory signal. The mel filter
// bank cannot reach above the Nyquist frequency, so MaxFrequency must not
// exceed half the sample rate.
func (e *Extractor) Extract(signal []float64, sampleRate float64) (*Track, error) {
	if sampleRate <= 0 {
		return nil, common.NewInvalidInputError("mfcc.Extract",
			fmt.Sprintf("sample rate must be positive, got %v", sampleRate))
	}
	if e.config.MaxFrequency > sampleRate/2 {
		return nil, common.NewInvalidInputError("mfcc.Extract",
			fmt.Sprintf("max frequency %v exceeds Nyquist %v", e.config.MaxFrequency, sampleRate/2))
	}

	emphasized := preproc.PreEmphasis(signal, e.config.PreEmphasis)

	windowSize := int(e.config.WindowLength * sampleRate)
	hopSize := int(e.config.TimeStep * sampleRate)
	spectral := analyzers.NewSpectralAnalyzer(sampleRate)
	spectrogram, err := spectral.PowerSpectrogram(emphasized, windowSize, hopSize)
	if err != nil {
		return nil, err
	}

	fbank := filterBank(spectrogram.FFTSize, e.config.NumFilters,
		e.config.MinFrequency, e.config.MaxFrequency, sampleRate)
	lifter := make([]float64, e.config.NumFilters)
	for i := range lifter {
		lifter[i] = 1 + lifterLength/2*math.Sin(math.Pi*float64(i)/lifterLength)
	}

	e.logger.Debug("Extracting MFCC track", logging.Fields{
		"frames":  spectrogram.TimeFrames,
		"window":  windowSize,
		"hop":     hopSize,
		"filters": e.config.NumFilters,
	})

	track := &Track{
		times:        make([]float64, spectrogram.TimeFrames),
		coefficients: make([][]float64, spectrogram.TimeFrames),
	}
	for t := range spectrogram.TimeFrames {
		filtered := e.applyFilterBank(spectrogram.Power[t], fbank)
		cepstrum := dctCepstrum(filtered)
		for i := range cepstrum {
			cepstrum[i] *= lifter[i]
		}
		if !e.config.UsePower {
			cepstrum = cepstrum[1:]
		}
		track.coefficients[t] = cepstrum[:e.config.NumCoefficients]
		track.times[t] = (float64(t*hopSize) + float64(windowSize)/2) / sampleRate
	}
	return track, nil
}

// applyFilterBank projects one power spectrum frame onto the mel filters.
// The magnitude spectrum is filtered and the result squared, following the
// HTK convention.
func (e *Extractor) applyFilterBank(power []float64, fbank [][]float64) []float64 {
	out := make([]float64, e.config.NumFilters)
	for f := range out {
		sum := 0.0
		for i, p := range power {
			sum += math.Sqrt(p) * fbank[i][f]
		}
		out[f] = sum * sum
	}
	return out
}

// dctCepstrum converts a mel spectrum to a cepstrum via the HTK-style DCT
// of its log. The leading scale folds the dB compression into natural-log
// units.
func dctCepstrum(spec []float64) []float64 {
	n := len(spec)
	logSpec := make([]float64, n)
	for i, v := range spec {
		logSpec[i] = 10 * math.Log10(v+logFloor)
	}

	scale := math.Sqrt(2/float64(n)) * 0.230258509299405
	cep := make([]float64, n)
	for i := range cep {
		sum := 0.0
		for j := range n {
			sum += math.Cos(float64(i)*float64(2*j+1)/float64(2*n)*math.Pi) * logSpec[j]
		}
		cep[i] = sum * scale
	}
	return cep
}
