package analyzers

import (
	"math/cmplx"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// SpectralAnalyzer computes short-time power spectra for frame-based
// feature extraction
type SpectralAnalyzer struct {
	sampleRate float64
	logger     logging.Logger
}

// SpectrogramResult holds the result of STFT analysis
type SpectrogramResult struct {
	Power          [][]float64 `json:"power"`           // Time x Frequency power matrix
	TimeFrames     int         `json:"time_frames"`     // Number of time frames
	FreqBins       int         `json:"freq_bins"`       // Number of frequency bins (nfft/2 + 1)
	SampleRate     float64     `json:"sample_rate"`     // Sample rate
	WindowSize     int         `json:"window_size"`     // Analysis window size in samples
	HopSize        int         `json:"hop_size"`        // Hop size between frames
	FFTSize        int         `json:"fft_size"`        // Zero-padded FFT length
	FreqResolution float64     `json:"freq_resolution"` // Frequency resolution (Hz/bin)
	TimeResolution float64     `json:"time_resolution"` // Time resolution (seconds/frame)
}

// NewSpectralAnalyzer creates a new spectral analyzer
func NewSpectralAnalyzer(sampleRate float64) *SpectralAnalyzer {
	return &SpectralAnalyzer{
		sampleRate: sampleRate,
		logger: logging.WithFields(logging.Fields{
			"component":   "spectral_analyzer",
			"sample_rate": sampleRate,
		}),
	}
}

// PowerSpectrogram computes a Hann-windowed power spectrogram with the
// given window and hop sizes in samples. Each frame is zero-padded to the
// next power of two before the transform; only the positive-frequency bins
// are kept.
func (sa *SpectralAnalyzer) PowerSpectrogram(signal []float64, windowSize, hopSize int) (*SpectrogramResult, error) {
	if windowSize <= 0 || hopSize <= 0 {
		return nil, common.NewInvalidInputError("spectral.PowerSpectrogram",
			"window and hop sizes must be positive")
	}

	nfft := dsputils.NextPowerOf2(windowSize)
	freqBins := nfft/2 + 1
	win := window.Hann(windowSize)

	numFrames := 0
	if len(signal) >= windowSize {
		numFrames = (len(signal)-windowSize)/hopSize + 1
	}

	logger := sa.logger.WithFields(logging.Fields{
		"function":      "PowerSpectrogram",
		"signal_length": len(signal),
		"time_frames":   numFrames,
	})
	logger.Debug("Computing power spectrogram")

	power := make([][]float64, numFrames)
	frame := make([]float64, windowSize)
	for t := range numFrames {
		start := t * hopSize
		for i := range frame {
			frame[i] = signal[start+i] * win[i]
		}

		spectrum := fft.FFT(dsputils.ZeroPad(dsputils.ToComplex(frame), nfft))
		power[t] = make([]float64, freqBins)
		for f := range freqBins {
			m := cmplx.Abs(spectrum[f])
			power[t][f] = m * m
		}
	}

	return &SpectrogramResult{
		Power:          power,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sa.sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FFTSize:        nfft,
		FreqResolution: sa.sampleRate / float64(nfft),
		TimeResolution: float64(hopSize) / sa.sampleRate,
	}, nil
}
