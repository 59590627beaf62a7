package preproc

import (
	"fmt"
	"os"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/mjibson/go-dsp/wav"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

const formatPCM = 1

// Load reads a WAV file and returns its sample rate and samples as a mono
// float64 signal. Multi-channel input is mixed down by averaging.
func Load(path string) (float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	w, err := wav.New(f)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if w.AudioFormat != formatPCM {
		return 0, nil, common.NewUnsupportedInputError("preproc.Load",
			fmt.Sprintf("unsupported WAV audio format %d (PCM only)", w.AudioFormat))
	}
	if w.NumChannels == 0 || w.SampleRate == 0 {
		return 0, nil, common.NewInvalidInputError("preproc.Load",
			"WAV header has zero channels or sample rate")
	}

	raw, err := w.ReadFloats(w.Samples)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read samples from %s: %w", path, err)
	}

	channels := int(w.NumChannels)
	frames := len(raw) / channels
	signal := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for c := range channels {
			sum += float64(raw[i*channels+c])
		}
		signal[i] = sum / float64(channels)
	}

	logging.WithFields(logging.Fields{"component": "preproc"}).
		Debug("Loaded waveform", logging.Fields{
			"path":        path,
			"sample_rate": w.SampleRate,
			"channels":    channels,
			"frames":      frames,
		})

	return float64(w.SampleRate), signal, nil
}

// PreEmphasis applies the first-order high-pass filter
// y[n] = x[n] - alpha*x[n-1], boosting the spectral slope before LPC
// analysis. The input is not modified.
func PreEmphasis(signal []float64, alpha float64) []float64 {
	if len(signal) == 0 {
		return nil
	}
	out := make([]float64, len(signal))
	out[0] = signal[0]
	for i := 1; i < len(signal); i++ {
		out[i] = signal[i] - alpha*signal[i-1]
	}
	return out
}

// LoadPreEmphasized loads a WAV file and applies pre-emphasis in one step
func LoadPreEmphasized(path string, alpha float64) (float64, []float64, error) {
	sampleRate, signal, err := Load(path)
	if err != nil {
		return 0, nil, err
	}
	return sampleRate, PreEmphasis(signal, alpha), nil
}
