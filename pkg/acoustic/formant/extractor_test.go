package formant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/analyzers"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/config"
)

// synthResonant excites cascaded two-pole resonators with a glottal-style
// impulse train, producing a vowel-like signal with known resonance
// frequencies and bandwidths.
func synthResonant(n int, sampleRate, pitch float64, freqs, bandwidths []float64) []float64 {
	signal := make([]float64, n)
	period := int(sampleRate / pitch)
	for i := 0; i < n; i += period {
		signal[i] = 1
	}

	for k := range freqs {
		radius := math.Exp(-math.Pi * bandwidths[k] / sampleRate)
		angle := 2 * math.Pi * freqs[k] / sampleRate
		b1 := 2 * radius * math.Cos(angle)
		b2 := radius * radius

		filtered := make([]float64, n)
		for i := range filtered {
			filtered[i] = signal[i]
			if i >= 1 {
				filtered[i] += b1 * filtered[i-1]
			}
			if i >= 2 {
				filtered[i] -= b2 * filtered[i-2]
			}
		}
		signal = filtered
	}
	return signal
}

func testFormantConfig(numFormants int) *config.FormantConfig {
	return &config.FormantConfig{
		MaxFrequency:   5000,
		NumFormants:    numFormants,
		WindowLength:   0.025,
		TimeStep:       0.01,
		WindowShape:    analyzers.WindowGaussian,
		MaxConcurrency: 1,
	}
}

func TestNewExtractorValidation(t *testing.T) {
	cfg := testFormantConfig(2)
	cfg.NumFormants = 0
	_, err := NewExtractor(cfg)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeInvalidInput))

	cfg = testFormantConfig(2)
	cfg.WindowShape = "triangle"
	_, err = NewExtractor(cfg)
	require.Error(t, err)
}

func TestNewExtractorDefaults(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, e.config.NumFormants)
}

// TestExtractShortSignal: a signal shorter than one analysis window must
// yield an empty track, not an error.
func TestExtractShortSignal(t *testing.T) {
	extractor, err := NewExtractor(testFormantConfig(2))
	require.NoError(t, err)

	track, err := extractor.Extract(make([]float64, 100), 10000)
	require.NoError(t, err)
	assert.Zero(t, track.Len())
	assert.Zero(t, track.Skipped)
}

func TestExtractInvalidRate(t *testing.T) {
	extractor, err := NewExtractor(testFormantConfig(2))
	require.NoError(t, err)

	_, err = extractor.Extract(make([]float64, 1000), 0)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.ErrCodeInvalidInput))
}

// TestExtractPureResonance: a single known two-pole resonance must come
// back as the first formant of every frame.
func TestExtractPureResonance(t *testing.T) {
	const rate = 10000.0
	signal := synthResonant(int(rate), rate, 100, []float64{1000}, []float64{80})

	extractor, err := NewExtractor(testFormantConfig(1))
	require.NoError(t, err)

	track, err := extractor.Extract(signal, rate)
	require.NoError(t, err)
	require.Greater(t, track.Len(), 10)
	assert.Zero(t, track.Skipped)

	for _, time := range track.Times() {
		frame, _ := track.FrameAt(time)
		require.Len(t, frame, 1)
		require.False(t, frame[0].Missing, "frame at %v lost the resonance", time)
		assert.InDelta(t, 1000, frame[0].Frequency, 30, "frame at %v", time)
		assert.Greater(t, frame[0].Bandwidth, 0.0)
	}
}

// TestExtractSyntheticVowel is the end-to-end scenario: a 16 kHz
// vowel-like signal with resonances at 500 and 1500 Hz, analyzed at a
// 10 kHz working rate.
func TestExtractSyntheticVowel(t *testing.T) {
	signal := synthResonant(8000, 16000, 100,
		[]float64{500, 1500}, []float64{80, 120})

	extractor, err := NewExtractor(testFormantConfig(2))
	require.NoError(t, err)

	track, err := extractor.Extract(signal, 16000)
	require.NoError(t, err)
	require.Greater(t, track.Len(), 20)
	assert.InDelta(t, 10000.0, track.SampleRate, 1e-9)

	for _, time := range track.Times() {
		frame, _ := track.FrameAt(time)
		require.Len(t, frame, 2)
		require.False(t, frame[0].Missing, "frame at %v", time)
		require.False(t, frame[1].Missing, "frame at %v", time)
		assert.InDelta(t, 500, frame[0].Frequency, 100, "F1 at %v", time)
		assert.InDelta(t, 1500, frame[1].Frequency, 150, "F2 at %v", time)
		assert.Less(t, frame[0].Frequency, frame[1].Frequency)
	}

	// Frame centers advance by the configured hop.
	times := track.Times()
	for i := 1; i < len(times); i++ {
		assert.InDelta(t, 0.01, times[i]-times[i-1], 1e-9)
	}
}

// TestExtractFixedFrameLength: every frame carries exactly NumFormants
// candidates no matter how many poles survive filtering.
func TestExtractFixedFrameLength(t *testing.T) {
	const rate = 10000.0
	signal := synthResonant(int(rate/2), rate, 100, []float64{1000}, []float64{80})

	extractor, err := NewExtractor(testFormantConfig(4))
	require.NoError(t, err)

	track, err := extractor.Extract(signal, rate)
	require.NoError(t, err)
	require.Greater(t, track.Len(), 0)

	for _, time := range track.Times() {
		frame, _ := track.FrameAt(time)
		require.Len(t, frame, 4, "frame at %v", time)
	}
}

// TestSelectFormants pins the fixed-length frame behavior: edge-guard
// filtering, ascending order, missing-sentinel padding when too few
// survive, and truncation when too many do.
func TestSelectFormants(t *testing.T) {
	extractor, err := NewExtractor(testFormantConfig(2))
	require.NoError(t, err)

	t.Run("padding", func(t *testing.T) {
		formants := extractor.selectFormants([]Candidate{
			{Frequency: 30, Bandwidth: 40},   // below the DC guard
			{Frequency: 800, Bandwidth: 90},  // survives
			{Frequency: 4980, Bandwidth: 50}, // above maxFrequency - 50
		})
		require.Len(t, formants, 2)
		assert.Equal(t, 800.0, formants[0].Frequency)
		assert.True(t, formants[1].Missing)
		assert.True(t, math.IsNaN(formants[1].Frequency))
		assert.True(t, math.IsNaN(formants[1].Bandwidth))
	})

	t.Run("truncation", func(t *testing.T) {
		formants := extractor.selectFormants([]Candidate{
			{Frequency: 2400, Bandwidth: 100},
			{Frequency: 500, Bandwidth: 80},
			{Frequency: 1500, Bandwidth: 120},
		})
		require.Len(t, formants, 2)
		assert.Equal(t, 500.0, formants[0].Frequency)
		assert.Equal(t, 1500.0, formants[1].Frequency)
	})

	t.Run("all filtered", func(t *testing.T) {
		formants := extractor.selectFormants([]Candidate{
			{Frequency: 10}, {Frequency: 4990},
		})
		require.Len(t, formants, 2)
		assert.True(t, formants[0].Missing)
		assert.True(t, formants[1].Missing)
	})
}

// TestExtractParallelMatchesSequential: the worker pool mode must produce
// the same track as sequential extraction.
func TestExtractParallelMatchesSequential(t *testing.T) {
	signal := synthResonant(8000, 16000, 100,
		[]float64{500, 1500}, []float64{80, 120})

	sequential, err := NewExtractor(testFormantConfig(2))
	require.NoError(t, err)
	seqTrack, err := sequential.Extract(signal, 16000)
	require.NoError(t, err)

	cfg := testFormantConfig(2)
	cfg.MaxConcurrency = 4
	parallel, err := NewExtractor(cfg)
	require.NoError(t, err)
	parTrack, err := parallel.Extract(signal, 16000)
	require.NoError(t, err)

	require.Equal(t, seqTrack.Len(), parTrack.Len())
	require.Equal(t, seqTrack.Times(), parTrack.Times())

	seqFreqs := seqTrack.ToMatrix(ValueFrequency)
	parFreqs := parTrack.ToMatrix(ValueFrequency)
	for i := range seqFreqs {
		for j := range seqFreqs[i] {
			if math.IsNaN(seqFreqs[i][j]) {
				assert.True(t, math.IsNaN(parFreqs[i][j]))
				continue
			}
			assert.InDelta(t, seqFreqs[i][j], parFreqs[i][j], 1e-9)
		}
	}
}

// TestExtractSkipsUnanalyzableFrames: when the LPC order exceeds the
// frame length every frame fails and is flagged, and the run still
// completes.
func TestExtractSkipsUnanalyzableFrames(t *testing.T) {
	cfg := testFormantConfig(5) // order 10
	cfg.WindowLength = 0.0004   // 4-sample effective window at 10 kHz
	cfg.WindowShape = analyzers.WindowHann

	extractor, err := NewExtractor(cfg)
	require.NoError(t, err)

	signal := synthResonant(2000, 10000, 100, []float64{1000}, []float64{80})
	track, err := extractor.Extract(signal, 10000)
	require.NoError(t, err)

	assert.Zero(t, track.Len())
	assert.Greater(t, track.Skipped, 0)
}
