package formant

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/analyzers"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/config"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/lpc"
	"github.com/RyanBlaney/acousticsim/pkg/acoustic/preproc"
)

// Poles closer than this to DC or to the top of the search range are
// treated as windowing artifacts rather than formants.
const edgeGuardHz = 50.0

// Extractor produces formant tracks from waveforms via frame-wise LPC
// analysis: each frame is windowed, fitted with a prediction filter of
// order 2*NumFormants, and the filter's complex pole pairs are converted
// to (frequency, bandwidth) candidates.
type Extractor struct {
	config  *config.FormantConfig
	engine  *lpc.Engine
	windows *analyzers.WindowGenerator
	logger  logging.Logger
}

// NewExtractor creates a formant extractor, validating the configuration
func NewExtractor(cfg *config.FormantConfig) (*Extractor, error) {
	if cfg == nil {
		cfg = config.DefaultFormantConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		config:  cfg,
		engine:  lpc.NewEngine(),
		windows: analyzers.NewWindowGenerator(),
		logger: logging.WithFields(logging.Fields{
			"component":     "formant_extractor",
			"max_frequency": cfg.MaxFrequency,
			"num_formants":  cfg.NumFormants,
		}),
	}, nil
}

// ExtractFile extracts a formant track from a WAV file
func (e *Extractor) ExtractFile(path string) (*Track, error) {
	sampleRate, signal, err := preproc.Load(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(signal, sampleRate)
}

// Extract extracts a formant track from an in-memory signal. The signal
// is pre-emphasized and resampled to twice MaxFrequency before analysis;
// the input slice is not modified. A signal shorter than one analysis
// window yields an empty track, not an error.
func (e *Extractor) Extract(signal []float64, sampleRate float64) (*Track, error) {
	if sampleRate <= 0 {
		return nil, common.NewInvalidInputError("formant.Extract",
			fmt.Sprintf("sample rate must be positive, got %v", sampleRate))
	}

	workingRate := 2 * e.config.MaxFrequency
	alpha := math.Exp(-2 * math.Pi * edgeGuardHz / workingRate)
	emphasized := preproc.PreEmphasis(signal, alpha)
	resampled := preproc.Resample(emphasized,
		int(math.Ceil(float64(len(emphasized))/(sampleRate/workingRate))))

	winLen := e.config.WindowLength
	if e.config.WindowShape == analyzers.WindowGaussian {
		// The Gaussian taper concentrates its mass in the middle of the
		// frame, so the effective length is doubled to keep a comparable
		// analysis span.
		winLen *= 2
	}
	nperseg := int(winLen * workingRate)
	nperstep := int(e.config.TimeStep * workingRate)

	track := NewTrack(e.config.NumFormants, workingRate)
	if nperseg <= 0 || nperstep <= 0 || nperseg > len(resampled) {
		e.logger.Debug("Signal shorter than one analysis window", logging.Fields{
			"signal_length": len(resampled),
			"window_length": nperseg,
		})
		return track, nil
	}

	win, err := e.windows.Generate(e.config.WindowShape, nperseg)
	if err != nil {
		return nil, err
	}

	half := nperseg / 2
	var centers []int
	for c := half; c-half+nperseg <= len(resampled); c += nperstep {
		centers = append(centers, c)
	}

	e.logger.Debug("Extracting formant track", logging.Fields{
		"working_rate": workingRate,
		"frames":       len(centers),
		"window":       nperseg,
		"hop":          nperstep,
	})

	if e.config.MaxConcurrency > 1 {
		e.processParallel(track, resampled, win, centers, workingRate)
	} else {
		for _, center := range centers {
			e.processInto(track, resampled, win, center, workingRate)
		}
	}
	return track, nil
}

// processInto analyzes one frame and records it in the track. Frames whose
// LPC fit or root finding fails are counted and skipped instead of
// aborting the whole run; a malformed stretch of a long recording should
// not cost the rest of the track.
func (e *Extractor) processInto(track *Track, signal, win []float64, center int, rate float64) {
	formants, err := e.processFrame(signal, win, center, rate)
	if err != nil {
		track.Skipped++
		e.logger.Warn("Skipping frame", logging.Fields{
			"time":  float64(center) / rate,
			"error": err.Error(),
		})
		return
	}
	track.Add(float64(center)/rate, formants)
}

// processParallel runs the independent frame analyses on a bounded worker
// pool. Results are collected per index and inserted afterwards, so the
// track contents do not depend on completion order.
func (e *Extractor) processParallel(track *Track, signal, win []float64, centers []int, rate float64) {
	results := make([][]Candidate, len(centers))
	errs := make([]error, len(centers))

	var g errgroup.Group
	g.SetLimit(e.config.MaxConcurrency)
	for i, center := range centers {
		g.Go(func() error {
			results[i], errs[i] = e.processFrame(signal, win, center, rate)
			return nil
		})
	}
	g.Wait()

	for i, center := range centers {
		if errs[i] != nil {
			track.Skipped++
			e.logger.Warn("Skipping frame", logging.Fields{
				"time":  float64(center) / rate,
				"error": errs[i].Error(),
			})
			continue
		}
		track.Add(float64(center)/rate, results[i])
	}
}

// processFrame windows the frame around center, fits the prediction filter
// and converts its poles to formant candidates. The result always has
// exactly NumFormants entries: short frames are padded with missing
// candidates and surplus survivors are truncated, keeping the track
// rectangular.
func (e *Extractor) processFrame(signal, win []float64, center int, rate float64) ([]Candidate, error) {
	start := center - len(win)/2
	frame := make([]float64, len(win))
	for i := range frame {
		frame[i] = signal[start+i] * win[i]
	}

	model, err := e.engine.Estimate(frame, 2*e.config.NumFormants)
	if err != nil {
		return nil, err
	}

	roots, err := PolynomialRoots(model.Coefficients)
	if err != nil {
		return nil, err
	}

	// Complex-conjugate pole pairs collapse to the representative with
	// non-negative imaginary part.
	candidates := make([]Candidate, 0, len(roots))
	for _, root := range roots {
		if imag(root) < 0 {
			continue
		}
		freq := math.Atan2(imag(root), real(root)) * rate / (2 * math.Pi)
		bw := -0.5 * rate / (2 * math.Pi) * math.Log(cmplx.Abs(root))
		candidates = append(candidates, Candidate{Frequency: freq, Bandwidth: bw})
	}
	return e.selectFormants(candidates), nil
}

// selectFormants filters, orders and sizes the candidate list for one
// frame. Candidates within the 50 Hz edge guards are discarded; the rest
// are taken in ascending frequency order, truncated at NumFormants and
// padded with missing sentinels, so every frame has exactly NumFormants
// entries.
func (e *Extractor) selectFormants(candidates []Candidate) []Candidate {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Frequency < candidates[j].Frequency
	})

	formants := make([]Candidate, 0, e.config.NumFormants)
	for _, c := range candidates {
		if c.Frequency < edgeGuardHz || c.Frequency > e.config.MaxFrequency-edgeGuardHz {
			continue
		}
		if len(formants) == e.config.NumFormants {
			break
		}
		formants = append(formants, c)
	}
	for len(formants) < e.config.NumFormants {
		formants = append(formants, Candidate{
			Frequency: math.NaN(),
			Bandwidth: math.NaN(),
			Missing:   true,
		})
	}
	return formants
}
