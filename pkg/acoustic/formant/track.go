package formant

import (
	"math"
	"sort"

	"github.com/RyanBlaney/acousticsim/pkg/acoustic/common"
)

// ValueKind selects a channel of the formant track projection
type ValueKind string

const (
	ValueFrequency ValueKind = "frequency"
	ValueBandwidth ValueKind = "bandwidth"
)

// Candidate is one (frequency, bandwidth) formant pair in Hz. Frames are
// padded to a fixed length with missing candidates when fewer valid poles
// survive filtering.
type Candidate struct {
	Frequency float64 `json:"frequency"`
	Bandwidth float64 `json:"bandwidth"`
	Missing   bool    `json:"missing,omitempty"`
}

// Track is a formant track: a mapping from frame center time in seconds to
// a fixed-length slice of formant candidates. It is built incrementally
// during extraction and read-only afterwards.
type Track struct {
	NumFormants int     // Candidates per frame
	SampleRate  float64 // Working sample rate the track was extracted at
	Skipped     int     // Frames dropped because of per-frame analysis failures

	frames map[float64][]Candidate
}

// NewTrack creates an empty formant track
func NewTrack(numFormants int, sampleRate float64) *Track {
	return &Track{
		NumFormants: numFormants,
		SampleRate:  sampleRate,
		frames:      make(map[float64][]Candidate),
	}
}

// Add records the candidates for the frame centered at time t
func (t *Track) Add(time float64, formants []Candidate) {
	t.frames[time] = formants
}

// Times returns the frame center offsets in seconds, ascending
func (t *Track) Times() []float64 {
	times := make([]float64, 0, len(t.frames))
	for key := range t.frames {
		times = append(times, key)
	}
	sort.Float64s(times)
	return times
}

// FrameAt returns the candidates for the frame centered at time t
func (t *Track) FrameAt(time float64) ([]Candidate, bool) {
	frame, ok := t.frames[time]
	return frame, ok
}

// Len returns the number of frames in the track
func (t *Track) Len() int {
	return len(t.frames)
}

// FrameLength returns the fixed number of candidates per frame
func (t *Track) FrameLength() int {
	return t.NumFormants
}

// Duration returns the time span between the first and last frame centers
func (t *Track) Duration() float64 {
	if len(t.frames) == 0 {
		return 0
	}
	times := t.Times()
	return times[len(times)-1] - times[0]
}

// ToMatrix projects one channel of the track as a rectangular matrix of
// shape frames x NumFormants, rows in ascending time order. Missing
// candidates become NaN.
func (t *Track) ToMatrix(value ValueKind) [][]float64 {
	times := t.Times()
	out := make([][]float64, len(times))
	for i, key := range times {
		row := make([]float64, t.NumFormants)
		for j, c := range t.frames[key] {
			if j >= t.NumFormants {
				break
			}
			switch {
			case c.Missing:
				row[j] = math.NaN()
			case value == ValueBandwidth:
				row[j] = c.Bandwidth
			default:
				row[j] = c.Frequency
			}
		}
		out[i] = row
	}
	return out
}

var _ common.FeatureTrack = (*Track)(nil)
