package common

// FeatureTrack is a time-indexed sequence of fixed-length feature frames.
// Formant and cepstral extractors both produce one; downstream similarity
// code only needs the temporal index and the frame width.
type FeatureTrack interface {
	// Times returns the frame center offsets in seconds, ascending.
	Times() []float64

	// FrameLength returns the number of values per frame.
	FrameLength() int

	// Duration returns the time span covered by the track in seconds,
	// zero for an empty track.
	Duration() float64
}
