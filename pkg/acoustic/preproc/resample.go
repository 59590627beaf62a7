package preproc

import (
	"github.com/mjibson/go-dsp/fft"
)

// Resample changes the signal to targetLength samples using FFT-domain
// resampling: the spectrum is truncated or zero-padded around the Nyquist
// bin and inverse-transformed, so band content below the smaller Nyquist
// frequency is preserved exactly. The signal is assumed periodic over the
// buffer, which suits batch analysis of complete recordings.
func Resample(signal []float64, targetLength int) []float64 {
	n := len(signal)
	if targetLength <= 0 {
		return nil
	}
	if n == 0 {
		return make([]float64, targetLength)
	}
	if targetLength == n {
		out := make([]float64, n)
		copy(out, signal)
		return out
	}

	spectrum := fft.FFTReal(signal)
	resized := make([]complex128, targetLength)

	keep := n
	if targetLength < n {
		keep = targetLength
	}
	half := keep / 2

	resized[0] = spectrum[0]
	for i := 1; i < (keep+1)/2; i++ {
		resized[i] = spectrum[i]
		resized[targetLength-i] = spectrum[n-i]
	}
	if keep%2 == 0 && half > 0 {
		if targetLength < n {
			// Downsampling: both halves of the old spectrum fold into
			// the new Nyquist bin; conjugate symmetry keeps it real.
			resized[half] = spectrum[half] + spectrum[n-half]
		} else {
			// Upsampling: split the old Nyquist bin across the two new
			// mirrored bins.
			resized[half] = spectrum[half] / 2
			resized[targetLength-half] = spectrum[half] / 2
		}
	}

	inverse := fft.IFFT(resized)
	scale := float64(targetLength) / float64(n)
	out := make([]float64, targetLength)
	for i := range out {
		out[i] = real(inverse[i]) * scale
	}
	return out
}
