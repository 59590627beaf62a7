package mfcc

import "math"

// FreqToMel converts a frequency in Hz to the mel scale
func FreqToMel(freq float64) float64 {
	return 2595 * math.Log10(1+freq/700.0)
}

// MelToFreq converts a mel-scale value back to Hz
func MelToFreq(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595.0) - 1)
}

// filterBank builds a triangular mel filter bank as an nfft/2+1 x nfilt
// matrix. Filter centers are spaced evenly on the mel scale between the
// frequency bounds; each filter rises from its left neighbor's center and
// falls to its right neighbor's.
func filterBank(nfft, nfilt int, minFreq, maxFreq, sampleRate float64) [][]float64 {
	melPoints := make([]float64, nfilt+2)
	minMel := FreqToMel(minFreq)
	maxMel := FreqToMel(maxFreq)
	for i := range melPoints {
		melPoints[i] = MelToFreq(minMel + (maxMel-minMel)*float64(i)/float64(nfilt+1))
	}

	bins := nfft/2 + 1
	fftFreqs := make([]float64, bins)
	for i := range fftFreqs {
		fftFreqs[i] = float64(i) / float64(nfft) * sampleRate
	}

	fbank := make([][]float64, bins)
	for i := range fbank {
		fbank[i] = make([]float64, nfilt)
	}
	for f := range nfilt {
		lo, center, hi := melPoints[f], melPoints[f+1], melPoints[f+2]
		for i, freq := range fftFreqs {
			loSlope := (freq - lo) / (center - lo)
			hiSlope := (hi - freq) / (hi - center)
			v := math.Min(loSlope, hiSlope)
			if v > 0 {
				fbank[i][f] = v
			}
		}
	}
	return fbank
}
