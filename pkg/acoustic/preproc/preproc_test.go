package preproc

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a 16-bit PCM WAV file with the given interleaved
// samples in [-1, 1]
func writeWAV(t *testing.T, path string, sampleRate, channels int, samples []float64) {
	t.Helper()

	var data bytes.Buffer
	for _, s := range samples {
		v := int16(math.Round(s * 32767))
		binary.Write(&data, binary.LittleEndian, v)
	}

	var buf bytes.Buffer
	blockAlign := channels * 2
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := make([]float64, 800)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/8000)
	}
	writeWAV(t, path, 8000, 1, samples)

	sampleRate, signal, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, sampleRate)
	require.Len(t, signal, len(samples))
	for i := range signal {
		assert.InDelta(t, samples[i], signal[i], 1e-3, "sample %d", i)
	}
}

func TestLoadStereoMixdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// Left constant 0.5, right constant -0.5: the mixdown is silence.
	interleaved := make([]float64, 200)
	for i := 0; i < len(interleaved); i += 2 {
		interleaved[i] = 0.5
		interleaved[i+1] = -0.5
	}
	writeWAV(t, path, 16000, 2, interleaved)

	sampleRate, signal, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16000.0, sampleRate)
	require.Len(t, signal, 100)
	for i := range signal {
		assert.InDelta(t, 0.0, signal[i], 1e-3)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}

func TestPreEmphasis(t *testing.T) {
	signal := []float64{1, 2, 3, 4}
	out := PreEmphasis(signal, 0.5)

	assert.Equal(t, []float64{1, 1.5, 2, 2.5}, out)
	assert.Equal(t, []float64{1, 2, 3, 4}, signal, "input must not be modified")

	assert.Nil(t, PreEmphasis(nil, 0.97))
}

func TestLoadPreEmphasized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.wav")
	writeWAV(t, path, 8000, 1, []float64{0, 0.25, 0.5, 0.75})

	_, signal, err := LoadPreEmphasized(path, 0.97)
	require.NoError(t, err)
	require.Len(t, signal, 4)
	assert.InDelta(t, 0.25-0.97*0, signal[1], 1e-3)
	assert.InDelta(t, 0.5-0.97*0.25, signal[2], 1e-3)
}
