package example_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"pipelined.dev/flow"
	"pipelined.dev/flow/example"
)

const (
	sampleRate  = 44100
	bitDepth    = 16
	numChannels = 1
)

// writeWav creates a wav file with a sample ramp and returns the samples.
func writeWav(t *testing.T, path string, numSamples int) []int {
	t.Helper()
	f, err := os.Create(path)
	assert.Nil(t, err)

	samples := make([]int, numSamples)
	for i := range samples {
		samples[i] = i % 1000
	}
	e := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, 1)
	err = e.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: bitDepth,
	})
	assert.Nil(t, err)
	assert.Nil(t, e.Close())
	assert.Nil(t, f.Close())
	return samples
}

func TestWavLink(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	samples := writeWav(t, in, 4410)

	inFile, err := os.Open(in)
	assert.Nil(t, err)
	defer inFile.Close()

	p, err := example.NewProducer(inFile, 512)
	assert.Nil(t, err)
	assert.Equal(t, sampleRate, p.SampleRate())
	assert.Equal(t, numChannels, p.NumChannels())
	assert.Equal(t, bitDepth, p.BitDepth())

	outFile, err := os.Create(out)
	assert.Nil(t, err)
	defer outFile.Close()
	c := example.NewConsumer(outFile, p.SampleRate(), p.BitDepth(), p.NumChannels())

	q, err := flow.New(flow.WithThresholds(16, 32), flow.WithName("wav"))
	assert.Nil(t, err)
	r := q.Run(context.Background(), p, c)
	assert.Nil(t, r.Await())
	assert.Nil(t, c.Close())

	// decode the result and compare with the source signal
	verify, err := os.Open(out)
	assert.Nil(t, err)
	defer verify.Close()
	decoder := wav.NewDecoder(verify)
	decoded, err := decoder.FullPCMBuffer()
	assert.Nil(t, err)
	assert.Equal(t, samples, decoded.Data)
}

func TestInvalidWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	assert.Nil(t, os.WriteFile(path, []byte("not a wav"), 0644))

	f, err := os.Open(path)
	assert.Nil(t, err)
	defer f.Close()

	p, err := example.NewProducer(f, 512)
	assert.Equal(t, example.ErrInvalidWav, err)
	assert.Nil(t, p)
}
