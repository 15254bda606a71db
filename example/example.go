// Package example demonstrates a real media link: a wav-file producer
// feeding a wav-file consumer through a watermarked queue. PCM payload
// travels through buffers as 16-bit little-endian samples.
package example

import (
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"pipelined.dev/flow"
)

// ErrInvalidWav is returned if the reader does not contain a valid wav.
var ErrInvalidWav = errors.New("wav is not valid")

// Producer reads PCM buffers from a wav stream and finishes with io.EOF.
type Producer struct {
	decoder    *wav.Decoder
	ib         *audio.IntBuffer
	sampleRate int
	channels   int
	frames     int
}

// NewProducer creates a wav producer reading bufferSize frames per buffer.
func NewProducer(r io.ReadSeeker, bufferSize int) (*Producer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWav
	}
	format := decoder.Format()
	return &Producer{
		decoder:    decoder,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		ib: &audio.IntBuffer{
			Format:         format,
			Data:           make([]int, bufferSize*format.NumChannels),
			SourceBitDepth: int(decoder.BitDepth),
		},
	}, nil
}

// SampleRate returns sample rate of the decoded wav.
func (p *Producer) SampleRate() int {
	return p.sampleRate
}

// NumChannels returns number of channels of the decoded wav.
func (p *Producer) NumChannels() int {
	return p.channels
}

// BitDepth returns bit depth of the decoded wav.
func (p *Producer) BitDepth() int {
	return int(p.decoder.BitDepth)
}

// Produce implements flow.Producer.
func (p *Producer) Produce() (*flow.Buffer, error) {
	n, err := p.decoder.PCMBuffer(p.ib)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	data := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(p.ib.Data[i])))
	}
	frames := n / p.channels
	b := &flow.Buffer{
		Data:      data,
		Timestamp: p.duration(p.frames),
		Duration:  p.duration(frames),
	}
	p.frames += frames
	return b, nil
}

func (p *Producer) duration(frames int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(p.sampleRate)
}

// Consumer writes consumed PCM buffers into a wav stream. Close must be
// called to finalize the wav header.
type Consumer struct {
	encoder  *wav.Encoder
	format   *audio.Format
	bitDepth int
}

// NewConsumer creates a wav consumer with provided signal properties.
func NewConsumer(ws io.WriteSeeker, sampleRate, bitDepth, numChannels int) *Consumer {
	return &Consumer{
		encoder:  wav.NewEncoder(ws, sampleRate, bitDepth, numChannels, 1),
		bitDepth: bitDepth,
		format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
	}
}

// Consume implements flow.Consumer.
func (c *Consumer) Consume(b *flow.Buffer) error {
	n := len(b.Data) / 2
	ints := make([]int, n)
	for i := 0; i < n; i++ {
		ints[i] = int(int16(binary.LittleEndian.Uint16(b.Data[2*i:])))
	}
	return c.encoder.Write(&audio.IntBuffer{
		Format:         c.format,
		Data:           ints,
		SourceBitDepth: c.bitDepth,
	})
}

// Close finalizes the wav stream.
func (c *Consumer) Close() error {
	return c.encoder.Close()
}
