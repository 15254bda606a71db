package mock_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/flow/mock"
)

func TestProducer(t *testing.T) {
	p := &mock.Producer{Limit: 3, BufferSize: 8}

	for i := 0; i < 3; i++ {
		b, err := p.Produce()
		assert.Nil(t, err)
		assert.Equal(t, 8, b.Len())
		assert.Equal(t, byte(i), b.Data[0])
	}
	b, err := p.Produce()
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, b)
	assert.Equal(t, 3, p.Produced())
}

func TestProducerError(t *testing.T) {
	errProduce := errors.New("produce failed")
	p := &mock.Producer{Limit: 10, ErrorOnCall: 2, Err: errProduce}

	for i := 0; i < 2; i++ {
		_, err := p.Produce()
		assert.Nil(t, err)
	}
	_, err := p.Produce()
	assert.Equal(t, errProduce, err)
}

func TestConsumer(t *testing.T) {
	p := &mock.Producer{Limit: 2, BufferSize: 4}
	c := &mock.Consumer{}

	for i := 0; i < 2; i++ {
		b, err := p.Produce()
		assert.Nil(t, err)
		assert.Nil(t, c.Consume(b))
	}
	assert.Equal(t, 2, c.Consumed())
	buffers := c.Buffers()
	assert.Equal(t, byte(0), buffers[0].Data[0])
	assert.Equal(t, byte(1), buffers[1].Data[0])
}

func TestConsumerError(t *testing.T) {
	errConsume := errors.New("consume failed")
	c := &mock.Consumer{Err: errConsume}
	p := &mock.Producer{Limit: 1}

	b, err := p.Produce()
	assert.Nil(t, err)
	assert.Equal(t, errConsume, c.Consume(b))
	assert.Equal(t, 0, c.Consumed())
}
