package nsq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer("127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, producer)
	assert.Contains(t, err.Error(), "failed to ping NSQ daemon")
}

func TestZapOutput(t *testing.T) {
	assert.NoError(t, zapOutput{}.Output(2, "INF    1 (127.0.0.1:4150) connecting to nsqd\n"))
}
