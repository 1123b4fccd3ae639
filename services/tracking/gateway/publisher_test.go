package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	topics []string
	events []models.SessionLifecycleEvent
	err    error
}

func (f *fakeProducer) Publish(topic string, message interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, topic)
	f.events = append(f.events, message.(models.SessionLifecycleEvent))
	return nil
}

func TestNSQPublisher(t *testing.T) {
	producer := &fakeProducer{}
	p := NewNSQPublisher(producer)
	ctx := context.Background()

	started := models.SessionLifecycleEvent{BookingID: "T1", State: models.SessionStateActive}
	ended := models.SessionLifecycleEvent{BookingID: "T1", State: models.SessionStateCompleted, RoutePoints: 3}

	require.NoError(t, p.PublishSessionStarted(ctx, started))
	require.NoError(t, p.PublishSessionEnded(ctx, ended))

	assert.Equal(t, []string{constants.TopicSessionStarted, constants.TopicSessionEnded}, producer.topics)
	assert.Equal(t, []models.SessionLifecycleEvent{started, ended}, producer.events)
}

func TestNSQPublisher_Failure(t *testing.T) {
	p := NewNSQPublisher(&fakeProducer{err: errors.New("nsqd unreachable")})

	err := p.PublishSessionEnded(context.Background(), models.SessionLifecycleEvent{BookingID: "T1"})
	assert.ErrorContains(t, err, constants.TopicSessionEnded)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher()
	assert.NoError(t, p.PublishSessionStarted(context.Background(), models.SessionLifecycleEvent{}))
	assert.NoError(t, p.PublishSessionEnded(context.Background(), models.SessionLifecycleEvent{}))
}
