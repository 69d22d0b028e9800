package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange   string
	key        string
	msg        amqp.Publishing
	publishErr error
	closed     bool
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.publishErr
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel, openErr error) *AMQPPublisher {
	return &AMQPPublisher{
		exchange: "resume_events",
		open: func() (channel, error) {
			if openErr != nil {
				return nil, openErr
			}
			return ch, nil
		},
	}
}

func TestPublishResumeProcessed(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch, nil)
	uploaded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.PublishResumeProcessed(context.Background(), ResumeProcessed{
		ResumeID:   "8c7a1f7e-52d1-4a43-9d1e-0f5b3c1d9a10",
		FileName:   "cv.pdf",
		Skills:     []string{"Go", "SQL"},
		UploadedAt: uploaded,
	})
	require.NoError(t, err)

	assert.Equal(t, "resume_events", ch.exchange)
	assert.Equal(t, RoutingKeyResumeProcessed, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), ch.msg.DeliveryMode)
	assert.True(t, ch.closed)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "8c7a1f7e-52d1-4a43-9d1e-0f5b3c1d9a10", body["resumeId"])
	assert.Equal(t, []any{"Go", "SQL"}, body["skills"])
	assert.Equal(t, "2026-03-01T12:00:00Z", body["uploadedAt"])
	assert.Equal(t, float64(1), body["version"])
}

func TestPublishSurfacesBrokerErrors(t *testing.T) {
	boom := errors.New("channel closed")

	err := newTestPublisher(nil, boom).PublishResumeProcessed(context.Background(), ResumeProcessed{ResumeID: "x"})
	assert.ErrorIs(t, err, boom)

	ch := &fakeChannel{publishErr: boom}
	err = newTestPublisher(ch, nil).PublishResumeProcessed(context.Background(), ResumeProcessed{ResumeID: "x"})
	assert.ErrorIs(t, err, boom)
	assert.True(t, ch.closed)
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := &fakeChannel{}
	err := newTestPublisher(ch, nil).PublishResumeProcessed(ctx, ResumeProcessed{ResumeID: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ch.key)
}

func TestEncodeMessageSendsEmptySkillsArray(t *testing.T) {
	payload, err := EncodeMessage(ResumeProcessed{ResumeID: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"skills":[]`)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishResumeProcessed(context.Background(), ResumeProcessed{}))
	assert.NoError(t, p.Close())
}

func TestNewAMQPPublisherValidatesInputs(t *testing.T) {
	_, err := NewAMQPPublisher("", "resume_events")
	assert.Error(t, err)
	_, err = NewAMQPPublisher("amqp://localhost", " ")
	assert.Error(t, err)
}
