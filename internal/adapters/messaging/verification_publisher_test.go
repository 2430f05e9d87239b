package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published  []published
	publishErr error
	closed     bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishVerification(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(nil, ch, "student-verifications")

	evt := ports.VerificationEvent{
		AttemptID:      "attempt-1",
		CanonicalEmail: "a@b.com",
		Outcome:        ports.OutcomeRejected,
		OccurredAt:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, broker.PublishVerification(context.Background(), evt))

	require.Len(t, ch.published, 1)
	p := ch.published[0]
	assert.Equal(t, "", p.exchange)
	assert.Equal(t, "student-verifications", p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
	assert.Equal(t, "attempt-1", p.msg.MessageId)
	assert.Equal(t, ports.VerificationEventType, p.msg.Type)

	var got ports.VerificationEvent
	require.NoError(t, json.Unmarshal(p.msg.Body, &got))
	assert.Equal(t, evt, got)
	assert.NotContains(t, string(p.msg.Body), "password")
}

func TestPublishVerification_ExpiredContext(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(nil, ch, "q")

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := broker.PublishVerification(ctx, ports.VerificationEvent{AttemptID: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, ch.published)
}

func TestPublishVerification_ChannelError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	broker := newBroker(nil, ch, "q")

	err := broker.PublishVerification(context.Background(), ports.VerificationEvent{AttemptID: "x"})
	assert.EqualError(t, err, "channel closed")
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(nil, ch, "q")
	require.NoError(t, broker.Close())
	assert.True(t, ch.closed)
}
