package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/hostlink-ma/hostlink-services/api/internal/events"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishSendsPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "hostlink.events", nil)
	ctx := logging.WithTraceID(context.Background(), "trace-1")
	event := events.New(events.ListingStatusChanged, map[string]any{"listingId": "l1", "status": "approved"})

	p.Publish(ctx, event)

	assert.Equal(t, "hostlink.events", ch.exchange)
	assert.Equal(t, "listing.status_changed", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "trace-1", ch.msg.Headers["x-trace-id"])

	var decoded events.Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "approved", decoded.Payload["status"])
}

func TestPublishFailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := newPublisher(&fakeChannel{err: errors.New("channel closed")}, "x", logger)

	p.Publish(context.Background(), events.New(events.LeadCaptured, nil))

	assert.Contains(t, buf.String(), "channel closed")
	assert.Contains(t, buf.String(), "lead.captured")
}

func TestCloseClosesChannel(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, newPublisher(ch, "x", nil).Close())
	assert.True(t, ch.closed)
}
