package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	sendFn func(ctx context.Context, phone, body string) error
}

func (m *mockSender) SendText(ctx context.Context, phone, body string) error {
	return m.sendFn(ctx, phone, body)
}

type recordingAck struct {
	acked, nacked, requeued bool
}

func (r *recordingAck) Ack(multiple bool) error {
	r.acked = true
	return nil
}

func (r *recordingAck) Nack(multiple, requeue bool) error {
	r.nacked = true
	r.requeued = requeue
	return nil
}

func messageBody(t *testing.T) []byte {
	body, err := json.Marshal(service.Message{BookingID: 1, Kind: "reminder", Phone: "5581999990000", Text: "see you"})
	require.NoError(t, err)
	return body
}

func TestHandle_Delivered(t *testing.T) {
	var phone, text string
	nc := NewNotificationConsumer(&mockSender{sendFn: func(ctx context.Context, p, b string) error {
		phone, text = p, b
		return nil
	}})
	ack := &recordingAck{}

	nc.handle(messageBody(t), ack)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Equal(t, "5581999990000", phone)
	assert.Equal(t, "see you", text)
}

func TestHandle_SendFailure(t *testing.T) {
	nc := NewNotificationConsumer(&mockSender{sendFn: func(ctx context.Context, p, b string) error {
		return errors.New("whatsapp api returned 401")
	}})
	ack := &recordingAck{}

	nc.handle(messageBody(t), ack)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestHandle_BadPayload(t *testing.T) {
	nc := NewNotificationConsumer(&mockSender{sendFn: func(ctx context.Context, p, b string) error {
		t.Fatal("sender must not be called")
		return nil
	}})
	ack := &recordingAck{}

	nc.handle([]byte("{not json"), ack)

	assert.True(t, ack.nacked)
	assert.False(t, ack.acked)
}
