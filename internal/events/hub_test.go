package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.Send():
		require.True(t, ok, "client channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHub(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	a, b := NewClient(), NewClient()
	hub.Register(a)
	hub.Register(b)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	t.Run("Publish: Reaches All Clients", func(t *testing.T) {
		hub.Publish("booking.created", map[string]string{"id": "b1"})

		for _, c := range []*Client{a, b} {
			msg := receive(t, c)
			assert.Equal(t, "booking.created", msg.Type)
			assert.Equal(t, map[string]any{"id": "b1"}, msg.Payload)
			assert.False(t, msg.Timestamp.IsZero())
		}
	})

	t.Run("Unregister: Closes Channel", func(t *testing.T) {
		hub.Unregister(a)
		_, ok := <-a.Send()
		assert.False(t, ok)
		assert.Equal(t, 1, hub.ClientCount())
	})

	t.Run("Publish: Unencodable Payload Dropped", func(t *testing.T) {
		hub.Publish("bad", func() {})
		hub.Publish("booking.status_changed", nil)
		assert.Equal(t, "booking.status_changed", receive(t, b).Type)
	})

	t.Run("Run: Stops On Cancel", func(t *testing.T) {
		cancel()
		<-done
		_, ok := <-b.Send()
		assert.False(t, ok)
		assert.Zero(t, hub.ClientCount())

		late := NewClient()
		hub.Register(late)
		_, ok = <-late.Send()
		assert.False(t, ok)
	})
}
