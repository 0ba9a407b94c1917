package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	body, err := EncodeEvent("product.low_stock", map[string]any{"id": "p-1", "stock": 2}, at)
	require.NoError(t, err)

	var decoded struct {
		Type       string         `json:"type"`
		OccurredAt time.Time      `json:"occurred_at"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "product.low_stock", decoded.Type)
	assert.True(t, at.Equal(decoded.OccurredAt))
	assert.Equal(t, "p-1", decoded.Data["id"])
}

func TestEncodeEventRejectsUnmarshalablePayload(t *testing.T) {
	_, err := EncodeEvent("bad", make(chan int), time.Now())
	assert.Error(t, err)
}

func TestPublishWithoutChannel(t *testing.T) {
	var c *Client
	assert.Error(t, c.Publish(context.Background(), "user.created", nil))
	assert.Error(t, (&Client{}).Consume(nil, nil))
}
