package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPublisherWritesToStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	err := NewPublisher(client).Publish(ctx, UserEventsStream, UserProvisioned, UserProvisionedEvent{
		UserID: "usr-001",
		Email:  "alice@example.com",
	})
	require.NoError(t, err)

	msgs, err := client.XRange(ctx, UserEventsStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, UserProvisioned, msgs[0].Values["type"])

	var event struct {
		Type string               `json:"type"`
		Data UserProvisionedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["event"].(string)), &event))
	require.Equal(t, UserProvisioned, event.Type)
	require.Equal(t, "usr-001", event.Data.UserID)
	require.Equal(t, "alice@example.com", event.Data.Email)
}

func TestPublisherReportsRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	err := NewPublisher(client).Publish(context.Background(), UserEventsStream, UserProvisioned, UserProvisionedEvent{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to publish user.provisioned event")
}

func TestNopPublisher(t *testing.T) {
	require.NoError(t, NopPublisher{}.Publish(context.Background(), UserEventsStream, UserProvisioned, nil))
}
