package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
	"github.com/BruksfildServices01/trainer-scheduler/internal/testutil"
)

func TestAuditSinkWritesSubject(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	sink := NewAuditSink(db)

	clientID := uint(4)
	ev := Event{
		Type: domain.EventSessionCancelled,
		Payload: domain.SessionCancelled{
			ActorID:   4,
			SessionID: 12,
			ClientID:  &clientID,
			TrainerID: 2,
			IsLate:    true,
		},
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sink.Deliver(context.Background(), ev))

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, domain.EventSessionCancelled, row.Action)
	assert.Equal(t, "session", row.Entity)
	require.NotNil(t, row.EntityID)
	assert.Equal(t, uint(12), *row.EntityID)
	require.NotNil(t, row.ActorID)
	assert.Equal(t, uint(4), *row.ActorID)
	assert.Contains(t, row.Metadata, `"is_late":true`)
}

func TestRedisSinkPublishes(t *testing.T) {
	srv := miniredis.RunT(t)
	sub := srv.NewSubscriber()
	defer sub.Close()
	sub.Subscribe("sessions.events")

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	sink := NewRedisSink(client, "sessions.events")

	// miniredis hands the message over on an unbuffered channel
	errCh := make(chan error, 1)
	go func() {
		errCh <- sink.Deliver(context.Background(), Event{
			Type:    domain.EventSessionConfirmed,
			Payload: domain.SessionStatusChanged{SessionID: 3, Status: domain.StatusConfirmed},
		})
	}()

	select {
	case msg := <-sub.Messages():
		var got struct {
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Message), &got))
		assert.Equal(t, domain.EventSessionConfirmed, got.Type)
		assert.Equal(t, "confirmed", got.Payload["status"])
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}
	require.NoError(t, <-errCh)
}

func TestConnectRedisSinkRecoversAfterOutage(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	defer client.Close()

	srv.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	sink := ConnectRedisSink(context.Background(), client, "sessions.events", logger)
	require.NotNil(t, sink)
	assert.Contains(t, logs.String(), "events are published once it is reachable")

	ev := Event{
		Type:    domain.EventSessionConfirmed,
		Payload: domain.SessionStatusChanged{SessionID: 3, Status: domain.StatusConfirmed},
	}
	assert.Error(t, sink.Deliver(context.Background(), ev))

	require.NoError(t, srv.Restart())
	assert.NoError(t, sink.Deliver(context.Background(), ev))
}
