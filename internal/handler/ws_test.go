package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourday/planner/internal/events"
	"github.com/tourday/planner/internal/handler"
	"github.com/tourday/planner/internal/middleware"
)

// startFeed runs a hub and an httptest server exposing /ws.
func startFeed(t *testing.T) (*events.Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := events.NewHub(slog.New(slog.DiscardHandler))
	go hub.Run(ctx)

	srv := handler.NewServer(&mockPlanServicer{}, nil, nil, hub, handler.Options{
		CheckOrigin: middleware.OriginChecker([]string{"http://localhost:3000"}),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return hub, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestServeWS_streamsHubEvents(t *testing.T) {
	hub, url := startFeed(t)

	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:3000"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	events.NewBroadcaster(hub, slog.New(slog.DiscardHandler)).PlanDeleted("plan-1")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    events.MessageType        `json:"type"`
		Payload events.PlanDeletedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, events.TypePlanDeleted, msg.Type)
	assert.Equal(t, "plan-1", msg.Payload.PlanID)
}

func TestServeWS_unregistersOnClose(t *testing.T) {
	hub, url := startFeed(t)

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServeWS_rejectsForeignOrigin(t *testing.T) {
	_, url := startFeed(t)

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example.com"}})

	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
