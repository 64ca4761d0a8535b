package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tourday/planner/internal/events"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsReadLimit  = 4096
)

// ServeWS handles GET /ws. It upgrades the connection and streams change
// events from the hub until either side closes. Client messages are read
// only to process control frames and are otherwise ignored.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: ErrorDetail{Code: "unavailable", Message: "event feed disabled"}})
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	if upgrader.CheckOrigin == nil {
		upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.log.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := events.NewClient()
	if err := s.hub.Register(r.Context(), client); err != nil {
		_ = conn.Close()
		return
	}

	go s.wsWritePump(conn, client)
	go s.wsReadPump(conn, client)
}

// wsWritePump forwards hub messages to the connection and keeps it alive
// with pings. It returns when the hub closes the client's send channel or a
// write fails.
func (s *Server) wsWritePump(conn *websocket.Conn, client *events.Client) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// wsReadPump drains the connection so pongs and close frames are handled,
// and unregisters the client when the peer goes away.
func (s *Server) wsReadPump(conn *websocket.Conn, client *events.Client) {
	defer func() {
		// Bounded so a stopped hub cannot pin this goroutine.
		ctx, cancel := context.WithTimeout(context.Background(), wsWriteWait)
		s.hub.Unregister(ctx, client)
		cancel()
		_ = conn.Close()
	}()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("websocket read failed", "error", err)
			}
			return
		}
	}
}
