package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// StatusEvent is the wire form of one snapshot, served over /status.json
// and pushed to websocket clients on state transitions.
type StatusEvent struct {
	State   string   `json:"state"`
	Reading float64  `json:"reading"`
	Missing bool     `json:"missing"`
	Title   string   `json:"title,omitempty"`
	Text    []string `json:"text"`
}

func eventFromSnapshot(snap DisplaySnapshot) StatusEvent {
	return StatusEvent{
		State:   snap.State.String(),
		Reading: snap.Reading,
		Missing: snap.Missing,
		Title:   snap.Title,
		Text:    snap.Lines,
	}
}

// StatusServer exposes the widget over HTTP: current status as JSON, the
// last rendered frame as PNG, and a websocket that gets an event whenever
// the classified state changes.
type StatusServer struct {
	e        *echo.Echo
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	lastEvent StatusEvent
	lastFrame []byte
	hasEvent  bool

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
}

func NewStatusServer() *StatusServer {
	s := &StatusServer{
		e:       echo.New(),
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.e.HideBanner = true
	s.e.HidePort = true

	s.e.GET("/status.json", s.handleStatus)
	s.e.GET("/frame.png", s.handleFrame)
	s.e.GET("/ws", s.handleWS)

	return s
}

func (s *StatusServer) Start(addr string) {
	go func() {
		logInfoModule("server", "Listening on %s", addr)
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			logErrorModule("server", "Server stopped: %v", err)
		}
	}()
}

func (s *StatusServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		logWarnModule("server", "Shutdown: %v", err)
	}

	s.clientsMu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.clientsMu.Unlock()
}

// Publish records the latest frame and notifies websocket clients when
// the state (or missing flag) flipped since the previous publish.
func (s *StatusServer) Publish(snap DisplaySnapshot, frame image.Image) {
	event := eventFromSnapshot(snap)

	var buf bytes.Buffer
	if frame != nil {
		if err := png.Encode(&buf, frame); err != nil {
			logWarnModule("server", "Frame encode failed: %v", err)
		}
	}

	s.mu.Lock()
	transition := !s.hasEvent ||
		event.State != s.lastEvent.State ||
		event.Missing != s.lastEvent.Missing
	s.lastEvent = event
	s.hasEvent = true
	if buf.Len() > 0 {
		s.lastFrame = buf.Bytes()
	}
	s.mu.Unlock()

	if transition {
		s.broadcast(event)
	}
}

func (s *StatusServer) broadcast(event StatusEvent) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *StatusServer) handleStatus(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasEvent {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.JSON(http.StatusOK, s.lastEvent)
}

func (s *StatusServer) handleFrame(c echo.Context) error {
	s.mu.RLock()
	frame := s.lastFrame
	s.mu.RUnlock()
	if frame == nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.Blob(http.StatusOK, "image/png", frame)
}

func (s *StatusServer) handleWS(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	s.mu.RLock()
	event, ok := s.lastEvent, s.hasEvent
	s.mu.RUnlock()
	if ok {
		conn.WriteJSON(event)
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	// Reader loop only to notice the peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.clientsMu.Lock()
				delete(s.clients, conn)
				s.clientsMu.Unlock()
				conn.Close()
				return
			}
		}
	}()

	return nil
}
