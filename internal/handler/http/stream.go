package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hr-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hr-backend-go/internal/pkg/sse"
)

type StreamHandler interface {
	Events(w http.ResponseWriter, r *http.Request)
}

type StreamHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
}

func NewStreamHandler(jwtService jwt.Service, hub *sse.Hub) StreamHandler {
	return &StreamHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
	}
}

const keepAliveInterval = 30 * time.Second

// Events implements StreamHandler. EventSource cannot send an Authorization
// header, so the client authenticates with a short-lived stream token in the
// query string.
func (h *StreamHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Stream token required")
		return
	}

	userID, err := h.jwtService.ValidateStreamToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	slog.Info("Event stream connected", "user_id", userID)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("Event stream disconnected", "user_id", userID)
			return
		case <-keepAlive.C:
			fmt.Fprintf(w, ": keep-alive\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Event stream marshal error", "error", err, "event", event.Event)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
			flusher.Flush()
		}
	}
}
