package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avior/infuser/internal/adapter/http/views"
	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/service"
)

type SSEHandler struct {
	eventBus  *service.EventBus
	keepAlive time.Duration
}

func NewSSEHandler(eventBus *service.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		keepAlive: 15 * time.Second,
	}
}

// renderOutcomeHTML renders the feed item for an outcome.
func renderOutcomeHTML(out domain.Outcome) (string, error) {
	var buf bytes.Buffer
	if err := views.OutcomeLine(out).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// Events streams every submission outcome as an "outcome" event until the
// client goes away.
func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := h.eventBus.Subscribe()
		defer h.eventBus.Unsubscribe(ch)

		sendKeepAlive(w)

		ctx := r.Context()
		keepAlive := time.NewTicker(h.keepAlive)
		defer keepAlive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				sendKeepAlive(w)
			case out, ok := <-ch:
				if !ok {
					return
				}
				html, err := renderOutcomeHTML(out)
				if err != nil {
					return
				}
				sseWrite(w, "outcome", html)
			}
		}
	}
}
