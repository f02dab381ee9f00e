package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"swear-jar/models"
	"swear-jar/store"
)

const streamBatch = 100

// EventStream tails the curse event log for Server-Sent Events clients.
type EventStream struct {
	Store    *store.Store
	Interval time.Duration
}

func NewEventStream(st *store.Store) *EventStream {
	return &EventStream{Store: st, Interval: 2 * time.Second}
}

// Write polls for events newer than the connection start and writes them as
// "curse" frames. It returns when ctx is done or the client goes away.
func (s *EventStream) Write(ctx context.Context, w *bufio.Writer, since time.Time) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	cursor := since

	// Initial keepalive (comment event)
	w.WriteString(":\n\n")
	if err := w.Flush(); err != nil {
		return
	}

	for {
		select {
		case <-ticker.C:
			events, err := s.Store.CurseEventsSince(ctx, cursor, streamBatch)
			if err != nil {
				zap.L().Warn("SSE query error", zap.Error(err))
				continue
			}

			if len(events) == 0 {
				// keep proxies from closing an idle connection
				w.WriteString(":\n\n")
			} else {
				cursor = events[len(events)-1].CreatedAt
				for _, e := range events {
					writeCurseFrame(w, e)
				}
			}

			if err := w.Flush(); err != nil {
				// Client disconnected
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func writeCurseFrame(w *bufio.Writer, e models.CurseEvent) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "id: %s\nevent: curse\ndata: %s\n\n", e.ID, payload)
}
