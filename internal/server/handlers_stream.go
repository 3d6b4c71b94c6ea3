package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hevilin/talentsite/internal/db"
	"github.com/hevilin/talentsite/internal/live"
	"go.uber.org/zap"
)

// parseCollections reads repeated ?collection= parameters. None means all.
func parseCollections(values []string) ([]db.Collection, error) {
	if len(values) == 0 {
		return db.Collections, nil
	}
	seen := make(map[db.Collection]bool, len(values))
	out := make([]db.Collection, 0, len(values))
	for _, v := range values {
		c, ok := db.ParseCollection(v)
		if !ok {
			return nil, &ErrValidation{Field: "collection", Message: "unknown collection " + v}
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

// handleStream sends a snapshot of each requested collection, then a fresh
// snapshot after every change, until the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	collections, err := parseCollections(r.URL.Query()["collection"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Subscribe before loading so no change between the two is lost.
	sub := s.hub.Subscribe(collections...)
	defer sub.Close()

	ctx := r.Context()
	initial := make([]live.Snapshot, 0, len(collections))
	for _, c := range collections {
		items, err := s.loadCollection(ctx, c)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		initial = append(initial, live.Snapshot{Collection: c, Items: items, At: time.Now().UTC()})
	}

	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for _, snap := range initial {
		if err := sse.WriteEvent("snapshot", snap); err != nil {
			return
		}
	}

	for {
		waitCtx, cancel := context.WithTimeout(ctx, s.keepAlive)
		snaps, err := sub.Next(waitCtx)
		cancel()

		switch {
		case err == nil:
			for _, snap := range snaps {
				if err := sse.WriteEvent("snapshot", snap); err != nil {
					s.logger.Debug("stream write failed", zap.Error(err))
					return
				}
			}
		case ctx.Err() != nil, errors.Is(err, live.ErrClosed):
			return
		case errors.Is(err, context.DeadlineExceeded):
			if err := sse.WriteComment("keepalive"); err != nil {
				return
			}
		default:
			sse.WriteError("stream interrupted")
			return
		}
	}
}
