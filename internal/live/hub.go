// Package live fans collection snapshots out to subscribers. A subscriber
// only ever sees the latest snapshot of each collection it watches; slow
// readers skip intermediate states instead of blocking publishers.
package live

import (
	"context"
	"sync"
	"time"

	"github.com/hevilin/talentsite/internal/db"
)

// Snapshot is the full ordered contents of one collection at a point in time.
type Snapshot struct {
	Collection db.Collection `json:"collection"`
	Items      any           `json:"items"`
	At         time.Time     `json:"at"`
}

// Hub tracks subscriptions. The zero value is not usable; use NewHub.
//
// Every snapshot of a collection gets a sequence number when its contents
// are read. A snapshot older than the last one published for its collection
// is dropped, so concurrent refreshes never leave subscribers on stale data.
type Hub struct {
	mu        sync.Mutex
	subs      map[*Subscription]struct{}
	seq       map[db.Collection]uint64
	published map[db.Collection]uint64
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs:      make(map[*Subscription]struct{}),
		seq:       make(map[db.Collection]uint64),
		published: make(map[db.Collection]uint64),
	}
}

// stamp reserves the next sequence number for c.
func (h *Hub) stamp(c db.Collection) (uint64, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq[c]++
	return h.seq[c], time.Now().UTC()
}

// Subscription receives snapshots for a fixed set of collections.
type Subscription struct {
	hub     *Hub
	watch   map[db.Collection]bool
	mu      sync.Mutex
	pending map[db.Collection]Snapshot
	ready   chan struct{}
	closed  bool
}

// Subscribe registers interest in the given collections.
func (h *Hub) Subscribe(collections ...db.Collection) *Subscription {
	s := &Subscription{
		hub:     h,
		watch:   make(map[db.Collection]bool, len(collections)),
		pending: make(map[db.Collection]Snapshot),
		ready:   make(chan struct{}, 1),
	}
	for _, c := range collections {
		s.watch[c] = true
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Publish delivers snap to every subscription watching its collection,
// replacing any snapshot of that collection not yet read.
func (h *Hub) Publish(snap Snapshot) {
	seq, at := h.stamp(snap.Collection)
	if snap.At.IsZero() {
		snap.At = at
	}
	h.publish(snap, seq)
}

// publish delivers snap unless a newer snapshot of its collection has
// already gone out.
func (h *Hub) publish(snap Snapshot, seq uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seq <= h.published[snap.Collection] {
		return
	}
	h.published[snap.Collection] = seq
	for s := range h.subs {
		s.offer(snap)
	}
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Watching reports whether any open subscription watches c. Publishers use
// it to skip loading a snapshot nobody will read.
func (h *Hub) Watching(c db.Collection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if s.watch[c] {
			return true
		}
	}
	return false
}

func (s *Subscription) offer(snap Snapshot) {
	if !s.watch[snap.Collection] {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending[snap.Collection] = snap
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next blocks until at least one snapshot is pending and returns all pending
// snapshots in db.Collections order. It returns ctx.Err() when ctx ends and
// ErrClosed after Close.
func (s *Subscription) Next(ctx context.Context) ([]Snapshot, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, ErrClosed
		}
		if len(s.pending) > 0 {
			out := make([]Snapshot, 0, len(s.pending))
			for _, c := range db.Collections {
				if snap, ok := s.pending[c]; ok {
					out = append(out, snap)
				}
			}
			clear(s.pending)
			s.mu.Unlock()
			return out, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.ready:
		}
	}
}

// Close unregisters the subscription and wakes any pending Next.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s)
	s.hub.mu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Loader reads the current contents of a collection.
type Loader func(ctx context.Context, c db.Collection) (any, error)

// Refresh loads c and publishes it, unless nobody is watching c. The
// snapshot is ordered by when its load started; if a later refresh of c
// has already published, this one is discarded.
func (h *Hub) Refresh(ctx context.Context, c db.Collection, load Loader) error {
	if !h.Watching(c) {
		return nil
	}
	seq, at := h.stamp(c)
	items, err := load(ctx, c)
	if err != nil {
		return err
	}
	h.publish(Snapshot{Collection: c, Items: items, At: at}, seq)
	return nil
}
