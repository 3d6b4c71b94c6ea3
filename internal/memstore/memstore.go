// Package memstore is an in-memory implementation of the site's store. It
// backs demo mode and the HTTP handler tests; nothing survives a restart.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
)

// Store holds every collection behind a single lock.
type Store struct {
	mu          sync.RWMutex
	last        time.Time
	jobs        map[uuid.UUID]db.Job
	candidates  map[uuid.UUID]db.Candidate
	messages    map[uuid.UUID]db.Message
	clients     map[uuid.UUID]db.ClientCompany
	onboardings map[uuid.UUID]db.OnboardingProcess
	users       map[uuid.UUID]db.User
}

// New returns an empty store.
func New() *Store {
	return &Store{
		jobs:        make(map[uuid.UUID]db.Job),
		candidates:  make(map[uuid.UUID]db.Candidate),
		messages:    make(map[uuid.UUID]db.Message),
		clients:     make(map[uuid.UUID]db.ClientCompany),
		onboardings: make(map[uuid.UUID]db.OnboardingProcess),
		users:       make(map[uuid.UUID]db.User),
	}
}

// DemoJobs are the postings shown when the site runs without a database.
var DemoJobs = []db.JobInput{
	{Title: "Commercial Manager", Location: "São Paulo", Type: "On-site", Description: "Lead the commercial team.", Active: true},
	{Title: "Frontend Developer", Location: "Remote", Type: "PJ", Description: "React and Node.js.", Active: true},
	{Title: "HR Analyst", Location: "Hybrid", Type: "CLT", Description: "Focus on recruitment and selection.", Active: true},
}

// NewDemo returns a store seeded with DemoJobs.
func NewDemo() *Store {
	s := New()
	for _, in := range DemoJobs {
		_, _ = s.CreateJob(context.Background(), in)
	}
	return s
}

// Close is a no-op; it lets Store satisfy the same interface as db.DB.
func (s *Store) Close() {}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// now returns a strictly increasing timestamp so created_at ordering is
// total even for records created in the same clock tick. Callers hold mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func notFound(kind string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, id, db.ErrNotFound)
}

// Count returns the number of records in a collection.
func (s *Store) Count(_ context.Context, c db.Collection) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch c {
	case db.CollectionJobs:
		return len(s.jobs), nil
	case db.CollectionCandidates:
		return len(s.candidates), nil
	case db.CollectionMessages:
		return len(s.messages), nil
	case db.CollectionClients:
		return len(s.clients), nil
	case db.CollectionOnboardings:
		return len(s.onboardings), nil
	default:
		return 0, fmt.Errorf("unknown collection: %s", c)
	}
}

// sortAndPage orders records by created_at and applies limit/offset.
func sortAndPage[T any](items []T, createdAt func(T) time.Time, opts db.ListOptions) []T {
	sort.Slice(items, func(i, j int) bool {
		if opts.Order == db.OrderOldestFirst {
			return createdAt(items[i]).Before(createdAt(items[j]))
		}
		return createdAt(items[i]).After(createdAt(items[j]))
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return items[:0]
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
