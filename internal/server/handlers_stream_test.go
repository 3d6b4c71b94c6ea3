package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hevilin/talentsite/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streamEvent struct {
	ID   string
	Name string
	Data string
}

// readEvent reads the next named event, skipping comments.
func readEvent(t *testing.T, r *bufio.Reader) streamEvent {
	t.Helper()
	var ev streamEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.Name != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "id: "):
			ev.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			ev.Name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.Data = strings.TrimPrefix(line, "data: ")
		}
	}
}

type jobsSnapshot struct {
	Collection db.Collection `json:"collection"`
	Items      []db.Job      `json:"items"`
}

func TestParseCollections(t *testing.T) {
	all, err := parseCollections(nil)
	require.NoError(t, err)
	assert.Equal(t, db.Collections, all)

	got, err := parseCollections([]string{"messages", "jobs", "messages"})
	require.NoError(t, err)
	assert.Equal(t, []db.Collection{db.CollectionMessages, db.CollectionJobs}, got)

	_, err = parseCollections([]string{"users"})
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	srv := httptest.NewServer(ts.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/admin/stream?collection=jobs", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	retry, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "retry: 3000\n", retry)

	first := readEvent(t, reader)
	assert.Equal(t, "snapshot", first.Name)
	assert.Equal(t, "1", first.ID)
	var snap jobsSnapshot
	require.NoError(t, json.Unmarshal([]byte(first.Data), &snap))
	assert.Equal(t, db.CollectionJobs, snap.Collection)
	initial := len(snap.Items)

	require.Eventually(t, func() bool { return ts.hub.Watching(db.CollectionJobs) }, time.Second, 10*time.Millisecond)

	w := ts.do(t, http.MethodPost, "/admin/jobs", map[string]any{"title": "Live Job"}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	next := readEvent(t, reader)
	assert.Equal(t, "2", next.ID)
	require.NoError(t, json.Unmarshal([]byte(next.Data), &snap))
	require.Len(t, snap.Items, initial+1)
	assert.Equal(t, "Live Job", snap.Items[0].Title)

	// changes to unwatched collections do not produce events
	w = ts.do(t, http.MethodPost, "/messages", map[string]string{"name": "a", "email": "a@example.com", "message": "m"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	cancel()
	require.Eventually(t, func() bool { return ts.hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStream_KeepAlive(t *testing.T) {
	ts := newTestServer(t)
	ts.keepAlive = 20 * time.Millisecond
	token := ts.adminToken(t)

	srv := httptest.NewServer(ts.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/admin/stream?collection=clients", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, "snapshot", readEvent(t, reader).Name)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": keepalive\n", line)
}

func TestStream_InvalidCollection(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	w := ts.do(t, http.MethodGet, "/admin/stream?collection=users", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
