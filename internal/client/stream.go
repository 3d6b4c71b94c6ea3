package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hevilin/talentsite/internal/db"
)

// Snapshot is one collection's full contents as sent by the stream. Items
// stay raw until the caller knows the collection's type.
type Snapshot struct {
	Collection db.Collection   `json:"collection"`
	Items      json.RawMessage `json:"items"`
	At         time.Time       `json:"at"`
}

// DecodeItems decodes a snapshot's items.
func DecodeItems[T any](s Snapshot) ([]T, error) {
	var items []T
	if err := json.Unmarshal(s.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", s.Collection, err)
	}
	return items, nil
}

// Stream reads snapshots from the live endpoint.
type Stream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

// Watch opens the live stream for the given collections (all when none).
// The stream ends when ctx is cancelled or Close is called.
func (c *Client) Watch(ctx context.Context, collections ...db.Collection) (*Stream, error) {
	const path = "/admin/stream"
	query := url.Values{}
	for _, col := range collections {
		query.Add("collection", string(col))
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, &Error{Method: http.MethodGet, Path: path, Message: "HTTP request failed", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return nil, responseError(http.MethodGet, path, resp)
	}
	return &Stream{body: resp.Body, reader: bufio.NewReader(resp.Body)}, nil
}

// Next blocks until the next snapshot. It returns io.EOF when the server
// ends the stream.
func (s *Stream) Next() (Snapshot, error) {
	var event, data string
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return Snapshot{}, err
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if event == "" && data == "" {
				continue
			}
			switch event {
			case "snapshot":
				var snap Snapshot
				if err := json.Unmarshal([]byte(data), &snap); err != nil {
					return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
				}
				return snap, nil
			case "error":
				var body struct {
					Error string `json:"error"`
				}
				_ = json.Unmarshal([]byte(data), &body)
				return Snapshot{}, fmt.Errorf("stream error: %s", body.Error)
			}
			event, data = "", ""
		case strings.HasPrefix(line, ":"):
			// keepalive comment
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data != "" {
				data += "\n"
			}
			data += strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
		}
	}
}

// Close ends the stream.
func (s *Stream) Close() error {
	return s.body.Close()
}
