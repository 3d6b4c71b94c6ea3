package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/hevilin/talentsite/internal/db"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 1 << 20
	maxListLimit = 500
)

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return &ErrValidation{Field: "body", Message: "invalid request body"}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid id"}
	}
	return id, nil
}

// parseListOptions reads order, limit and offset query parameters.
func parseListOptions(r *http.Request) (db.ListOptions, error) {
	q := r.URL.Query()
	var opts db.ListOptions

	switch order := q.Get("order"); order {
	case "", string(db.OrderNewestFirst):
		opts.Order = db.OrderNewestFirst
	case string(db.OrderOldestFirst):
		opts.Order = db.OrderOldestFirst
	default:
		return opts, &ErrValidation{Field: "order", Message: fmt.Sprintf("must be %q or %q", db.OrderNewestFirst, db.OrderOldestFirst)}
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"}
		}
		opts.Limit = min(n, maxListLimit)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, &ErrValidation{Field: "offset", Message: "must be a non-negative integer"}
		}
		opts.Offset = n
	}
	return opts, nil
}
