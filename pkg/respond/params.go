package respond

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var (
	errBadID    = errors.New("invalid id")
	errBadCount = errors.New("count must be a non-negative integer")
)

// PathID parses the uuid route parameter name. On failure it writes a 400
// and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, errBadID.Error(), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// PathParam returns the decoded value of a free-text route parameter.
// chi matches on the escaped path when the request has one, so the
// parameter still carries escapes like %2F in that case.
func PathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// PathCount parses the {count} route parameter of the "latest" endpoints.
func PathCount(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil || n < 0 {
		http.Error(w, errBadCount.Error(), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// Created answers a create call with the new id, as the API always has.
func Created(w http.ResponseWriter, location string, id uuid.UUID) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusCreated, id)
}
