// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/store"
)

// writeStoreError maps store errors onto HTTP responses
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidCode):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid room code")
	case errors.Is(err, store.ErrMissingLearnerID):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Learner id is required")
	case errors.Is(err, store.ErrRoomNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, store.ErrRoomFull):
		slog.Warn("room full", "path", r.URL.Path)
		middleware.ErrorResponse(w, http.StatusConflict, "Room is full")
	case errors.Is(err, store.ErrCapacityExceeded):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "No more rooms can be created")
	default:
		slog.Error("unexpected store error", "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
