// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/store"
)

type StatusHandler struct {
	store *store.Store
	ids   *auth.Issuer
}

func NewStatusHandler(st *store.Store, ids *auth.Issuer) *StatusHandler {
	return &StatusHandler{store: st, ids: ids}
}

// Update handles POST /{code}/update
// Applies a partial name/status/answer update to the caller's learner record
func (h *StatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	var upd models.LearnerUpdate
	if err := middleware.ParseJSONBody(r, &upd); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	learnerID, err := h.ids.LearnerID(w, r)
	if err != nil {
		slog.Error("failed to issue learner id", "room", room.Code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	learner, ts, err := room.ApplyUpdate(learnerID, upd)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Debug("learner updated",
		"room", room.Code,
		"learner", learnerID,
		"status", learner.Status.Raw,
		"hand_up_rank", learner.HandUpRank,
	)

	middleware.JSONResponse(w, http.StatusOK, models.UpdateResponse{
		Success:   true,
		Timestamp: ts,
		Learner:   learner,
	})
}

// ClearStatus handles POST /{code}/clear-status
func (h *StatusHandler) ClearStatus(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	room.ClearAllStatuses()
	slog.Info("statuses cleared", "room", room.Code)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ResetLearners handles POST /{code}/reset-learners
// Marks every learner inactive; they rejoin on their next update
func (h *StatusHandler) ResetLearners(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	room.DeactivateAllLearners()
	slog.Info("learners reset", "room", room.Code)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
