// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/classpulse/aggregate"
	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/store"
	"github.com/dustin/go-humanize"
)

type RoomHandler struct {
	store *store.Store
	ids   *auth.Issuer
	cfg   cliparse.Config
}

func NewRoomHandler(st *store.Store, ids *auth.Issuer, cfg cliparse.Config) *RoomHandler {
	return &RoomHandler{store: st, ids: ids, cfg: cfg}
}

// Join handles POST /join
// Redirects to the learner or tutor page for the submitted room code
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	code, err := store.ValidateCode(strings.TrimSpace(r.PostFormValue("room_code")))
	if err != nil {
		slog.Info("join rejected", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.PostFormValue("role") == models.RoleTutor {
		http.Redirect(w, r, "/"+code+"/tutor", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/"+code, http.StatusSeeOther)
}

// LearnerPage handles GET /{code}
// Creates the room and the caller's learner record on first visit
func (h *RoomHandler) LearnerPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.RawQuery != "" {
		middleware.ErrorResponse(w, http.StatusForbidden, "Query parameters are not allowed")
		return
	}

	room, err := h.store.EnsureRoom(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	learnerID, err := h.ids.LearnerID(w, r)
	if err != nil {
		slog.Error("failed to issue learner id", "room", room.Code, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	learner, err := room.EnsureLearner(learnerID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LearnerPageResponse{
		Room:      room.Info(),
		Learner:   learner,
		LearnerID: learnerID,
	})
}

// TutorPage handles GET /{code}/tutor
// Returns the active roster in join order and the base URL learners use
func (h *RoomHandler) TutorPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.RawQuery != "" {
		middleware.ErrorResponse(w, http.StatusForbidden, "Query parameters are not allowed")
		return
	}

	room, err := h.store.EnsureRoom(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TutorPageResponse{
		Room:     room.Info(),
		Learners: aggregate.Roster(room.Learners(), aggregate.OrderJoined),
		BaseURL:  h.baseURL(r),
	})
}

// ListRooms handles GET /rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	summaries := h.store.ListRoomsSummary()
	for i := range summaries {
		summaries[i].CreatedAgo = humanize.Time(summaries[i].CreatedAt)
	}

	middleware.JSONResponse(w, http.StatusOK, models.RoomsResponse{Rooms: summaries})
}

// baseURL prefers the configured public URL, else the one the request came in on
func (h *RoomHandler) baseURL(r *http.Request) string {
	if h.cfg.BaseURL != "" {
		return h.cfg.BaseURL
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
