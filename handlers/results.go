// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classpulse/aggregate"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/store"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// Hands handles GET /{code}/hands
// Returns raised hands in the order they were raised
func (h *ResultsHandler) Hands(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HandQueueResponse{
		Room:  room.Info(),
		Hands: aggregate.HandQueue(room.Learners()),
	})
}

// Poll handles GET /{code}/poll
func (h *ResultsHandler) Poll(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{
		Room:  room.Info(),
		Tally: aggregate.Poll(room.Learners()),
	})
}

// Poker handles GET /{code}/poker
func (h *ResultsHandler) Poker(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(r.PathValue("code"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PokerResponse{
		Room:  room.Info(),
		Poker: aggregate.Poker(room.Learners()),
	})
}
