// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/handlers"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/store"
)

// NewRouter registers every endpoint. updateLimiter guards status updates;
// starting and stopping its cleanup loop is left to the caller.
func NewRouter(st *store.Store, ids *auth.Issuer, updateLimiter *middleware.RateLimiter, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	roomHandler := handlers.NewRoomHandler(st, ids, cfg)
	statusHandler := handlers.NewStatusHandler(st, ids)
	resultsHandler := handlers.NewResultsHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Rooms
	mux.HandleFunc("GET /rooms", middleware.WithLogging(roomHandler.ListRooms))
	mux.HandleFunc("POST /join", middleware.WithLogging(roomHandler.Join))
	mux.HandleFunc("GET /{code}", middleware.WithLogging(roomHandler.LearnerPage))
	mux.HandleFunc("GET /{code}/tutor", middleware.WithLogging(roomHandler.TutorPage))

	// Learner updates and tutor actions
	mux.HandleFunc("POST /{code}/update", middleware.WithLogging(updateLimiter.Limit(statusHandler.Update)))
	mux.HandleFunc("POST /{code}/clear-status", middleware.WithLogging(statusHandler.ClearStatus))
	mux.HandleFunc("POST /{code}/reset-learners", middleware.WithLogging(statusHandler.ResetLearners))

	// Aggregated views
	mux.HandleFunc("GET /{code}/hands", middleware.WithLogging(resultsHandler.Hands))
	mux.HandleFunc("GET /{code}/poll", middleware.WithLogging(resultsHandler.Poll))
	mux.HandleFunc("GET /{code}/poker", middleware.WithLogging(resultsHandler.Poker))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classpulse API v1"))
	})

	return mux
}
