// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the classpulse API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints. The caller
owns the update rate limiter and its cleanup loop:

	limiter := middleware.NewRateLimiter(cfg.UpdateRate, cfg.UpdateBurst, cfg.TrustProxy)
	go limiter.StartCleanup(5 * time.Minute)
	defer limiter.Stop()

	mux := router.NewRouter(st, ids, limiter, cfg)

# Endpoints

Health and discovery:

	GET /health
	GET /        - Version banner
	GET /rooms   - Every room with its active learner count

Joining (form post from the landing page):

	POST /join   - Redirects to /{code} or /{code}/tutor

Learners:

	GET  /{code}          - Learner page, creates room and learner
	POST /{code}/update   - Name, status and answer (rate limited per IP)

Tutors:

	GET  /{code}/tutor           - Roster and share URL
	GET  /{code}/hands           - Raised hands in queue order
	GET  /{code}/poll            - Status tally
	GET  /{code}/poker           - Planning poker statistics
	POST /{code}/clear-status    - Clear every status
	POST /{code}/reset-learners  - Mark every learner inactive

Literal paths win over {code}, so "rooms" and "health" can never be opened
as room codes.

# Handler Initialization

The router creates handler instances with dependency injection:

	roomHandler := handlers.NewRoomHandler(st, ids, cfg)
	statusHandler := handlers.NewStatusHandler(st, ids)
	resultsHandler := handlers.NewResultsHandler(st)

All handlers share the one in-memory store.
*/
package router
