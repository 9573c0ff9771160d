// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level (method, path, remote) and completion
(method, path, status, duration_ms).

# Rate Limiting

Status updates are limited per client IP with a token bucket:

	limiter := middleware.NewRateLimiter(cfg.UpdateRate, cfg.UpdateBurst, cfg.TrustProxy)
	go limiter.StartCleanup(5 * time.Minute)
	defer limiter.Stop()
	mux.HandleFunc("POST /{code}/update", middleware.WithLogging(limiter.Limit(h.Update)))

Rejected requests get 429 with a Retry-After header. Clients idle for an
hour are forgotten by the cleanup loop.

Clients are keyed by the connection's peer address. Pass trustProxy (the
-trust-proxy flag) only when a reverse proxy sets X-Forwarded-For or
X-Real-IP; otherwise a client could rotate those headers to dodge the limit.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with the Content-Type header, and
credentials so the session cookie is sent.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var upd models.LearnerUpdate
	if err := middleware.ParseJSONBody(r, &upd); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

The rate limiter uses it only when trustProxy is set, and RemoteIP
otherwise.
*/
package middleware
