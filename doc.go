// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the classpulse API server.

classpulse lets a tutor see how a room of learners is doing at a glance.
Learners open a room by its short code and post a status (tick, cross,
coffee, a raised hand, a planning poker card), a name and a short answer.
The tutor sees the roster, the queue of raised hands, a tally of statuses
and planning poker statistics.

All state is held in memory and lost on restart.

# Starting the Server

The server requires a session secret for signing learner cookies:

	SESSION_KEY=change-me go run .

Or with flags:

	go run . -p 8080 -session-key change-me

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - SESSION_KEY (-session-key): Secret for the learner session cookie

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - MAX_ROOMS, MAX_LEARNERS: Room and per-room learner limits
  - DEBUG (-debug): Debug logging, implies multi-user mode
  - DATABASE_URL (-d), DATABASE_TYPE (-t): Periodic export of room state
    to SQLite or PostgreSQL

See package cliparse for the full list.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: Rooms and learners, the only mutable state
  - aggregate: Roster, hand queue, poll tally and planning poker views
  - handlers: HTTP request handlers (rooms, status updates, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - models: Domain, request and response types
  - auth: Learner identity cookie
  - db: Optional state export
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
