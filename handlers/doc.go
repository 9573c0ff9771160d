// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the classpulse API.

# Handler Types

Each handler is a struct holding the room store and config:

  - RoomHandler: joining, learner and tutor pages, room listing
  - StatusHandler: learner updates and tutor-wide actions
  - ResultsHandler: hand queue, poll tally and planning poker views

Handlers are created via constructor functions:

	roomHandler := handlers.NewRoomHandler(st, ids, cfg)

# Learner Flow

	POST /join             → Join (303 to the learner or tutor page)
	GET /{code}            → LearnerPage (creates room and learner)
	POST /{code}/update    → Update (name, status, answer)

Learners are identified by the session cookie issued by package auth.
The learner and tutor pages refuse any query string with 403.

# Tutor Flow

	GET /{code}/tutor            → TutorPage (roster in join order)
	GET /{code}/hands            → Hands (raised hands in queue order)
	GET /{code}/poll             → Poll
	GET /{code}/poker            → Poker
	POST /{code}/clear-status    → ClearStatus
	POST /{code}/reset-learners  → ResetLearners

Only the two page handlers create rooms; everything else answers 404 for
an unknown room.

# Errors

Store errors map to status codes in one place:

	invalid room code      400
	missing learner id     400
	room not found         404
	room full              409
	room limit reached     503
*/
package handlers
