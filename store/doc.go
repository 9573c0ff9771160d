// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds rooms and learners in memory.

# Ownership

There is no package-level state. main creates one Store and passes it to
every handler:

	st := store.NewStore(store.Options{MaxRooms: 1000, MaxLearnersPerRoom: 100})

State lives for the lifetime of the process. Rooms are never removed and
learner records are never deleted; "removal" is DeactivateAllLearners.

# Rooms

	room, err := st.EnsureRoom("Maths-1") // canonical code "maths-1"
	room, err := st.Room("maths-1")       // lookup only, ErrRoomNotFound

Codes are 2-10 characters from [A-Za-z0-9-] and are folded to lowercase.
EnsureRoom is idempotent. Once MaxRooms rooms exist, new codes fail with
ErrCapacityExceeded while existing codes keep working.

# Learners and Updates

	learner, err := room.EnsureLearner(id)
	learner, at, err := room.ApplyUpdate(id, models.LearnerUpdate{Status: &s})

Both create unknown ids subject to MaxLearnersPerRoom active learners
(ErrRoomFull). Known ids always succeed, so an inactive learner can come back
even when the room is at its ceiling. ApplyUpdate reactivates the learner,
truncates name to 15 and answer to 20 characters, and assigns the hand-up
rank: one more than the highest rank held by any other raised hand, so a
re-raised hand always goes to the back of the current queue.

# Concurrency

The Store lock guards the room map. Each Room has its own RWMutex; every
mutation of a room holds its write lock from the capacity check to the last
field write. Readers use Learners, which returns copies, and aggregate them
without holding any lock.

# Errors

	ErrInvalidCode      malformed room code
	ErrCapacityExceeded room ceiling reached
	ErrRoomFull         learner ceiling reached
	ErrRoomNotFound     room was never created
	ErrMissingLearnerID empty learner id

Errors are wrapped with context; match them with errors.Is.
*/
package store
