// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

var (
	ErrInvalidCode      = errors.New("invalid room code")
	ErrCapacityExceeded = errors.New("room capacity exceeded")
	ErrRoomFull         = errors.New("room is full")
	ErrRoomNotFound     = errors.New("room not found")
	ErrMissingLearnerID = errors.New("learner id is required")
)
