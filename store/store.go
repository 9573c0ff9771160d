// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/classpulse/models"
)

// Default ceilings used when Options leaves a field at zero
const (
	DefaultMaxRooms           = 1000
	DefaultMaxLearnersPerRoom = 100
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9-]{2,10}$`)

type Options struct {
	MaxRooms           int
	MaxLearnersPerRoom int
}

// Store is the in-memory registry of rooms. The room map is guarded by mu;
// each Room guards its own learners.
type Store struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	maxRooms    int
	maxLearners int
	now         func() time.Time
}

// NewStore creates an empty registry
func NewStore(opts Options) *Store {
	if opts.MaxRooms <= 0 {
		opts.MaxRooms = DefaultMaxRooms
	}
	if opts.MaxLearnersPerRoom <= 0 {
		opts.MaxLearnersPerRoom = DefaultMaxLearnersPerRoom
	}

	return &Store{
		rooms:       make(map[string]*Room),
		maxRooms:    opts.MaxRooms,
		maxLearners: opts.MaxLearnersPerRoom,
		now:         time.Now,
	}
}

// ValidateCode checks a room code and returns its canonical lowercase form
func ValidateCode(code string) (string, error) {
	if !codePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return strings.ToLower(code), nil
}

// EnsureRoom returns the room for code, creating it on first use.
// Creation fails with ErrCapacityExceeded once the registry is full, but an
// existing code is always returned.
func (s *Store) EnsureRoom(code string) (*Room, error) {
	code, err := ValidateCode(code)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	room, exists := s.rooms[code]
	s.mu.RUnlock()
	if exists {
		return room, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it between the two locks
	if room, exists := s.rooms[code]; exists {
		return room, nil
	}

	if len(s.rooms) >= s.maxRooms {
		slog.Warn("room capacity reached", "room", code, "max_rooms", s.maxRooms)
		return nil, fmt.Errorf("%w: %d rooms", ErrCapacityExceeded, s.maxRooms)
	}

	room = newRoom(code, s.maxLearners, s.now)
	s.rooms[code] = room

	slog.Info("room created", "room", code, "rooms", len(s.rooms))

	return room, nil
}

// Room looks up an existing room without creating it
func (s *Store) Room(code string) (*Room, error) {
	code, err := ValidateCode(code)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	room, exists := s.rooms[code]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, code)
	}
	return room, nil
}

// RoomCount returns the number of rooms in the registry
func (s *Store) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// ListRoomsSummary lists every room, oldest first
func (s *Store) ListRoomsSummary() []models.RoomSummary {
	rooms := s.sortedRooms()

	summaries := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, models.RoomSummary{
			Code:               room.Code,
			Description:        room.Description,
			ActiveLearnerCount: room.ActiveCount(),
			CreatedAt:          room.CreatedAt,
		})
	}

	return summaries
}

// Dump copies every room with all of its learner records. Each room is
// copied under its own read lock.
func (s *Store) Dump() []models.RoomDump {
	rooms := s.sortedRooms()

	dumps := make([]models.RoomDump, 0, len(rooms))
	for _, room := range rooms {
		dumps = append(dumps, models.RoomDump{
			Room:     room.Info(),
			Learners: room.Learners(),
		})
	}

	return dumps
}

func (s *Store) sortedRooms() []*Room {
	s.mu.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	s.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].Code < rooms[j].Code
	})

	return rooms
}
