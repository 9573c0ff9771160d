// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/classpulse/models"
)

// Room holds the learners of one room. Code, Description and CreatedAt are
// fixed at creation; everything else is guarded by mu.
//
// All mutations hold the write lock for their full duration, so hand-up rank
// assignment and the active-count check always see every sibling.
type Room struct {
	Code        string
	Description string
	CreatedAt   time.Time

	mu          sync.RWMutex
	learners    map[string]*models.Learner
	maxLearners int
	now         func() time.Time
}

func newRoom(code string, maxLearners int, now func() time.Time) *Room {
	return &Room{
		Code:        code,
		Description: "Room " + strings.ToUpper(code),
		CreatedAt:   now(),
		learners:    make(map[string]*models.Learner),
		maxLearners: maxLearners,
		now:         now,
	}
}

// Info returns the room's immutable metadata
func (r *Room) Info() models.RoomInfo {
	return models.RoomInfo{
		Code:        r.Code,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// EnsureLearner returns the learner with the given id, creating it if this
// is the id's first visit. An existing record is returned as-is, active or
// not; only new ids are subject to the learner ceiling.
func (r *Room) EnsureLearner(id string) (models.Learner, error) {
	if id == "" {
		return models.Learner{}, ErrMissingLearnerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	learner, err := r.ensureLocked(id)
	if err != nil {
		return models.Learner{}, err
	}
	return *learner, nil
}

// ApplyUpdate applies a partial update to a learner, creating the learner
// under the same ceiling as EnsureLearner. Any update reactivates the
// learner. It returns the updated record and the server time of the update.
func (r *Room) ApplyUpdate(id string, upd models.LearnerUpdate) (models.Learner, time.Time, error) {
	if id == "" {
		return models.Learner{}, time.Time{}, ErrMissingLearnerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	learner, err := r.ensureLocked(id)
	if err != nil {
		return models.Learner{}, time.Time{}, err
	}

	now := r.now()
	learner.IsActive = true
	learner.LastCommunication = now

	if upd.Name != nil {
		learner.Name = truncate(*upd.Name, models.MaxNameLength)
	}

	if upd.Status != nil {
		learner.Status = models.ParseStatus(*upd.Status)
		if learner.Status.Is(models.StatusHandUp) {
			learner.HandUpRank = r.maxHandUpRankLocked(id) + 1
		} else {
			learner.HandUpRank = 0
		}
	}

	if upd.Answer != nil {
		learner.Answer = truncate(*upd.Answer, models.MaxAnswerLength)
	}

	return *learner, now, nil
}

// ClearAllStatuses empties every learner's status and lowers every hand.
// Every learner, including inactive ones, becomes active.
func (r *Room) ClearAllStatuses() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, learner := range r.learners {
		learner.Status = models.Status{}
		learner.HandUpRank = 0
		learner.IsActive = true
		learner.LastCommunication = now
	}
}

// DeactivateAllLearners marks every learner inactive. Records are kept so a
// returning learner gets its name and answer back.
func (r *Room) DeactivateAllLearners() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, learner := range r.learners {
		learner.IsActive = false
		learner.LastCommunication = now
	}
}

// Learner returns a copy of one learner record
func (r *Room) Learner(id string) (models.Learner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	learner, exists := r.learners[id]
	if !exists {
		return models.Learner{}, false
	}
	return *learner, true
}

// Learners returns a copy of every learner record, active or not, in join
// order. The copy is safe to read without holding any lock.
func (r *Room) Learners() []models.Learner {
	r.mu.RLock()
	learners := make([]models.Learner, 0, len(r.learners))
	for _, learner := range r.learners {
		learners = append(learners, *learner)
	}
	r.mu.RUnlock()

	sort.Slice(learners, func(i, j int) bool {
		if !learners[i].JoinedAt.Equal(learners[j].JoinedAt) {
			return learners[i].JoinedAt.Before(learners[j].JoinedAt)
		}
		return learners[i].ID < learners[j].ID
	})

	return learners
}

// ActiveCount returns the number of active learners
func (r *Room) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeCountLocked()
}

// ensureLocked finds or creates a learner. Caller must hold the write lock.
func (r *Room) ensureLocked(id string) (*models.Learner, error) {
	if learner, exists := r.learners[id]; exists {
		return learner, nil
	}

	if r.activeCountLocked() >= r.maxLearners {
		return nil, fmt.Errorf("%w: room %q has %d active learners", ErrRoomFull, r.Code, r.maxLearners)
	}

	now := r.now()
	learner := &models.Learner{
		ID:                id,
		IsActive:          true,
		JoinedAt:          now,
		LastCommunication: now,
	}
	r.learners[id] = learner

	return learner, nil
}

func (r *Room) activeCountLocked() int {
	count := 0
	for _, learner := range r.learners {
		if learner.IsActive {
			count++
		}
	}
	return count
}

// maxHandUpRankLocked returns the highest rank among other learners whose
// hand is currently up, or 0 when none are.
func (r *Room) maxHandUpRankLocked(excludeID string) int {
	highest := 0
	for id, learner := range r.learners {
		if id == excludeID || !learner.Status.Is(models.StatusHandUp) {
			continue
		}
		if learner.HandUpRank > highest {
			highest = learner.HandUpRank
		}
	}
	return highest
}

// truncate shortens s to at most limit characters
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
