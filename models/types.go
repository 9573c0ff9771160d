package models

import "time"

// Field length caps, in characters
const (
	MaxNameLength   = 15
	MaxAnswerLength = 20
)

// Join roles
const (
	RoleLearner = "learner"
	RoleTutor   = "tutor"
)

// Request types

// LearnerUpdate is a partial update. Nil fields are left untouched.
type LearnerUpdate struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
	Answer *string `json:"answer,omitempty"`
}

// Response types

type LearnerPageResponse struct {
	Room      RoomInfo `json:"room"`
	Learner   Learner  `json:"learner"`
	LearnerID string   `json:"learner_id"`
}

type TutorPageResponse struct {
	Room     RoomInfo      `json:"room"`
	Learners []RosterEntry `json:"learners"`
	BaseURL  string        `json:"base_url"`
}

type HandQueueResponse struct {
	Room  RoomInfo      `json:"room"`
	Hands []RosterEntry `json:"hands"`
}

type UpdateResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Learner   Learner   `json:"learner"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type PollResponse struct {
	Room  RoomInfo  `json:"room"`
	Tally PollTally `json:"tally"`
}

type PokerResponse struct {
	Room  RoomInfo  `json:"room"`
	Poker PokerView `json:"poker"`
}

type RoomsResponse struct {
	Rooms []RoomSummary `json:"rooms"`
}

// Domain types

type Learner struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Status            Status    `json:"status"`
	Answer            string    `json:"answer"`
	HandUpRank        int       `json:"hand_up_rank"`
	IsActive          bool      `json:"is_active"`
	JoinedAt          time.Time `json:"joined_at"`
	LastCommunication time.Time `json:"last_communication"`
}

type RoomInfo struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RoomSummary struct {
	Code               string    `json:"code"`
	Description        string    `json:"description"`
	ActiveLearnerCount int       `json:"active_learner_count"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedAgo         string    `json:"created_ago,omitempty"`
}

// RoomDump is a point-in-time copy of a room and every learner record in it
type RoomDump struct {
	Room     RoomInfo
	Learners []Learner
}

// Aggregation types

type RosterEntry struct {
	Learner
	Glyph string `json:"glyph"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type PollTally struct {
	Counts   map[string]int `json:"counts"`
	MaxCount int            `json:"max_count"`
	Ordered  []StatusCount  `json:"ordered"`
}

type PokerStats struct {
	Min     Estimate   `json:"min"`
	Max     Estimate   `json:"max"`
	Count   int        `json:"count"`
	Average float64    `json:"average"`
	Values  []Estimate `json:"values"`
}

type LearnerEstimate struct {
	LearnerID string `json:"learner_id"`
	Name      string `json:"name"`
	Estimate  string `json:"estimate"`
}

type PokerView struct {
	Stats          *PokerStats       `json:"stats,omitempty"`
	ActiveCount    int               `json:"active_count"`
	Consensus      int               `json:"consensus"`
	ConsensusVotes int               `json:"consensus_votes"`
	Estimates      []LearnerEstimate `json:"estimates"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
