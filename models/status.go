// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Named status tokens
const (
	StatusTick     = "tick"
	StatusCross    = "cross"
	StatusCoffee   = "coffee"
	StatusAway     = "away"
	StatusSmile    = "smile"
	StatusHandUp   = "hand-up"
	StatusHappy    = "happy"
	StatusQuestion = "?"
)

// EstimateCards is the planning poker deck, in ascending order.
var EstimateCards = []string{"0", "0.5", "1", "2", "3", "5", "8", "13", "20"}

var namedStatuses = map[string]bool{
	StatusTick:     true,
	StatusCross:    true,
	StatusCoffee:   true,
	StatusAway:     true,
	StatusSmile:    true,
	StatusHandUp:   true,
	StatusHappy:    true,
	StatusQuestion: true,
}

var estimateValues = map[string]float64{
	"0":   0,
	"0.5": 0.5,
	"1":   1,
	"2":   2,
	"3":   3,
	"5":   5,
	"8":   8,
	"13":  13,
	"20":  20,
}

// StatusKind tags how a status token was classified when it was stored.
type StatusKind int

const (
	StatusEmpty StatusKind = iota
	StatusNamed
	StatusEstimate
	StatusOther
)

func (k StatusKind) String() string {
	switch k {
	case StatusEmpty:
		return "empty"
	case StatusNamed:
		return "named"
	case StatusEstimate:
		return "estimate"
	default:
		return "other"
	}
}

// Status is a learner's current reaction token, classified once at update
// time so read paths never re-parse it.
//
// Numeric is true when Raw parses as a finite number, which holds for every
// estimate card and for some Other tokens (e.g. "4" or "1.5").
type Status struct {
	Kind    StatusKind
	Raw     string
	Value   float64
	Numeric bool
}

// ParseStatus classifies a raw status token. It never fails: unknown tokens
// are kept verbatim as StatusOther.
func ParseStatus(raw string) Status {
	s := Status{Raw: raw}
	if raw == "" {
		s.Kind = StatusEmpty
		return s
	}

	if v, ok := estimateValues[raw]; ok {
		s.Kind = StatusEstimate
		s.Value = v
		s.Numeric = true
		return s
	}

	if namedStatuses[raw] {
		s.Kind = StatusNamed
		return s
	}

	s.Kind = StatusOther
	if v, ok := parseNumber(raw); ok {
		s.Value = v
		s.Numeric = true
	}
	return s
}

// parseNumber reads a finite decimal number. Surrounding whitespace is
// ignored and single underscores may separate digits; hex, inf and nan
// are not numbers here.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "xX") {
		return 0, false
	}

	if strings.Contains(s, "_") {
		for i := 0; i < len(s); i++ {
			if s[i] != '_' {
				continue
			}
			if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
				return 0, false
			}
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsEmpty reports whether the learner has no status
func (s Status) IsEmpty() bool {
	return s.Kind == StatusEmpty
}

// Is reports whether the status is exactly the given token
func (s Status) Is(token string) bool {
	return s.Raw == token
}

func (s Status) String() string {
	return s.Raw
}

// MarshalJSON encodes the status as its raw token
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Raw)
}

// UnmarshalJSON decodes a raw token and reclassifies it
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// Estimate is a planning poker value. It renders without a fractional part
// when it is whole (5, not 5.0).
type Estimate float64

func (e Estimate) String() string {
	return strconv.FormatFloat(float64(e), 'f', -1, 64)
}

// MarshalJSON keeps whole estimates as JSON integers
func (e Estimate) MarshalJSON() ([]byte, error) {
	return []byte(e.String()), nil
}
