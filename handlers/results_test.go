// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/testutil"
)

// seedRoom puts one learner per status into room1
func seedRoom(t *testing.T, env *testEnv, statuses ...string) []*httptest.ResponseRecorder {
	t.Helper()

	sessions := make([]*httptest.ResponseRecorder, 0, len(statuses))
	for _, status := range statuses {
		session := env.visit("room1", nil)
		testutil.AssertStatus(t, session, http.StatusOK)
		if status != "" {
			env.update("room1", models.LearnerUpdate{Status: strPtr(status)}, session)
		}
		sessions = append(sessions, session)
	}
	return sessions
}

func getResult(env *testEnv, handler http.HandlerFunc, code, view string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/"+code+"/"+view, nil)
	req.SetPathValue("code", code)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHands(t *testing.T) {
	env := newTestEnv(t, testutil.GetTestConfig())
	sessions := seedRoom(t, env, "tick", "", "")

	// Raise hands in reverse join order
	env.update("room1", models.LearnerUpdate{Name: strPtr("Carol"), Status: strPtr("hand-up")}, sessions[2])
	env.update("room1", models.LearnerUpdate{Name: strPtr("Bob"), Status: strPtr("hand-up")}, sessions[1])

	w := getResult(env, env.results.Hands, "room1", "hands")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HandQueueResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Hands) != 2 {
		t.Fatalf("Expected 2 raised hands, got %d", len(resp.Hands))
	}
	if resp.Hands[0].Name != "Carol" || resp.Hands[1].Name != "Bob" {
		t.Errorf("Expected queue Carol, Bob; got %s, %s", resp.Hands[0].Name, resp.Hands[1].Name)
	}
	if resp.Hands[0].HandUpRank != 1 || resp.Hands[1].HandUpRank != 2 {
		t.Errorf("Expected ranks 1, 2; got %d, %d", resp.Hands[0].HandUpRank, resp.Hands[1].HandUpRank)
	}
}

func TestHands_EmptyQueueIsArray(t *testing.T) {
	env := newTestEnv(t, testutil.GetTestConfig())
	seedRoom(t, env, "tick")

	w := getResult(env, env.results.Hands, "room1", "hands")

	var raw map[string]json.RawMessage
	testutil.AssertJSON(t, w, &raw)
	if string(raw["hands"]) != "[]" {
		t.Errorf("Expected empty array, got %s", raw["hands"])
	}
}

func TestPoll(t *testing.T) {
	env := newTestEnv(t, testutil.GetTestConfig())
	seedRoom(t, env, "13", "2", "away", "2", "")

	w := getResult(env, env.results.Poll, "room1", "poll")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PollResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Room.Code != "room1" {
		t.Errorf("Expected room1, got %s", resp.Room.Code)
	}
	if resp.Tally.MaxCount != 2 {
		t.Errorf("Expected max count 2, got %d", resp.Tally.MaxCount)
	}

	expected := []models.StatusCount{{Status: "2", Count: 2}, {Status: "13", Count: 1}, {Status: "away", Count: 1}}
	if len(resp.Tally.Ordered) != len(expected) {
		t.Fatalf("Expected %d entries, got %v", len(expected), resp.Tally.Ordered)
	}
	for i, want := range expected {
		if resp.Tally.Ordered[i] != want {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want, resp.Tally.Ordered[i])
		}
	}
}

func TestPoker(t *testing.T) {
	env := newTestEnv(t, testutil.GetTestConfig())
	seedRoom(t, env, "2", "2", "3", "coffee", "")

	w := getResult(env, env.results.Poker, "room1", "poker")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PokerResponse
	testutil.AssertJSON(t, w, &resp)

	poker := resp.Poker
	if poker.Stats == nil {
		t.Fatal("Expected stats")
	}
	if poker.Stats.Count != 3 || poker.Stats.Min != 2 || poker.Stats.Max != 3 {
		t.Errorf("Unexpected stats: %+v", poker.Stats)
	}
	if poker.Stats.Average != 2.3 {
		t.Errorf("Expected average 2.3, got %v", poker.Stats.Average)
	}
	if poker.Consensus != 67 || poker.ConsensusVotes != 2 {
		t.Errorf("Expected consensus 67%% with 2 votes, got %d%% with %d", poker.Consensus, poker.ConsensusVotes)
	}
	if poker.ActiveCount != 5 {
		t.Errorf("Expected 5 active learners, got %d", poker.ActiveCount)
	}

	shown := map[string]int{}
	for _, e := range poker.Estimates {
		shown[e.Estimate]++
	}
	if shown["coffee"] != 1 || shown[""] != 1 || shown["2"] != 2 {
		t.Errorf("Unexpected displayed estimates: %v", shown)
	}
}

func TestPoker_NoEstimates(t *testing.T) {
	env := newTestEnv(t, testutil.GetTestConfig())
	seedRoom(t, env, "tick", "away")

	w := getResult(env, env.results.Poker, "room1", "poker")

	var resp models.PokerResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Poker.Stats != nil {
		t.Errorf("Expected no stats, got %+v", resp.Poker.Stats)
	}
	if resp.Poker.Consensus != 0 || resp.Poker.ActiveCount != 2 {
		t.Errorf("Unexpected poker view: %+v", resp.Poker)
	}
}

func TestResults_NotFound(t *testing.T) {
	env := newTestEnv(t, testutil.GetTestConfig())

	views := map[string]http.HandlerFunc{
		"hands": env.results.Hands,
		"poll":  env.results.Poll,
		"poker": env.results.Poker,
	}

	for name, handler := range views {
		t.Run(name, func(t *testing.T) {
			testutil.AssertStatus(t, getResult(env, handler, "ghost", name), http.StatusNotFound)
			testutil.AssertStatus(t, getResult(env, handler, "!", name), http.StatusBadRequest)
		})
	}
}
