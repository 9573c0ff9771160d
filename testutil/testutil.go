// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/store"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		SessionKey:   "test-session-key",
		MaxRooms:     10,
		MaxLearners:  5,
		DatabaseType: "sqlite",
		UpdateRate:   1000,
		UpdateBurst:  1000,
	}
}

// NewTestStore creates an empty store sized by cfg
func NewTestStore(cfg cliparse.Config) *store.Store {
	return store.NewStore(store.Options{
		MaxRooms:           cfg.MaxRooms,
		MaxLearnersPerRoom: cfg.MaxLearners,
	})
}

// NewTestIssuer creates an identity issuer using cfg's session key
func NewTestIssuer(t *testing.T, cfg cliparse.Config) *auth.Issuer {
	t.Helper()

	ids, err := auth.NewIssuer(cfg.SessionKey, cfg.MultiUserMode)
	if err != nil {
		t.Fatalf("Failed to create issuer: %v", err)
	}
	return ids
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithCookies copies the cookies set on a previous response onto req,
// the way a browser would on its next request
func WithCookies(req *http.Request, prev *httptest.ResponseRecorder) *http.Request {
	for _, c := range prev.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
