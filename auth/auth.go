// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// CookieName is the cookie that carries the learner id
const CookieName = "classpulse_session"

const cookieMaxAge = 30 * 24 * 60 * 60

var ErrMissingSecret = errors.New("session secret is required")

type session struct {
	LearnerID string `json:"learner_id"`
}

// Issuer hands out opaque learner ids and remembers them in a signed cookie
type Issuer struct {
	codec     *securecookie.SecureCookie
	multiUser bool
	now       func() time.Time
}

// NewIssuer creates an Issuer whose cookies are signed with a key derived
// from secret. In multi-user mode every new id carries a time suffix so
// several test learners can be told apart at a glance.
func NewIssuer(secret string, multiUser bool) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	hashKey := sha256.Sum256([]byte(secret))
	codec := securecookie.New(hashKey[:], nil)
	codec.MaxAge(cookieMaxAge)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Issuer{
		codec:     codec,
		multiUser: multiUser,
		now:       time.Now,
	}, nil
}

// LearnerID returns the caller's id from the session cookie. A caller
// without a valid cookie gets a fresh id and a cookie to keep it.
func (i *Issuer) LearnerID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := i.Peek(r); ok {
		return id, nil
	}

	id := i.NewID()
	encoded, err := i.codec.Encode(CookieName, session{LearnerID: id})
	if err != nil {
		return "", fmt.Errorf("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id, nil
}

// Peek reads the learner id without issuing one. Tampered or expired
// cookies are treated as absent.
func (i *Issuer) Peek(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	var s session
	if err := i.codec.Decode(CookieName, cookie.Value, &s); err != nil {
		return "", false
	}
	if s.LearnerID == "" {
		return "", false
	}

	return s.LearnerID, true
}

// NewID creates a random learner id
func (i *Issuer) NewID() string {
	id := uuid.NewString()
	if i.multiUser {
		id += "-" + i.now().Format("15:04:05")
	}
	return id
}
