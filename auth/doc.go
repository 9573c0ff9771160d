// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues the opaque per-browser identity learners are tracked by.

# Learner IDs

Learner ids are random UUIDs:

	issuer, err := auth.NewIssuer(cfg.SessionKey, cfg.MultiUserMode)
	id, err := issuer.LearnerID(w, r)

The first call for a browser mints an id and sets the classpulse_session
cookie; later calls read the id back. The cookie is signed (HMAC-SHA256 with
a key derived from the session secret) but not encrypted, and expires after
30 days. A cookie that fails verification is ignored and a new id issued.

# Multi-User Mode

For testing several learners from one machine, multi-user mode appends the
issue time to each new id:

	3f0c8a52-....-9d1e-10:42:07

The id is opaque to the rest of the system either way; the store only uses
it as a map key.
*/
package auth
