// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Flags fall back to environment variables, then to defaults:

	-p                PORT             8080
	-base-url         BASE_URL         derived from the request
	-session-key      SESSION_KEY      required
	-max-rooms        MAX_ROOMS        1000
	-max-learners     MAX_LEARNERS     100
	-update-rate      UPDATE_RATE      5 (per second, per client)
	-update-burst     UPDATE_BURST     10
	-trust-proxy      TRUST_PROXY      false (rate limit by forwarding headers)
	-debug            DEBUG            false
	-multi-user       MULTI_USER_MODE  false (forced on by debug)
	-d                DATABASE_URL     empty, export disabled
	-t                DATABASE_TYPE    sqlite (or postgres)
	-export-interval  EXPORT_INTERVAL  30s

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - SESSION_KEY is missing
  - a numeric, boolean or duration variable does not parse
  - a limit is not positive
  - DATABASE_TYPE is neither sqlite nor postgres
*/
package cliparse
