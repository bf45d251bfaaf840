// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identification and ID generation utilities.

There are no accounts. A voter is whoever holds a ballot's voter cookie.

# Voter Cookies

Each ballot gets its own cookie, named by VoterCookieName:

	vote_<ballotID>

VoterID reads the cookie, or assigns a fresh id and sets the cookie when it
is missing or invalid:

	voterID := auth.VoterID(w, r, ballotID, cfg.CookieSecret)

The cookie value is "<voterID>.<signature>", where the signature is an
HMAC-SHA256 over the ballot id and voter id. A cookie copied from another
ballot or edited by hand fails VerifyVoterCookie with ErrInvalidCookie.

# ID Generation

	id := auth.NewID()

Returns a UUIDv7 string. The ids are time-ordered and never contain "_",
which separates the parts of form answer keys.

# IP Hashing

For privacy-preserving audit of stored votes:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
