// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidCookie = errors.New("invalid voter cookie")

// NewID returns a time-ordered UUIDv7 string for ballots, questions and votes
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source does
		slog.Warn("uuid v7 failed, falling back to v4", "error", err)
		return uuid.NewString()
	}
	return id.String()
}

// VoterCookieName is the cookie holding the voter id for a ballot
func VoterCookieName(ballotID string) string {
	return "vote_" + ballotID
}

// SignVoterID binds a voter id to a ballot with an HMAC.
// The result has the form "<voterID>.<signature>".
func SignVoterID(ballotID, voterID, secret string) string {
	return voterID + "." + signature(ballotID, voterID, secret)
}

// VerifyVoterCookie returns the voter id from a signed cookie value
func VerifyVoterCookie(ballotID, value, secret string) (string, error) {
	voterID, sig, ok := strings.Cut(value, ".")
	if !ok || voterID == "" {
		return "", ErrInvalidCookie
	}
	expected := signature(ballotID, voterID, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidCookie
	}
	return voterID, nil
}

func signature(ballotID, voterID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(ballotID))
	h.Write([]byte{0})
	h.Write([]byte(voterID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner cookies
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// VoterID returns the voter id stored in the ballot's cookie, or assigns a
// new one and sets the cookie when it is missing or has been tampered with.
func VoterID(w http.ResponseWriter, r *http.Request, ballotID, secret string) string {
	name := VoterCookieName(ballotID)
	if c, err := r.Cookie(name); err == nil {
		if voterID, err := VerifyVoterCookie(ballotID, c.Value, secret); err == nil {
			return voterID
		}
		slog.Warn("replacing invalid voter cookie", "ballot_id", ballotID)
	}

	voterID := NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    SignVoterID(ballotID, voterID, secret),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return voterID
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
