// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coopernurse/vote-web/models"
)

var ErrNotFound = errors.New("not found")

// VoteMeta is stored alongside a vote but never returned with it
type VoteMeta struct {
	IPHash    string
	UserAgent string
}

// PutBallot inserts or replaces a ballot, stamping UpdatedAt
func PutBallot(ctx context.Context, conn *sql.DB, ballot *models.Ballot) error {
	now := time.Now().UTC()
	ballot.UpdatedAt = now

	payload, err := json.Marshal(ballot)
	if err != nil {
		return fmt.Errorf("failed to encode ballot: %w", err)
	}

	_, err = conn.ExecContext(ctx, `
		INSERT INTO ballot (id, name, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at
	`, ballot.ID, ballot.Name, string(payload), now.UnixNano(), now.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save ballot: %w", err)
	}

	return nil
}

// GetBallot returns ErrNotFound when no ballot has the id
func GetBallot(ctx context.Context, conn *sql.DB, id string) (models.Ballot, error) {
	var payload string
	err := conn.QueryRowContext(ctx, `
		SELECT payload FROM ballot WHERE id = $1
	`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ballot{}, ErrNotFound
	}
	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to query ballot: %w", err)
	}

	var ballot models.Ballot
	if err := json.Unmarshal([]byte(payload), &ballot); err != nil {
		return models.Ballot{}, fmt.Errorf("failed to decode ballot %s: %w", id, err)
	}
	return ballot, nil
}

// PutVote inserts a vote or replaces an earlier vote with the same id.
// A replaced vote keeps its original position in VotesForBallot.
func PutVote(ctx context.Context, conn *sql.DB, vote models.Vote, meta VoteMeta) (updated bool, err error) {
	payload, err := json.Marshal(vote)
	if err != nil {
		return false, fmt.Errorf("failed to encode vote: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote WHERE ballot_id = $1 AND id = $2)
	`, vote.BallotID, vote.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}

	// A concurrent first vote with the same id turns into an update instead
	// of a primary key violation. created_at is left alone on conflict.
	now := time.Now().UTC().UnixNano()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, ballot_id, payload, ip_hash, user_agent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ballot_id, id) DO UPDATE
		SET payload = excluded.payload, ip_hash = excluded.ip_hash,
			user_agent = excluded.user_agent, updated_at = excluded.updated_at
	`, vote.ID, vote.BallotID, string(payload), meta.IPHash, meta.UserAgent, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to save vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit vote: %w", err)
	}
	return exists, nil
}

// GetVote returns ErrNotFound when the voter has not voted on the ballot
func GetVote(ctx context.Context, conn *sql.DB, ballotID, voteID string) (models.Vote, error) {
	var payload string
	err := conn.QueryRowContext(ctx, `
		SELECT payload FROM vote WHERE ballot_id = $1 AND id = $2
	`, ballotID, voteID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}

	var vote models.Vote
	if err := json.Unmarshal([]byte(payload), &vote); err != nil {
		return models.Vote{}, fmt.Errorf("failed to decode vote %s: %w", voteID, err)
	}
	return vote, nil
}

// VotesForBallot returns votes in the order they were first cast
func VotesForBallot(ctx context.Context, conn *sql.DB, ballotID string) ([]models.Vote, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT payload FROM vote
		WHERE ballot_id = $1
		ORDER BY created_at, id
	`, ballotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		var vote models.Vote
		if err := json.Unmarshal([]byte(payload), &vote); err != nil {
			return nil, fmt.Errorf("failed to decode vote: %w", err)
		}
		votes = append(votes, vote)
	}

	return votes, rows.Err()
}

func CountVotes(ctx context.Context, conn *sql.DB, ballotID string) (int, error) {
	var count int
	err := conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE ballot_id = $1
	`, ballotID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
