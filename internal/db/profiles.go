package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// GetProfile loads the accumulated record for a user. Returns (nil, nil)
// when the user has no profile yet.
func (s *Store) GetProfile(ctx context.Context, userID string) (*types.ProfileRecord, error) {
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %s: %w", userID, err)
	}

	record, err := decodeStoredRecord(content)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile for %s: %w", userID, err)
	}
	return record, nil
}

// decodeStoredRecord turns a stored record column into a profile. A seeded
// placeholder row carries JSON null, which means no profile exists yet.
func decodeStoredRecord(content []byte) (*types.ProfileRecord, error) {
	if len(content) == 0 || string(content) == "null" {
		return nil, nil
	}
	var record types.ProfileRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertProfile stores the record for a user, replacing any previous one.
func (s *Store) UpsertProfile(ctx context.Context, userID string, record types.ProfileRecord) error {
	return s.upsertProfile(ctx, s.pool, userID, record)
}

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// upsertProfile runs against either the pool or an open transaction.
func (s *Store) upsertProfile(ctx context.Context, q querier, userID string, record types.ProfileRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = q.Exec(ctx,
		`INSERT INTO profiles (user_id, record, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET record = $2, updated_at = NOW()`,
		userID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for %s: %w", userID, err)
	}
	return nil
}

// AppendHistory appends one merge history entry. Entries are write-once;
// there is no update path.
func (s *Store) AppendHistory(ctx context.Context, entry *types.MergeHistoryEntry) error {
	return s.appendHistory(ctx, s.pool, entry)
}

func (s *Store) appendHistory(ctx context.Context, q querier, entry *types.MergeHistoryEntry) error {
	lines, err := json.Marshal(entry.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal history lines: %w", err)
	}

	_, err = q.Exec(ctx,
		`INSERT INTO merge_history (id, user_id, source, lines, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, entry.Source, lines, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry %s: %w", entry.ID, err)
	}
	return nil
}

// GetHistory returns the merge history for a user, most recent first.
func (s *Store) GetHistory(ctx context.Context, userID string, limit int) ([]types.MergeHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, source, lines, created_at
		 FROM merge_history WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []types.MergeHistoryEntry
	for rows.Next() {
		var entry types.MergeHistoryEntry
		var lines []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Source, &lines, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(lines, &entry.Lines); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history lines: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpdateProfile loads the current record under a row lock, applies fn, and
// persists the result together with its history entry in one transaction.
// The row lock serializes concurrent updates for the same user, which is the
// concurrency contract the merge engine relies on.
func (s *Store) UpdateProfile(
	ctx context.Context,
	userID string,
	fn func(existing *types.ProfileRecord) (types.ProfileRecord, *types.MergeHistoryEntry, error),
) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// FOR UPDATE on a missing row locks nothing, so two first-time updates
	// could both see no profile and the later commit would clobber the
	// earlier one. Seed the row first so the lock always has a row to take.
	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, record, updated_at)
		 VALUES ($1, 'null'::jsonb, NOW())
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to seed profile row for %s: %w", userID, err)
	}

	var existing *types.ProfileRecord
	var content []byte
	err = tx.QueryRow(ctx,
		`SELECT record FROM profiles WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&content)
	if err != nil {
		return fmt.Errorf("failed to lock profile for %s: %w", userID, err)
	}
	existing, err = decodeStoredRecord(content)
	if err != nil {
		return fmt.Errorf("failed to unmarshal profile for %s: %w", userID, err)
	}

	merged, entry, err := fn(existing)
	if err != nil {
		return err
	}

	if err := s.upsertProfile(ctx, tx, userID, merged); err != nil {
		return err
	}
	if entry != nil {
		if err := s.appendHistory(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}

	s.logger.Debug("profile updated",
		zap.String("user_id", userID),
		zap.Int("history_lines", historyLineCount(entry)),
	)
	return nil
}

func historyLineCount(entry *types.MergeHistoryEntry) int {
	if entry == nil {
		return 0
	}
	return len(entry.Lines)
}
