package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordCall records a tool call. A missing ID or Timestamp is filled in.
// Write failures are logged and swallowed; history must never fail a call.
func (s *SQLiteStorage) RecordCall(ctx context.Context, rec CallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	ok := 0
	if rec.OK {
		ok = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tool_calls (id, tool_name, args_hash, transport, duration_ns, ok, error, called_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Tool,
		rec.ArgsHash,
		rec.Transport,
		rec.Duration.Nanoseconds(),
		ok,
		nullString(rec.Error),
		rec.Timestamp.UnixNano(),
	)
	if err != nil {
		s.logger.Warn("Failed to record tool call", "tool", rec.Tool, "err", err)
	}

	return nil
}

// RecentCalls returns up to limit records, newest first.
func (s *SQLiteStorage) RecentCalls(ctx context.Context, limit int) ([]CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil || limit <= 0 {
		return []CallRecord{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tool_name, args_hash, transport, duration_ns, ok, error, called_at
		FROM tool_calls
		ORDER BY called_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query call history: %w", err)
	}
	defer rows.Close()

	records := []CallRecord{}
	for rows.Next() {
		var (
			rec        CallRecord
			durationNS int64
			ok         int
			errMsg     sql.NullString
			calledAt   int64
		)
		if err := rows.Scan(&rec.ID, &rec.Tool, &rec.ArgsHash, &rec.Transport, &durationNS, &ok, &errMsg, &calledAt); err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}
		rec.Duration = time.Duration(durationNS)
		rec.OK = ok == 1
		rec.Error = errMsg.String
		rec.Timestamp = time.Unix(0, calledAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ToolCounts aggregates calls per tool since the given time, most used
// first. A zero since covers the whole history.
func (s *SQLiteStorage) ToolCounts(ctx context.Context, since time.Time) ([]ToolCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return []ToolCount{}, nil
	}

	var cutoff int64
	if !since.IsZero() {
		cutoff = since.UnixNano()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tool_name, COUNT(*), SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END), CAST(AVG(duration_ns) AS INTEGER)
		FROM tool_calls
		WHERE called_at >= ?
		GROUP BY tool_name
		ORDER BY COUNT(*) DESC, tool_name ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate call history: %w", err)
	}
	defer rows.Close()

	counts := []ToolCount{}
	for rows.Next() {
		var (
			tc    ToolCount
			avgNS int64
		)
		if err := rows.Scan(&tc.Tool, &tc.Calls, &tc.Failures, &avgNS); err != nil {
			return nil, fmt.Errorf("failed to scan tool count: %w", err)
		}
		tc.AvgDuration = time.Duration(avgNS)
		counts = append(counts, tc)
	}

	return counts, rows.Err()
}

// Cleanup removes records older than retention and vacuums the database.
func (s *SQLiteStorage) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return 0, nil
	}

	cutoff := time.Now().Add(-retention).UnixNano()

	res, err := s.db.ExecContext(ctx, "DELETE FROM tool_calls WHERE called_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune call history: %w", err)
	}
	removed, _ := res.RowsAffected()

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		s.logger.Warn("Failed to vacuum history database", "err", err)
	}

	return removed, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
