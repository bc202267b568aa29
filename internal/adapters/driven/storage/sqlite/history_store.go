package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Append records an edit.
func (s *historyStore) Append(ctx context.Context, rec domain.EditRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO edit_history (id, point_id, file_name, action, content_length, outcome, message, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.PointID.String(), rec.FileName, rec.Action.String(), rec.ContentLength,
		string(rec.Outcome), rec.Message, rec.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving edit record: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.EditRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, point_id, file_name, action, content_length, outcome, message, submitted_at
		FROM edit_history
		ORDER BY submitted_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing edit records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.EditRecord, 0)
	for rows.Next() {
		var (
			rec         domain.EditRecord
			pointID     string
			action      string
			outcome     string
			submittedAt sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &pointID, &rec.FileName, &action, &rec.ContentLength,
			&outcome, &rec.Message, &submittedAt); err != nil {
			return nil, fmt.Errorf("scanning edit record: %w", err)
		}
		rec.PointID = domain.PointID(pointID)
		rec.Action = domain.EditAction(action)
		rec.Outcome = domain.EditOutcome(outcome)
		if submittedAt.Valid {
			rec.SubmittedAt = submittedAt.Time
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edit records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (s *historyStore) Close() error {
	return s.store.Close()
}
