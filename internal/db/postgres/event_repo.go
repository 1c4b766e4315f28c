package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Agora/internal/core/events"
)

type postgresEventRepo struct {
	db *sql.DB
}

// NewEventRepository creates a new PostgreSQL event journal repository
func NewEventRepository(db *sql.DB) events.Repository {
	return &postgresEventRepo{db: db}
}

// Append inserts one committed event into platform_events
func (r *postgresEventRepo) Append(ctx context.Context, e events.Event) error {
	query := `
		INSERT INTO platform_events (
			seq, event_id, event_type, actor, subject,
			post_id, comment_id, caption, media_ref, content,
			occurred_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11
		)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		e.Seq, e.ID, string(e.Type), e.Actor, e.Subject,
		e.PostID, e.CommentID, e.Caption, e.MediaRef, e.Content,
		e.OccurredAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("event seq %d: %w", e.Seq, events.ErrAlreadyJournaled)
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// List returns the whole journal in commit order
func (r *postgresEventRepo) List(ctx context.Context) ([]events.Event, error) {
	query := `
		SELECT
			seq, event_id, event_type, actor, subject,
			post_id, comment_id, caption, media_ref, content,
			occurred_at
		FROM platform_events
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []events.Event
	for rows.Next() {
		var (
			e         events.Event
			eventType string
		)
		if err := rows.Scan(
			&e.Seq, &e.ID, &eventType, &e.Actor, &e.Subject,
			&e.PostID, &e.CommentID, &e.Caption, &e.MediaRef, &e.Content,
			&e.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Type = events.Type(eventType)
		e.OccurredAt = e.OccurredAt.UTC()
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return result, nil
}
