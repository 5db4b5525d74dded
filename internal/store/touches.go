// internal/store/touches.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leadops/internal/models"

	"github.com/google/uuid"
)

// TouchStore appends to and reads the outbound_touches log. Rows are never
// updated or deleted after insert.
type TouchStore struct {
	db *sql.DB
}

func NewTouchStore(db *sql.DB) *TouchStore {
	return &TouchStore{db: db}
}

// Insert writes one dispatch-attempt row and fills in the generated ID and
// timestamp on the passed touch.
func (s *TouchStore) Insert(ctx context.Context, touch *models.OutboundTouch) error {
	if touch.ID == "" {
		touch.ID = uuid.New().String()
	}
	if touch.CreatedAt.IsZero() {
		touch.CreatedAt = time.Now().UTC()
	}

	var templateName sql.NullString
	if touch.TemplateName != nil {
		templateName = sql.NullString{String: *touch.TemplateName, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outbound_touches (id, contact_id, channel, direction, status, body, template_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		touch.ID, touch.ContactID, touch.Channel, touch.Direction,
		touch.Status, touch.Body, templateName, touch.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert touch: %w", err)
	}
	return nil
}

// ListOutboundSince returns outbound rows inside the telemetry window.
func (s *TouchStore) ListOutboundSince(ctx context.Context, since time.Time) ([]models.OutboundTouch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contact_id, channel, direction, status, body, template_name, created_at
		FROM outbound_touches
		WHERE direction = $1 AND created_at >= $2`,
		models.DirectionOutbound, since)
	if err != nil {
		return nil, fmt.Errorf("list touches: %w", err)
	}
	defer rows.Close()

	var touches []models.OutboundTouch
	for rows.Next() {
		var t models.OutboundTouch
		var templateName sql.NullString
		if err := rows.Scan(&t.ID, &t.ContactID, &t.Channel, &t.Direction,
			&t.Status, &t.Body, &templateName, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan touch: %w", err)
		}
		if templateName.Valid {
			t.TemplateName = &templateName.String
		}
		touches = append(touches, t)
	}
	return touches, rows.Err()
}

// StatusCountsSince groups outbound rows after the cutoff by status, for the
// monitor dashboard.
func (s *TouchStore) StatusCountsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM outbound_touches
		WHERE direction = $1 AND created_at >= $2
		GROUP BY status`,
		models.DirectionOutbound, since)
	if err != nil {
		return nil, fmt.Errorf("count touches: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan touch count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
