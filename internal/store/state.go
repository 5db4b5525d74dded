// internal/store/state.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leadops/internal/models"
)

// ErrVersionConflict means another writer advanced the state row between the
// read and the conditional write.
var ErrVersionConflict = errors.New("system state version conflict")

// StateStore manages the versioned system_state flag rows.
type StateStore struct {
	db *sql.DB
}

func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// Get reads one state row. A missing row comes back as version 0 so a first
// write can go through CompareAndSet with expectedVersion 0.
func (s *StateStore) Get(ctx context.Context, key string) (*models.SystemState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, status, version, updated_at
		FROM system_state
		WHERE key = $1`, key)

	var st models.SystemState
	err := row.Scan(&st.Key, &st.Status, &st.Version, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.SystemState{Key: key, Version: 0}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &st, nil
}

// CompareAndSet writes the state row only when its version still matches the
// one the caller read. The version check replaces the bare-flag overwrite the
// old console did, so concurrent overrides cannot silently clobber each other.
func (s *StateStore) CompareAndSet(ctx context.Context, key, status string, expectedVersion int64) (*models.SystemState, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO system_state (key, status, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (key) DO UPDATE
		SET status = $2, version = system_state.version + 1, updated_at = NOW()
		WHERE system_state.version = $3
		RETURNING key, status, version, updated_at`,
		key, status, expectedVersion)

	var st models.SystemState
	err := row.Scan(&st.Key, &st.Status, &st.Version, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("set state: %w", err)
	}
	return &st, nil
}
