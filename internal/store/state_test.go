package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"leadops/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateStoreWithMock(t *testing.T) (*StateStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewStateStore(db), mock, func() { db.Close() }
}

func stateColumns() []string {
	return []string{"key", "status", "version", "updated_at"}
}

// ==========================
// Get Tests
// ==========================

func TestStateStore_Get(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		validate  func(t *testing.T, st *models.SystemState)
	}{
		{
			name: "existing row",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(stateColumns()).
					AddRow(models.StateKeyCampaignMode, models.CampaignModeStopped, int64(3), time.Now())
				mock.ExpectQuery(`FROM system_state WHERE key = \$1`).
					WithArgs(models.StateKeyCampaignMode).
					WillReturnRows(rows)
			},
			validate: func(t *testing.T, st *models.SystemState) {
				assert.Equal(t, models.CampaignModeStopped, st.Status)
				assert.Equal(t, int64(3), st.Version)
			},
		},
		{
			name: "missing row reads as version zero",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM system_state WHERE key = \$1`).
					WithArgs(models.StateKeyCampaignMode).
					WillReturnError(sql.ErrNoRows)
			},
			validate: func(t *testing.T, st *models.SystemState) {
				assert.Equal(t, models.StateKeyCampaignMode, st.Key)
				assert.Equal(t, int64(0), st.Version)
				assert.Empty(t, st.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock, closeFn := newStateStoreWithMock(t)
			defer closeFn()
			tt.mockSetup(mock)

			st, err := store.Get(context.Background(), models.StateKeyCampaignMode)
			require.NoError(t, err)
			tt.validate(t, st)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ==========================
// CompareAndSet Tests
// ==========================

func TestStateStore_CompareAndSet_Success(t *testing.T) {
	store, mock, closeFn := newStateStoreWithMock(t)
	defer closeFn()

	rows := sqlmock.NewRows(stateColumns()).
		AddRow(models.StateKeyCampaignMode, models.CampaignModeStopped, int64(4), time.Now())
	mock.ExpectQuery(`INSERT INTO system_state .+ ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(models.StateKeyCampaignMode, models.CampaignModeStopped, int64(3)).
		WillReturnRows(rows)

	st, err := store.CompareAndSet(context.Background(), models.StateKeyCampaignMode, models.CampaignModeStopped, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.Version)
	assert.Equal(t, models.CampaignModeStopped, st.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateStore_CompareAndSet_VersionConflict(t *testing.T) {
	store, mock, closeFn := newStateStoreWithMock(t)
	defer closeFn()

	// The conditional update matched nothing, so RETURNING yields no row.
	mock.ExpectQuery(`INSERT INTO system_state .+ ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(models.StateKeyCampaignMode, models.CampaignModeWorking, int64(1)).
		WillReturnError(sql.ErrNoRows)

	st, err := store.CompareAndSet(context.Background(), models.StateKeyCampaignMode, models.CampaignModeWorking, 1)
	assert.Nil(t, st)
	assert.True(t, errors.Is(err, ErrVersionConflict))
}

func TestStateStore_CompareAndSet_FirstWrite(t *testing.T) {
	store, mock, closeFn := newStateStoreWithMock(t)
	defer closeFn()

	rows := sqlmock.NewRows(stateColumns()).
		AddRow(models.StateKeyCampaignMode, models.CampaignModeWorking, int64(1), time.Now())
	mock.ExpectQuery(`INSERT INTO system_state .+ ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(models.StateKeyCampaignMode, models.CampaignModeWorking, int64(0)).
		WillReturnRows(rows)

	st, err := store.CompareAndSet(context.Background(), models.StateKeyCampaignMode, models.CampaignModeWorking, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Version)
}
