package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	apperrors "leadops/internal/common/errors"
	"leadops/internal/common/logger"
	"leadops/internal/models"
	"leadops/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockEmailSender struct {
	SendFunc func(ctx context.Context, to, subject, body string) error
	Calls    int
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, body string) error {
	m.Calls++
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, to, subject, body)
}

type MockSMSSender struct {
	SendFunc func(ctx context.Context, to, message string) error
	Calls    int
}

func (m *MockSMSSender) Send(ctx context.Context, to, message string) error {
	m.Calls++
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, to, message)
}

// ==========================
// Test Helper Functions
// ==========================

type gatewayFixture struct {
	gateway *Gateway
	mock    sqlmock.Sqlmock
	email   *MockEmailSender
	sms     *MockSMSSender
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	email := &MockEmailSender{}
	sms := &MockSMSSender{}
	gateway := NewGateway(
		store.NewContactStore(db),
		store.NewTouchStore(db),
		email, sms,
		logger.NewTestLogger(t),
	)
	return &gatewayFixture{gateway: gateway, mock: mock, email: email, sms: sms}
}

func (f *gatewayFixture) expectContactLookup(identifier string, phone, email interface{}) {
	rows := sqlmock.NewRows([]string{"id", "name", "phone", "email", "niche", "rating", "ai_paused", "created_at"}).
		AddRow("contact-1", "Al's HVAC", phone, email, "HVAC Repair", "A", false, time.Now())
	f.mock.ExpectQuery(`FROM contacts_master WHERE phone = \$1 OR email = \$1`).
		WithArgs(identifier).
		WillReturnRows(rows)
}

func (f *gatewayFixture) expectClaimPause(affected int64) {
	f.mock.ExpectExec(`UPDATE contacts_master SET ai_paused = true WHERE id = \$1 AND ai_paused = false`).
		WithArgs("contact-1").
		WillReturnResult(sqlmock.NewResult(0, affected))
}

func (f *gatewayFixture) expectTouchInsert(channel, status string) {
	f.mock.ExpectExec(`INSERT INTO outbound_touches`).
		WithArgs(sqlmock.AnyArg(), "contact-1", channel, models.DirectionOutbound,
			status, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

// ==========================
// Send Tests
// ==========================

func TestGateway_Send_SMSDelivered(t *testing.T) {
	f := newGatewayFixture(t)
	f.expectContactLookup("+15551234567", "+15551234567", nil)
	f.expectClaimPause(1)
	f.expectTouchInsert(models.ChannelSMS, models.StatusDelivered)

	result, err := f.gateway.Send(context.Background(), Request{
		Identifier: "+15551234567",
		Channel:    models.ChannelSMS,
		Body:       "quick question about your crew",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StatusDelivered, result.Status)
	assert.Equal(t, 1, f.sms.Calls)
	assert.Equal(t, 0, f.email.Calls)

	require.NotNil(t, result.Touch)
	assert.Equal(t, "contact-1", result.Touch.ContactID)
	assert.Equal(t, models.DirectionOutbound, result.Touch.Direction)
	assert.NotEmpty(t, result.Touch.ID)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGateway_Send_NoChannelOnContact(t *testing.T) {
	// Phone-only contact addressed over email. No provider call happens, but
	// the attempt is still logged as exactly one failed_no_channel row.
	f := newGatewayFixture(t)
	f.expectContactLookup("+15551234567", "+15551234567", nil)
	f.expectClaimPause(1)
	f.expectTouchInsert(models.ChannelEmail, models.StatusFailedNoChannel)

	result, err := f.gateway.Send(context.Background(), Request{
		Identifier: "+15551234567",
		Channel:    models.ChannelEmail,
		Body:       "hello",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusFailedNoChannel, result.Status)
	assert.Equal(t, 0, f.email.Calls)
	assert.Equal(t, 0, f.sms.Calls)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGateway_Send_ProviderFailureAbsorbed(t *testing.T) {
	// A provider outage becomes a failed touch row, not an API error.
	f := newGatewayFixture(t)
	f.sms.SendFunc = func(ctx context.Context, to, message string) error {
		return errors.New("sns throttled")
	}
	f.expectContactLookup("+15551234567", "+15551234567", nil)
	f.expectClaimPause(1)
	f.expectTouchInsert(models.ChannelSMS, models.StatusFailed)

	result, err := f.gateway.Send(context.Background(), Request{
		Identifier: "+15551234567",
		Channel:    models.ChannelSMS,
		Body:       "hello",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGateway_Send_TouchLogWriteFailureSurfaces(t *testing.T) {
	// The one hard failure: the send may have gone out but the log write
	// didn't land.
	f := newGatewayFixture(t)
	f.expectContactLookup("+15551234567", "+15551234567", nil)
	f.expectClaimPause(1)
	f.mock.ExpectExec(`INSERT INTO outbound_touches`).
		WillReturnError(errors.New("disk full"))

	result, err := f.gateway.Send(context.Background(), Request{
		Identifier: "+15551234567",
		Channel:    models.ChannelSMS,
		Body:       "hello",
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodePersistenceFailure, stdErr.Code)
	assert.Equal(t, 1, f.sms.Calls, "delivery already happened before the log write failed")
}

func TestGateway_Send_ContactNotFound(t *testing.T) {
	f := newGatewayFixture(t)
	f.mock.ExpectQuery(`FROM contacts_master WHERE phone = \$1 OR email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	result, err := f.gateway.Send(context.Background(), Request{
		Identifier: "nobody@example.com",
		Channel:    models.ChannelEmail,
		Body:       "hello",
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeContactNotFound, stdErr.Code)
	assert.Equal(t, 0, f.sms.Calls)
	assert.Equal(t, 0, f.email.Calls)
}

func TestGateway_Send_AlreadyPausedProceeds(t *testing.T) {
	// A second manual send to the same contact finds ai_paused already set.
	// The lockout invariant already holds, so the send still goes out.
	f := newGatewayFixture(t)
	f.email.SendFunc = func(ctx context.Context, to, subject, body string) error {
		assert.Equal(t, "al@hvac.com", to)
		assert.NotEmpty(t, subject)
		return nil
	}
	f.expectContactLookup("al@hvac.com", nil, "al@hvac.com")
	f.expectClaimPause(0)
	f.expectTouchInsert(models.ChannelEmail, models.StatusDelivered)

	result, err := f.gateway.Send(context.Background(), Request{
		Identifier: "al@hvac.com",
		Channel:    models.ChannelEmail,
		Body:       "following up",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, f.email.Calls)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGateway_Send_TemplateNameCarriedOntoTouch(t *testing.T) {
	f := newGatewayFixture(t)
	f.expectContactLookup("+15551234567", "+15551234567", nil)
	f.expectClaimPause(1)
	f.expectTouchInsert(models.ChannelSMS, models.StatusDelivered)

	templateName := "bid_trades"
	result, err := f.gateway.Send(context.Background(), Request{
		Identifier:   "+15551234567",
		Channel:      models.ChannelSMS,
		Body:         "hello",
		TemplateName: &templateName,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Touch.TemplateName)
	assert.Equal(t, "bid_trades", *result.Touch.TemplateName)
}

// ==========================
// Resume Tests
// ==========================

func TestGateway_Resume(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantCode apperrors.ErrorCode
	}{
		{name: "contact handed back", affected: 1},
		{name: "unknown identifier", affected: 0, wantCode: apperrors.ErrCodeContactNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGatewayFixture(t)
			f.mock.ExpectExec(`UPDATE contacts_master SET ai_paused = false WHERE phone = \$1 OR email = \$1`).
				WithArgs("al@hvac.com").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := f.gateway.Resume(context.Background(), "al@hvac.com")
			if tt.wantCode != "" {
				var stdErr *apperrors.StandardError
				require.True(t, errors.As(err, &stdErr))
				assert.Equal(t, tt.wantCode, stdErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
