// internal/dispatch/gateway.go
package dispatch

import (
	"context"
	"database/sql"
	"errors"

	apperrors "leadops/internal/common/errors"
	"leadops/internal/common/logger"
	"leadops/internal/common/metrics"
	"leadops/internal/models"
	"leadops/internal/store"
)

// EmailSender delivers one email message.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers one SMS message.
type SMSSender interface {
	Send(ctx context.Context, to, message string) error
}

const manualEmailSubject = "A quick note from your automation team"

// Gateway delivers a message to a contact over SMS or email and durably
// records the attempt. Provider failures are absorbed into the touch log;
// only a failed log write surfaces as an error.
type Gateway struct {
	contacts *store.ContactStore
	touches  *store.TouchStore
	email    EmailSender
	sms      SMSSender
	logger   logger.Logger
}

func NewGateway(contacts *store.ContactStore, touches *store.TouchStore, email EmailSender, sms SMSSender, log logger.Logger) *Gateway {
	return &Gateway{
		contacts: contacts,
		touches:  touches,
		email:    email,
		sms:      sms,
		logger:   log.WithFields(map[string]interface{}{"component": "dispatch"}),
	}
}

// Send resolves the contact, locks out the nurture automation, attempts the
// delivery, and always writes exactly one touch row for the attempt.
func (g *Gateway) Send(ctx context.Context, req Request) (*Result, error) {
	contact, err := g.contacts.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewContactNotFoundError(req.Identifier)
		}
		return nil, apperrors.NewQueryExecutionFailedError("contact_lookup", err)
	}

	// A human-initiated send locks out the automation for this contact
	// before anything goes over the wire. The conditional update means a
	// concurrent dispatch cannot claim the same contact twice; an already
	// set flag is fine, the lockout invariant already holds.
	claimed, err := g.contacts.ClaimPause(ctx, contact.ID)
	if err != nil {
		return nil, apperrors.NewPersistenceFailureError(err)
	}
	if !claimed {
		g.logger.Warn("contact already paused, proceeding with manual send", map[string]interface{}{
			"contactId": contact.ID,
		})
	}

	status := g.deliver(ctx, contact, req.Channel, req.Body)

	touch := &models.OutboundTouch{
		ContactID:    contact.ID,
		Channel:      req.Channel,
		Direction:    models.DirectionOutbound,
		Status:       status,
		Body:         req.Body,
		TemplateName: req.TemplateName,
	}
	if err := g.touches.Insert(ctx, touch); err != nil {
		// The send may have gone out. An un-logged send is worse than a
		// failed send, so this is the one failure that surfaces hard.
		g.logger.Error("touch log write failed after send attempt", map[string]interface{}{
			"contactId": contact.ID,
			"status":    status,
			"error":     err,
		})
		return nil, apperrors.NewPersistenceFailureError(err)
	}

	metrics.DispatchesTotal.WithLabelValues(req.Channel, status).Inc()
	g.logger.Info("dispatch recorded", map[string]interface{}{
		"contactId": contact.ID,
		"channel":   req.Channel,
		"status":    status,
	})

	return &Result{
		Success: status == models.StatusDelivered,
		Status:  status,
		Touch:   touch,
	}, nil
}

// deliver attempts the provider call and maps the outcome to a touch status.
// Provider errors never propagate past here.
func (g *Gateway) deliver(ctx context.Context, contact *models.Contact, channel, body string) string {
	switch channel {
	case models.ChannelSMS:
		if !contact.HasPhone() {
			return models.StatusFailedNoChannel
		}
		if err := g.sms.Send(ctx, *contact.Phone, body); err != nil {
			g.logger.Error("SMS send failed", map[string]interface{}{
				"contactId": contact.ID,
				"error":     err,
			})
			return models.StatusFailed
		}
		return models.StatusDelivered

	case models.ChannelEmail:
		if !contact.HasEmail() {
			return models.StatusFailedNoChannel
		}
		if err := g.email.Send(ctx, *contact.Email, manualEmailSubject, body); err != nil {
			g.logger.Error("email send failed", map[string]interface{}{
				"contactId": contact.ID,
				"error":     err,
			})
			return models.StatusFailed
		}
		return models.StatusDelivered

	default:
		return models.StatusFailedNoChannel
	}
}

// Resume hands a contact back to the automation. Exposed as its own console
// action because dispatch itself never unsets the flag.
func (g *Gateway) Resume(ctx context.Context, identifier string) error {
	found, err := g.contacts.Resume(ctx, identifier)
	if err != nil {
		return apperrors.NewPersistenceFailureError(err)
	}
	if !found {
		return apperrors.NewContactNotFoundError(identifier)
	}
	g.logger.Info("automation resumed for contact", map[string]interface{}{
		"identifier": identifier,
	})
	return nil
}
