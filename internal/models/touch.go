// internal/models/touch.go
package models

import "time"

// Delivery channels.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Touch directions.
const (
	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// Touch statuses. A row stores only the terminal funnel stage reached; the
// telemetry aggregator expands earlier stages from it.
const (
	StatusDelivered       = "delivered"
	StatusOpened          = "opened"
	StatusRead            = "read"
	StatusReplied         = "replied"
	StatusBooking         = "booking"
	StatusFailed          = "failed"
	StatusFailedNoChannel = "failed_no_channel"
)

// OutboundTouch is an append-only log record of one dispatch attempt.
type OutboundTouch struct {
	ID           string    `json:"id"`
	ContactID    string    `json:"contact_id"`
	Channel      string    `json:"channel"`
	Direction    string    `json:"direction"`
	Status       string    `json:"status"`
	Body         string    `json:"body"`
	TemplateName *string   `json:"template_name"`
	CreatedAt    time.Time `json:"created_at"`
}
