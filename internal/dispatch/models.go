// internal/dispatch/models.go
package dispatch

import "leadops/internal/models"

// Request is one manual dispatch order. Identifier is the contact's phone or
// email, used as a lookup key. TemplateName is nil for ad hoc operator sends.
type Request struct {
	Identifier   string  `json:"contact_identifier"`
	Channel      string  `json:"channel"`
	Body         string  `json:"body"`
	TemplateName *string `json:"template_name,omitempty"`
}

// Result carries the freshly inserted log row so the console can render it
// optimistically, plus the overall outcome.
type Result struct {
	Success bool                  `json:"success"`
	Status  string                `json:"status"`
	Touch   *models.OutboundTouch `json:"data"`
}
