// internal/dispatch/disabled.go
package dispatch

import (
	"context"
	"errors"
)

var errChannelDisabled = errors.New("delivery channel disabled in configuration")

// DisabledEmailSender stands in when SES is switched off. Sends through it
// land in the touch log as failed rather than crashing the gateway.
type DisabledEmailSender struct{}

func (DisabledEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return errChannelDisabled
}

// DisabledSMSSender stands in when SNS is switched off.
type DisabledSMSSender struct{}

func (DisabledSMSSender) Send(ctx context.Context, to, message string) error {
	return errChannelDisabled
}
