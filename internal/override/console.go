// internal/override/console.go
package override

import (
	"context"
	"errors"
	"strings"

	apperrors "leadops/internal/common/errors"
	"leadops/internal/common/logger"
	"leadops/internal/common/metrics"
	"leadops/internal/models"
	"leadops/internal/store"
)

// Keyword sets for the two recognized instructions. Containment check, so
// "please halt everything" works.
var (
	haltKeywords   = []string{"halt", "stop", "pause", "suspend"}
	resumeKeywords = []string{"resume", "start", "engage", "activate"}
)

// Console parses `<PIN>:<instruction>` commands and flips the campaign_mode
// state row. The PIN prefix is command syntax, not access control; the API
// layer checks the console token before anything reaches Execute.
type Console struct {
	state  *store.StateStore
	pin    string
	logger logger.Logger
}

func NewConsole(state *store.StateStore, pin string, log logger.Logger) *Console {
	return &Console{
		state:  state,
		pin:    pin,
		logger: log.WithFields(map[string]interface{}{"component": "override"}),
	}
}

// Execute runs one console command and returns the operator-facing message.
func (c *Console) Execute(ctx context.Context, command string) (string, error) {
	if !strings.HasPrefix(command, c.pin+":") {
		metrics.OverrideCommands.WithLabelValues("unauthorized").Inc()
		return "", apperrors.NewAuthFailedError("command PIN mismatch")
	}

	instruction := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(command, c.pin+":")))

	switch {
	case containsAny(instruction, haltKeywords):
		if err := c.setMode(ctx, models.CampaignModeStopped); err != nil {
			return "", err
		}
		metrics.OverrideCommands.WithLabelValues("halt").Inc()
		c.logger.Warn("campaign halted by operator", nil)
		return "Halt Protocol Engaged. Campaign mode set to stopped.", nil

	case containsAny(instruction, resumeKeywords):
		if err := c.setMode(ctx, models.CampaignModeWorking); err != nil {
			return "", err
		}
		metrics.OverrideCommands.WithLabelValues("resume").Inc()
		c.logger.Info("campaign resumed by operator", nil)
		return "Resume Protocol Engaged. Campaign mode set to working.", nil

	default:
		metrics.OverrideCommands.WithLabelValues("unrecognized").Inc()
		return "", apperrors.NewCommandNotRecognizedError(instruction)
	}
}

// CurrentMode reads the campaign mode flag. Empty when the row was never
// written.
func (c *Console) CurrentMode(ctx context.Context) (string, error) {
	state, err := c.state.Get(ctx, models.StateKeyCampaignMode)
	if err != nil {
		return "", err
	}
	return state.Status, nil
}

// setMode writes campaign_mode through the versioned CAS so two concurrent
// overrides cannot silently clobber each other.
func (c *Console) setMode(ctx context.Context, mode string) error {
	current, err := c.state.Get(ctx, models.StateKeyCampaignMode)
	if err != nil {
		return apperrors.NewPersistenceFailureError(err)
	}

	_, err = c.state.CompareAndSet(ctx, models.StateKeyCampaignMode, mode, current.Version)
	if errors.Is(err, store.ErrVersionConflict) {
		return apperrors.NewPersistenceFailureError(err)
	}
	if err != nil {
		return apperrors.NewPersistenceFailureError(err)
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
