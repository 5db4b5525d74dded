// internal/models/state.go
package models

import "time"

// System state keys and campaign modes.
const (
	StateKeyCampaignMode = "campaign_mode"

	CampaignModeWorking = "working"
	CampaignModeStopped = "stopped"
)

// SystemState is a single-row-per-key global flag record. Version increments
// on every write and backs the optimistic concurrency check in the store.
type SystemState struct {
	Key       string    `json:"key"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
