package matchmaker

import (
	"testing"

	"leadops/internal/common/logger"
	"leadops/internal/models"
	"leadops/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func strPtr(s string) *string { return &s }

func testContacts() []models.Contact {
	return []models.Contact{
		{ID: "c1", Name: "Al", Niche: strPtr("HVAC Repair"), Phone: strPtr("+15551111111")},
		{ID: "c2", Name: "Jen", Niche: strPtr("Real Estate"), Email: strPtr("jen@realty.com")},
		{ID: "c3", Name: "Bo", Niche: strPtr("Junk Removal")},
		{ID: "c4", Name: "Nora", Niche: nil},
	}
}

// ==========================
// MatchBids Tests
// ==========================

func TestMatchmaker_MatchBids(t *testing.T) {
	m := New(logger.NewTestLogger(t), nil)

	bids := []models.Bid{
		{ID: "b1", Title: "School HVAC Overhaul", Classification: "HVAC", Budget: "$120,000", Deadline: "2026-09-15"},
		{ID: "b2", Title: "Art Supplies", Classification: "Office Supplies"},
	}

	out := m.MatchBids(bids, testContacts())
	require.Len(t, out, 2)

	// HVAC bid matches the HVAC contact only.
	require.Len(t, out[0].Matches, 1)
	match := out[0].Matches[0]
	assert.Equal(t, "c1", match.Contact.ID)
	assert.Contains(t, match.OutreachScript, "Al")
	assert.Contains(t, match.OutreachScript, "$120,000")
	assert.NotContains(t, match.OutreachScript, "{{")

	// Unmatched bid still carries an empty, non-nil match set so the feed
	// serializes as [] and not null.
	assert.NotNil(t, out[1].Matches)
	assert.Empty(t, out[1].Matches)
}

func TestMatchmaker_MatchBids_Deterministic(t *testing.T) {
	m := New(logger.NewNoOpLogger(), nil)
	bids := []models.Bid{
		{ID: "b1", Title: "Road Paving", Classification: "Paving"},
		{ID: "b2", Title: "HVAC Maintenance", Classification: "HVAC"},
	}
	contacts := testContacts()

	first := m.MatchBids(bids, contacts)
	second := m.MatchBids(bids, contacts)
	assert.Equal(t, first, second)
}

// ==========================
// MatchIntents Tests
// ==========================

func TestMatchmaker_MatchIntents(t *testing.T) {
	m := New(logger.NewTestLogger(t), nil)

	sales := []models.EstateSale{
		{ID: "s1", Title: "Estate Moving Sale", Category: "Moving Sale", Address: "12 Oak St", SaleDate: "2026-09-01"},
	}

	out := m.MatchIntents(sales, testContacts())
	require.Len(t, out, 1)
	require.Len(t, out[0].Matches, 2)

	byID := map[string]string{}
	for _, match := range out[0].Matches {
		byID[match.Contact.ID] = match.OutreachScript
	}

	// Realtor gets the listing-angle script, junk removal gets the cleanout
	// angle. The HVAC contact has no relationship to a moving sale.
	require.Contains(t, byID, "c2")
	assert.Contains(t, byID["c2"], "12 Oak St")
	assert.Contains(t, byID["c2"], "market")

	require.Contains(t, byID, "c3")
	assert.Contains(t, byID["c3"], "hauling")

	assert.NotContains(t, byID, "c1")
	assert.NotContains(t, byID, "c4")
}

// ==========================
// Registry Override Tests
// ==========================

func TestMatchmaker_RegistryOverridesBuiltin(t *testing.T) {
	reg := &registry.OutreachRegistry{
		Templates: []registry.Template{
			{Name: TemplateBidTrades, Channel: "any", Body: "Custom pitch for {{name}} about {{title}}."},
		},
	}
	m := New(logger.NewNoOpLogger(), reg)

	bids := []models.Bid{{ID: "b1", Title: "HVAC Maintenance", Classification: "HVAC"}}
	out := m.MatchBids(bids, testContacts())

	require.Len(t, out, 1)
	require.Len(t, out[0].Matches, 1)
	assert.Equal(t, "Custom pitch for Al about HVAC Maintenance.", out[0].Matches[0].OutreachScript)
}
