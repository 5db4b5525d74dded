package matchmaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// SubstringRule Tests
// ==========================

func TestSubstringRule_Matches(t *testing.T) {
	rule := SubstringRule{}

	tests := []struct {
		name     string
		category string
		niche    string
		want     bool
	}{
		{name: "niche contained in category", category: "HVAC Repair Services", niche: "HVAC", want: true},
		{name: "category contained in niche", category: "HVAC", niche: "Commercial HVAC Installers", want: true},
		{name: "case folded", category: "roofing", niche: "ROOFING", want: true},
		{name: "no substring relationship", category: "HVAC", niche: "AC", want: false},
		{name: "unrelated labels", category: "Paving", niche: "Catering", want: false},
		{name: "empty category never matches", category: "", niche: "HVAC", want: false},
		{name: "empty niche never matches", category: "HVAC", niche: "", want: false},
		{name: "whitespace trimmed", category: "  Plumbing  ", niche: "Plumbing", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Matches(tt.category, tt.niche))
		})
	}
}

// ==========================
// KeywordRule Tests
// ==========================

func TestKeywordRule_Matches(t *testing.T) {
	realtorMoving := KeywordRule{
		RuleName:         "realtor-moving",
		NicheKeywords:    []string{"REAL ESTATE", "REALTOR"},
		CategoryKeywords: []string{"MOVING", "ESTATE CLEARING", "DOWNSIZING"},
	}
	junkAny := KeywordRule{
		RuleName:      "junk-removal-any",
		NicheKeywords: []string{"JUNK REMOVAL", "HAULING"},
	}

	tests := []struct {
		name     string
		rule     KeywordRule
		category string
		niche    string
		want     bool
	}{
		{name: "realtor matches moving sale", rule: realtorMoving, category: "Moving Sale", niche: "Real Estate Agent", want: true},
		{name: "realtor matches downsizing", rule: realtorMoving, category: "Downsizing Event", niche: "Realtor", want: true},
		{name: "realtor skips garage sale", rule: realtorMoving, category: "Garage Sale", niche: "Real Estate Agent", want: false},
		{name: "plumber never matches realtor rule", rule: realtorMoving, category: "Moving Sale", niche: "Plumbing", want: false},
		{name: "empty category keywords match anything", rule: junkAny, category: "Garage Sale", niche: "Junk Removal", want: true},
		{name: "hauling keyword matches", rule: junkAny, category: "Estate Sale", niche: "Hauling & Cleanout", want: true},
		{name: "junk rule still gated on niche", rule: junkAny, category: "Estate Sale", niche: "Catering", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Matches(tt.category, tt.niche))
		})
	}
}

func TestAnyMatches_FirstHitWins(t *testing.T) {
	rules := IntentRules()

	// Realtor + moving hits the keyword rule even though substring would miss.
	assert.True(t, anyMatches(rules, "Moving Sale", "Realtor"))
	// Substring fallback still covers exact-label overlap.
	assert.True(t, anyMatches(rules, "Estate Sale", "Estate Sale Organizer"))
	// Nothing applies.
	assert.False(t, anyMatches(rules, "Art Auction", "Plumbing"))
}
