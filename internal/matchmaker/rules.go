// internal/matchmaker/rules.go
package matchmaker

import "strings"

// Rule decides whether a single opportunity/contact pair is a match. Keeping
// this behind an interface lets tokenized or fuzzy strategies swap in without
// touching dispatch or telemetry.
type Rule interface {
	Name() string
	Matches(category, niche string) bool
}

// SubstringRule matches when either case-folded label contains the other.
// "HVAC" matches "HVAC Repair", but "AC" will not match "HVAC" since there is
// no substring relationship. Known looseness, kept on purpose.
type SubstringRule struct{}

func (SubstringRule) Name() string { return "substring" }

func (SubstringRule) Matches(category, niche string) bool {
	c := strings.ToUpper(strings.TrimSpace(category))
	n := strings.ToUpper(strings.TrimSpace(niche))
	if c == "" || n == "" {
		return false
	}
	return strings.Contains(c, n) || strings.Contains(n, c)
}

// KeywordRule matches when the contact niche carries one of NicheKeywords and
// the opportunity classification carries one of CategoryKeywords. An empty
// CategoryKeywords list matches any classification.
type KeywordRule struct {
	RuleName         string
	NicheKeywords    []string
	CategoryKeywords []string
}

func (r KeywordRule) Name() string { return r.RuleName }

func (r KeywordRule) Matches(category, niche string) bool {
	n := strings.ToUpper(niche)
	if !containsAny(n, r.NicheKeywords) {
		return false
	}
	if len(r.CategoryKeywords) == 0 {
		return true
	}
	return containsAny(strings.ToUpper(category), r.CategoryKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// BidRules is the rule set for the government-bid feed.
func BidRules() []Rule {
	return []Rule{SubstringRule{}}
}

// IntentRules is the rule set for the estate-sale/intent feed: realtors chase
// listing-adjacent events, junk removal takes everything, and the substring
// fallback covers the rest.
func IntentRules() []Rule {
	return []Rule{
		KeywordRule{
			RuleName:         "realtor-moving",
			NicheKeywords:    []string{"REAL ESTATE", "REALTOR"},
			CategoryKeywords: []string{"MOVING", "ESTATE CLEARING", "DOWNSIZING"},
		},
		KeywordRule{
			RuleName:      "junk-removal-any",
			NicheKeywords: []string{"JUNK REMOVAL", "HAULING"},
		},
		SubstringRule{},
	}
}

// anyMatches runs a pair through a rule set; first hit wins.
func anyMatches(rules []Rule, category, niche string) bool {
	for _, r := range rules {
		if r.Matches(category, niche) {
			return true
		}
	}
	return false
}
