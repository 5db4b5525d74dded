// internal/models/opportunity.go
package models

import "time"

// Bid is a government RFP pulled in by the nightly scraper.
// Budget and deadline come through as loosely typed strings.
type Bid struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Classification string    `json:"classification"`
	Budget         string    `json:"budget"`
	Deadline       string    `json:"deadline"`
	Summary        string    `json:"summary"`
	CreatedAt      time.Time `json:"created_at"`
}

// EstateSale is an estate-sale/intent event representing imminent demand
// for clearing, moving, and listing services.
type EstateSale struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Address   string    `json:"address"`
	SaleDate  string    `json:"sale_date"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMatch is one matched contact plus its generated outreach message.
// Matches are derived per request and never persisted.
type ContactMatch struct {
	Contact
	OutreachScript string `json:"outreach_script"`
}

// MatchedBid is a bid augmented with its match set. An empty match list is a
// normal result, not an error.
type MatchedBid struct {
	Bid
	Matches []ContactMatch `json:"matches"`
}

// MatchedSale is an estate sale augmented with its match set.
type MatchedSale struct {
	EstateSale
	Matches []ContactMatch `json:"matches"`
}
