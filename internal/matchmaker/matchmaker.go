// internal/matchmaker/matchmaker.go
package matchmaker

import (
	"leadops/internal/common/logger"
	"leadops/internal/common/metrics"
	"leadops/internal/models"

	"leadops/pkg/registry"
)

// Matchmaker pairs opportunities with contacts whose niche is relevant and
// synthesizes the outreach message for each pair. Pure read + transform:
// matching is O(opportunities x contacts), acceptable because both
// collections stay in the low hundreds.
type Matchmaker struct {
	bidRules    []Rule
	intentRules []Rule
	templates   map[string]string
	logger      logger.Logger
}

func New(log logger.Logger, reg *registry.OutreachRegistry) *Matchmaker {
	templates := make(map[string]string, len(builtinTemplates))
	for name, body := range builtinTemplates {
		templates[name] = body
	}
	if reg != nil {
		for _, t := range reg.Templates {
			if t.Body != "" {
				templates[t.Name] = t.Body
			}
		}
	}

	return &Matchmaker{
		bidRules:    BidRules(),
		intentRules: IntentRules(),
		templates:   templates,
		logger:      log.WithFields(map[string]interface{}{"component": "matchmaker"}),
	}
}

// MatchBids augments every bid with its match set. Deterministic: the same
// inputs always produce the same pairs and the same scripts.
func (m *Matchmaker) MatchBids(bids []models.Bid, contacts []models.Contact) []models.MatchedBid {
	out := make([]models.MatchedBid, 0, len(bids))
	total := 0

	for _, bid := range bids {
		matched := models.MatchedBid{Bid: bid, Matches: []models.ContactMatch{}}
		for _, contact := range contacts {
			niche := contact.NicheLabel()
			if !anyMatches(m.bidRules, bid.Classification, niche) {
				continue
			}
			tmplName := bidTemplateFor(niche)
			script := renderScript(m.templates[tmplName], map[string]interface{}{
				"name":           contact.Name,
				"title":          bid.Title,
				"classification": bid.Classification,
				"budget":         bid.Budget,
				"deadline":       bid.Deadline,
			})
			matched.Matches = append(matched.Matches, models.ContactMatch{
				Contact:        contact,
				OutreachScript: script,
			})
		}
		total += len(matched.Matches)
		out = append(out, matched)
	}

	metrics.MatchesComputed.WithLabelValues("bids").Add(float64(total))
	m.logger.Debug("bid feed matched", map[string]interface{}{
		"bids":    len(bids),
		"matches": total,
	})
	return out
}

// MatchIntents augments every estate-sale event with its match set.
func (m *Matchmaker) MatchIntents(sales []models.EstateSale, contacts []models.Contact) []models.MatchedSale {
	out := make([]models.MatchedSale, 0, len(sales))
	total := 0

	for _, sale := range sales {
		matched := models.MatchedSale{EstateSale: sale, Matches: []models.ContactMatch{}}
		for _, contact := range contacts {
			niche := contact.NicheLabel()
			if !anyMatches(m.intentRules, sale.Category, niche) {
				continue
			}
			tmplName := intentTemplateFor(niche)
			script := renderScript(m.templates[tmplName], map[string]interface{}{
				"name":      contact.Name,
				"title":     sale.Title,
				"category":  sale.Category,
				"address":   sale.Address,
				"sale_date": sale.SaleDate,
			})
			matched.Matches = append(matched.Matches, models.ContactMatch{
				Contact:        contact,
				OutreachScript: script,
			})
		}
		total += len(matched.Matches)
		out = append(out, matched)
	}

	metrics.MatchesComputed.WithLabelValues("intents").Add(float64(total))
	m.logger.Debug("intent feed matched", map[string]interface{}{
		"sales":   len(sales),
		"matches": total,
	})
	return out
}
