// internal/matchmaker/scripts.go
package matchmaker

import (
	"fmt"
	"strings"
)

// Built-in outreach templates. The registry can override bodies by name;
// these are the fallbacks and the canonical set of template names.
const (
	TemplateBidIntro      = "bid_intro"
	TemplateBidTrades     = "bid_trades"
	TemplateEstateRealtor = "estate_realtor"
	TemplateEstateJunk    = "estate_junk"
	TemplateEstateGeneric = "estate_generic"
)

var builtinTemplates = map[string]string{
	TemplateBidIntro: "Hi {{name}}, a government contract just opened up that fits your line of work: \"{{title}}\" ({{classification}}). Budget listed at {{budget}}, closing {{deadline}}. Want me to send over the details?",

	TemplateBidTrades: "Hi {{name}}, the city posted an RFP for {{classification}} work — \"{{title}}\", budget {{budget}}. Crews like yours usually win these when they respond early. Interested?",

	TemplateEstateRealtor: "Hi {{name}}, there's an estate sale at {{address}} on {{sale_date}}. Homes like this usually hit the market within 60 days — worth getting in front of the family before the listing goes up?",

	TemplateEstateJunk: "Hi {{name}}, estate sale wrapping up at {{address}} on {{sale_date}}. Whatever doesn't sell needs hauling — want me to pass along your number for the cleanout?",

	TemplateEstateGeneric: "Hi {{name}}, spotted an event near you: \"{{title}}\" ({{category}}) on {{sale_date}}. Could be a lead source for your business — want the details?",
}

// tradeKeywords pick the harder-sell bid template for hands-on trades.
var tradeKeywords = []string{"HVAC", "PLUMBING", "ELECTRIC", "ROOFING", "PAVING", "LANDSCAP", "CONSTRUCTION"}

// bidTemplateFor selects a bid template name by keyword checks on the niche.
func bidTemplateFor(niche string) string {
	if containsAny(strings.ToUpper(niche), tradeKeywords) {
		return TemplateBidTrades
	}
	return TemplateBidIntro
}

// intentTemplateFor selects an estate-sale template name by niche.
func intentTemplateFor(niche string) string {
	n := strings.ToUpper(niche)
	switch {
	case containsAny(n, []string{"REAL ESTATE", "REALTOR"}):
		return TemplateEstateRealtor
	case containsAny(n, []string{"JUNK REMOVAL", "HAULING"}):
		return TemplateEstateJunk
	default:
		return TemplateEstateGeneric
	}
}

// renderScript interpolates {{placeholder}} tokens and strips any that have
// no value, so a missing budget never leaks a raw token into an outreach
// message.
func renderScript(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remove any remaining placeholders (missing values)
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}
