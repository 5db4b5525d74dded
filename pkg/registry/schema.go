// pkg/registry/schema.go
package registry

// OutreachRegistry is the on-disk catalog of outreach templates. Operators
// edit this file; the loader validates it before anything reaches the
// matchmaker.
type OutreachRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Templates   []Template `json:"templates"`
}

type Template struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description,omitempty"`
	Channel     string   `json:"channel"`
	Subject     string   `json:"subject,omitempty"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags,omitempty"`
}

// templateSchema is the JSON schema each registry entry must satisfy.
var templateSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":        map[string]interface{}{"type": "string", "minLength": 1},
		"displayName": map[string]interface{}{"type": "string"},
		"description": map[string]interface{}{"type": "string"},
		"channel": map[string]interface{}{
			"type": "string",
			"enum": []string{"sms", "email", "any"},
		},
		"subject": map[string]interface{}{"type": "string"},
		"body":    map[string]interface{}{"type": "string", "minLength": 1},
		"tags": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
	"required": []string{"name", "channel", "body"},
}
