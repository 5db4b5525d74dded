// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// LoadRegistry reads and validates the outreach template registry file.
func LoadRegistry(path string) (*OutreachRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reg OutreachRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	for _, t := range reg.Templates {
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.Name, err)
		}
	}

	return &reg, nil
}

// Find returns the template with the given name, or nil.
func (r *OutreachRegistry) Find(name string) *Template {
	for i := range r.Templates {
		if r.Templates[i].Name == name {
			return &r.Templates[i]
		}
	}
	return nil
}

func validateTemplate(t Template) error {
	doc := map[string]interface{}{
		"name":        t.Name,
		"displayName": t.DisplayName,
		"description": t.Description,
		"channel":     t.Channel,
		"subject":     t.Subject,
		"body":        t.Body,
	}
	if t.Tags != nil {
		tags := make([]interface{}, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = tag
		}
		doc["tags"] = tags
	}

	schemaLoader := gojsonschema.NewGoLoader(templateSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("schema violation: %s", result.Errors()[0].String())
	}
	return nil
}
