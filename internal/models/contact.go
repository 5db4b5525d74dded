// internal/models/contact.go
package models

import "time"

// Contact is a prospective business to pitch, synced in from the CRM.
// Phone and email are nullable; dispatch needs at least one of them, but that
// is not enforced at write time.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Niche     *string   `json:"niche"`
	Rating    string    `json:"rating"`
	AIPaused  bool      `json:"ai_paused"`
	CreatedAt time.Time `json:"created_at"`
}

// HasPhone reports whether the contact can be reached over SMS.
func (c *Contact) HasPhone() bool {
	return c.Phone != nil && *c.Phone != ""
}

// HasEmail reports whether the contact can be reached over email.
func (c *Contact) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}

// NicheLabel returns the niche or an empty string when unset.
func (c *Contact) NicheLabel() string {
	if c.Niche == nil {
		return ""
	}
	return *c.Niche
}
