// internal/store/contacts.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"leadops/internal/models"
)

// ContactStore reads and mutates contacts_master rows.
type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// FindByIdentifier looks a contact up by phone or email. The identifier is a
// lookup key, not a primary key; the first matching row wins.
func (s *ContactStore) FindByIdentifier(ctx context.Context, identifier string) (*models.Contact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, niche, rating, ai_paused, created_at
		FROM contacts_master
		WHERE phone = $1 OR email = $1
		LIMIT 1`, identifier)

	return scanContact(row)
}

// ClaimPause sets ai_paused conditionally so two concurrent dispatches cannot
// both claim the same contact. Returns false when the flag was already set;
// the automation lockout already holds in that case.
func (s *ContactStore) ClaimPause(ctx context.Context, contactID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts_master
		SET ai_paused = true
		WHERE id = $1 AND ai_paused = false`, contactID)
	if err != nil {
		return false, fmt.Errorf("claim pause: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim pause: %w", err)
	}
	return affected > 0, nil
}

// Resume unsets ai_paused, handing the contact back to the nurture automation.
// This is the only unpause path; dispatch never clears the flag.
func (s *ContactStore) Resume(ctx context.Context, identifier string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts_master
		SET ai_paused = false
		WHERE phone = $1 OR email = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("resume contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resume contact: %w", err)
	}
	return affected > 0, nil
}

// ListWithNiche returns every contact carrying a niche label; contacts without
// one can never match an opportunity.
func (s *ContactStore) ListWithNiche(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, email, niche, rating, ai_paused, created_at
		FROM contacts_master
		WHERE niche IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContactRows(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func scanContact(row *sql.Row) (*models.Contact, error) {
	var c models.Contact
	var phone, email, niche sql.NullString
	var rating sql.NullString
	err := row.Scan(&c.ID, &c.Name, &phone, &email, &niche, &rating, &c.AIPaused, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	applyNullables(&c, phone, email, niche, rating)
	return &c, nil
}

func scanContactRows(rows *sql.Rows) (*models.Contact, error) {
	var c models.Contact
	var phone, email, niche sql.NullString
	var rating sql.NullString
	err := rows.Scan(&c.ID, &c.Name, &phone, &email, &niche, &rating, &c.AIPaused, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	applyNullables(&c, phone, email, niche, rating)
	return &c, nil
}

func applyNullables(c *models.Contact, phone, email, niche, rating sql.NullString) {
	if phone.Valid {
		c.Phone = &phone.String
	}
	if email.Valid {
		c.Email = &email.String
	}
	if niche.Valid {
		c.Niche = &niche.String
	}
	if rating.Valid {
		c.Rating = rating.String
	}
}
