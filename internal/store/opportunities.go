// internal/store/opportunities.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leadops/internal/models"
)

// OpportunityStore reads the scraper-populated bids and estate_sales tables.
// Both tables stay in the low hundreds, so feeds are served unpaginated.
type OpportunityStore struct {
	db *sql.DB
}

func NewOpportunityStore(db *sql.DB) *OpportunityStore {
	return &OpportunityStore{db: db}
}

// ListBids returns the open bid feed, newest first. A non-empty query narrows
// by title or classification.
func (s *OpportunityStore) ListBids(ctx context.Context, query string) ([]models.Bid, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, title, classification, budget, deadline, summary, created_at
			FROM bids
			WHERE title ILIKE '%' || $1 || '%' OR classification ILIKE '%' || $1 || '%'
			ORDER BY created_at DESC`, query)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, title, classification, budget, deadline, summary, created_at
			FROM bids
			ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var b models.Bid
		var budget, deadline, summary sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &b.Classification, &budget, &deadline, &summary, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		b.Budget = budget.String
		b.Deadline = deadline.String
		b.Summary = summary.String
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// ListEstateSales returns the estate-sale/intent feed, newest first.
func (s *OpportunityStore) ListEstateSales(ctx context.Context, query string) ([]models.EstateSale, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query != "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, title, category, address, sale_date, summary, created_at
			FROM estate_sales
			WHERE title ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
			ORDER BY created_at DESC`, query)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, title, category, address, sale_date, summary, created_at
			FROM estate_sales
			ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list estate sales: %w", err)
	}
	defer rows.Close()

	var sales []models.EstateSale
	for rows.Next() {
		var e models.EstateSale
		var address, saleDate, summary sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &address, &saleDate, &summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan estate sale: %w", err)
		}
		e.Address = address.String
		e.SaleDate = saleDate.String
		e.Summary = summary.String
		sales = append(sales, e)
	}
	return sales, rows.Err()
}

// CountBidsSince reports how many bids landed after the cutoff.
func (s *OpportunityStore) CountBidsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bids WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return n, nil
}

// CountEstateSalesSince reports how many sale events landed after the cutoff.
func (s *OpportunityStore) CountEstateSalesSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM estate_sales WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count estate sales: %w", err)
	}
	return n, nil
}
