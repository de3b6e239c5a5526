package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rfontes/anuncio"
)

// Compile-time interface verification.
var _ anuncio.ListingService = (*ListingService)(nil)

// ListingService implements anuncio.ListingService using SQLite.
type ListingService struct {
	db *DB
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db}
}

// CreateListing persists a listing and its field results.
// The listing is assigned a fresh ID. FetchedAt defaults to now if unset.
func (s *ListingService) CreateListing(ctx context.Context, listing *anuncio.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	listing.ID = uuid.New().String()
	if listing.FetchedAt.IsZero() {
		listing.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO listings (id, url, ad_id, backend, content_hash, success_ratio, description, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, listing.ID, listing.URL, listing.AdID, string(listing.Backend), listing.ContentHash,
		listing.SuccessRatio, listing.Description, listing.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, res := range listing.Results {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO field_results (listing_id, field, value, found, required, strategy, reason, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, listing.ID, string(res.Field), res.Value, res.Found, res.Required, res.Strategy, res.Reason, i)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindListingByID retrieves a listing by ID.
// Returns ENOTFOUND if the listing does not exist.
func (s *ListingService) FindListingByID(ctx context.Context, id string) (*anuncio.Listing, error) {
	var listing anuncio.Listing
	var backend, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, ad_id, backend, content_hash, success_ratio, description, fetched_at
		FROM listings
		WHERE id = ?
	`, id).Scan(&listing.ID, &listing.URL, &listing.AdID, &backend, &listing.ContentHash,
		&listing.SuccessRatio, &listing.Description, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, anuncio.Errorf(anuncio.ENOTFOUND, "listing not found")
	}
	if err != nil {
		return nil, err
	}

	listing.Backend = anuncio.Backend(backend)
	listing.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	if listing.Results, err = s.findResults(ctx, listing.ID); err != nil {
		return nil, err
	}

	return &listing, nil
}

// FindListings retrieves listings matching the filter, newest first.
func (s *ListingService) FindListings(ctx context.Context, filter anuncio.ListingFilter) ([]*anuncio.Listing, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, ad_id, backend, content_hash, success_ratio, description, fetched_at FROM listings WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.AdID != nil {
		query.WriteString(" AND ad_id = ?")
		args = append(args, *filter.AdID)
	}

	query.WriteString(" ORDER BY fetched_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*anuncio.Listing
	for rows.Next() {
		var listing anuncio.Listing
		var backend, fetchedAt string

		if err := rows.Scan(&listing.ID, &listing.URL, &listing.AdID, &backend, &listing.ContentHash,
			&listing.SuccessRatio, &listing.Description, &fetchedAt); err != nil {
			return nil, err
		}

		listing.Backend = anuncio.Backend(backend)
		listing.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		listings = append(listings, &listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, listing := range listings {
		if listing.Results, err = s.findResults(ctx, listing.ID); err != nil {
			return nil, err
		}
	}

	return listings, nil
}

// DeleteListing permanently removes a listing and its field results.
func (s *ListingService) DeleteListing(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return anuncio.Errorf(anuncio.ENOTFOUND, "listing not found")
	}

	return nil
}

// findResults loads a listing's field results in declaration order.
func (s *ListingService) findResults(ctx context.Context, listingID string) ([]anuncio.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT field, value, found, required, strategy, reason
		FROM field_results
		WHERE listing_id = ?
		ORDER BY position ASC
	`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []anuncio.Result
	for rows.Next() {
		var res anuncio.Result
		var field string
		if err := rows.Scan(&field, &res.Value, &res.Found, &res.Required, &res.Strategy, &res.Reason); err != nil {
			return nil, err
		}
		res.Field = anuncio.Field(field)
		results = append(results, res)
	}

	return results, rows.Err()
}
