package anuncio

import (
	"context"
	"time"
)

// Listing represents a processed classified ad with its extraction
// results attached.
type Listing struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	AdID         string    `json:"adId"`
	Backend      Backend   `json:"backend"`
	ContentHash  string    `json:"contentHash"`
	SuccessRatio float64   `json:"successRatio"`
	Description  string    `json:"description,omitempty"` // Markdown
	FetchedAt    time.Time `json:"fetchedAt"`

	Results []Result `json:"results"`
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.URL == "" {
		return Errorf(EINVALID, "listing URL required")
	}
	return nil
}

// Value returns the extracted value for the named field, or "" if absent.
func (l *Listing) Value(f Field) string {
	for _, res := range l.Results {
		if res.Field == f && res.Found {
			return res.Value
		}
	}
	return ""
}

// ListingService represents a service for managing stored listings.
type ListingService interface {
	// CreateListing persists a new listing and its field results.
	CreateListing(ctx context.Context, listing *Listing) error

	// FindListingByID retrieves a listing by ID.
	// Returns ENOTFOUND if the listing does not exist.
	FindListingByID(ctx context.Context, id string) (*Listing, error)

	// FindListings retrieves listings matching the filter, newest first.
	FindListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)

	// DeleteListing permanently removes a listing and its results.
	// Returns ENOTFOUND if the listing does not exist.
	DeleteListing(ctx context.Context, id string) error
}

// ListingFilter represents a filter for FindListings.
type ListingFilter struct {
	ID   *string `json:"id"`
	URL  *string `json:"url"`
	AdID *string `json:"adId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
