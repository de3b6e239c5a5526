package mock

import (
	"context"

	"github.com/rfontes/anuncio"
)

var _ anuncio.ListingService = (*ListingService)(nil)

// ListingService is a mock implementation of anuncio.ListingService.
type ListingService struct {
	CreateListingFn   func(ctx context.Context, listing *anuncio.Listing) error
	FindListingByIDFn func(ctx context.Context, id string) (*anuncio.Listing, error)
	FindListingsFn    func(ctx context.Context, filter anuncio.ListingFilter) ([]*anuncio.Listing, error)
	DeleteListingFn   func(ctx context.Context, id string) error
}

func (s *ListingService) CreateListing(ctx context.Context, listing *anuncio.Listing) error {
	return s.CreateListingFn(ctx, listing)
}

func (s *ListingService) FindListingByID(ctx context.Context, id string) (*anuncio.Listing, error) {
	return s.FindListingByIDFn(ctx, id)
}

func (s *ListingService) FindListings(ctx context.Context, filter anuncio.ListingFilter) ([]*anuncio.Listing, error) {
	return s.FindListingsFn(ctx, filter)
}

func (s *ListingService) DeleteListing(ctx context.Context, id string) error {
	return s.DeleteListingFn(ctx, id)
}
