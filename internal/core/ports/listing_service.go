package ports

import (
	"context"

	"github.com/skillsling/marketplace/internal/core/domain"
)

// CreateListingInput carries the explicit "create provider profile" form.
type CreateListingInput struct {
	Title string
	Bio   string
	Price string
}

// ListingService defines directory use cases.
type ListingService interface {
	List(ctx context.Context, dev *Device) []domain.ProviderListing
	Create(ctx context.Context, dev *Device, owner *domain.User, in CreateListingInput) (*domain.ProviderListing, error)
}
