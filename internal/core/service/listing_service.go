package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
)

const msgTitleAndPrice = "Add a title and price"

// ListingService implements the provider directory use cases.
type ListingService struct {
	ids    *IDGenerator
	now    func() time.Time
	logger zerolog.Logger
}

func NewListingService(ids *IDGenerator, now func() time.Time, logger zerolog.Logger) *ListingService {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = NewIDGenerator(now)
	}
	return &ListingService{ids: ids, now: now, logger: logger}
}

func (s *ListingService) List(ctx context.Context, dev *ports.Device) []domain.ProviderListing {
	return dev.Directory.List(ctx)
}

// Create publishes an explicit provider profile for owner. Title and price
// are required; the owner must hold the provider role.
func (s *ListingService) Create(ctx context.Context, dev *ports.Device, owner *domain.User, in ports.CreateListingInput) (*domain.ProviderListing, error) {
	if !owner.HasRole(domain.RoleProvider) {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	price := strings.TrimSpace(in.Price)
	if title == "" || price == "" {
		return nil, domain.NewValidationError(msgTitleAndPrice)
	}

	listing := domain.ProviderListing{
		ID:        s.ids.Next(),
		OwnerID:   owner.ID,
		Name:      owner.Name,
		Title:     title,
		Bio:       strings.TrimSpace(in.Bio),
		Price:     price,
		CreatedAt: domain.FormatCreatedAt(s.now()),
	}

	added, err := dev.Directory.Add(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.logger.Info().Int64("listing_id", added.ID).Int64("owner_id", added.OwnerID).Msg("listing created")
	return &added, nil
}
