package handler

import "github.com/skillsling/marketplace/internal/core/domain"

type createListingRequest struct {
	Title string `json:"title" validate:"max=120"`
	Bio   string `json:"bio" validate:"max=2000"`
	Price string `json:"price" validate:"max=64"`
}

type directoryData struct {
	Providers []domain.ProviderListing `json:"providers"`
	Message   string                   `json:"message,omitempty"`
}
