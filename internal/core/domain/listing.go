package domain

import "time"

const (
	// PricePlaceholder replaces an empty price on listings created at signup.
	PricePlaceholder = "Contact for price"
	// DefaultListingTitle is used when a provider signs up without picking a service.
	DefaultListingTitle = "Service Provider"

	// CreatedAtLayout is an ISO-8601 UTC timestamp with millisecond precision.
	CreatedAtLayout = "2006-01-02T15:04:05.000Z"
)

// ProviderListing is an entry in the provider directory.
//
// OwnerID is a lookup reference to User.ID, not ownership: nothing checks that
// the user still exists, and dangling references are tolerated.
type ProviderListing struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerId"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Price     string `json:"price"`
	CreatedAt string `json:"createdAt"`
}

// PriceOrPlaceholder returns price, or PricePlaceholder when price is empty.
func PriceOrPlaceholder(price string) string {
	if price == "" {
		return PricePlaceholder
	}
	return price
}

// FormatCreatedAt renders t the way listings store it.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}
