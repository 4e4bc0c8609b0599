package ports

import (
	"context"

	"github.com/skillsling/marketplace/internal/core/domain"
)

// KVStore is the key-value backend standing in for browser local storage.
// Get returns domain.ErrKeyNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// SessionStore holds at most one authenticated user.
type SessionStore interface {
	// Current returns the user loaded when the session was opened or last set.
	Current() (*domain.User, bool)
	// Set replaces the stored user wholesale.
	Set(ctx context.Context, user *domain.User) error
	// Clear removes the stored user.
	Clear(ctx context.Context) error
}

// DirectoryStore is the most-recent-first list of provider listings.
type DirectoryStore interface {
	// List never fails: an absent or corrupt blob reads as empty.
	List(ctx context.Context) []domain.ProviderListing
	// Add inserts at the front and returns the listing unchanged.
	Add(ctx context.Context, listing domain.ProviderListing) (domain.ProviderListing, error)
}

// DraftStore keeps an in-progress signup between requests.
type DraftStore interface {
	Load(ctx context.Context) (*domain.SignupForm, bool)
	Save(ctx context.Context, form *domain.SignupForm) error
	Discard(ctx context.Context) error
}

// Device is one client's private slice of the store: its session, its
// directory and its signup draft.
type Device struct {
	ID        string
	Session   SessionStore
	Directory DirectoryStore
	Drafts    DraftStore
}
