package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
)

// Directory is the ordered provider list of one device, newest first.
type Directory struct {
	kv  ports.KVStore
	log zerolog.Logger
}

func NewDirectory(kv ports.KVStore, log zerolog.Logger) *Directory {
	return &Directory{kv: kv, log: log}
}

// List reads the persisted sequence. Absent, unreadable or corrupt data
// yields an empty, non-nil slice.
func (d *Directory) List(ctx context.Context) []domain.ProviderListing {
	raw, err := d.kv.Get(ctx, KeyProviders)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			d.log.Warn().Err(err).Str("key", KeyProviders).Msg("directory read failed, treating as empty")
		}
		return []domain.ProviderListing{}
	}

	var list []domain.ProviderListing
	if err := json.Unmarshal(raw, &list); err != nil {
		d.log.Warn().Err(err).Str("key", KeyProviders).Msg("corrupt directory ignored")
		return []domain.ProviderListing{}
	}
	if list == nil {
		list = []domain.ProviderListing{}
	}
	return list
}

// Add prepends listing, persists the whole sequence and returns listing as given.
func (d *Directory) Add(ctx context.Context, listing domain.ProviderListing) (domain.ProviderListing, error) {
	current := d.List(ctx)
	next := make([]domain.ProviderListing, 0, len(current)+1)
	next = append(next, listing)
	next = append(next, current...)

	raw, err := json.Marshal(next)
	if err != nil {
		return domain.ProviderListing{}, fmt.Errorf("encode directory: %w", err)
	}
	if err := d.kv.Set(ctx, KeyProviders, raw); err != nil {
		return domain.ProviderListing{}, fmt.Errorf("persist directory: %w", err)
	}
	return listing, nil
}
