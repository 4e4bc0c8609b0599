package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/ports"
)

// OpenDevice builds the per-device view over a shared backend: every key is
// scoped to id, and the session is loaded immediately.
func OpenDevice(ctx context.Context, kv ports.KVStore, id string, log zerolog.Logger) *ports.Device {
	ns := Namespaced(kv, id)
	log = log.With().Str("device_id", id).Logger()
	return &ports.Device{
		ID:        id,
		Session:   OpenSession(ctx, ns, log),
		Directory: NewDirectory(ns, log),
		Drafts:    NewDrafts(ns, log),
	}
}
