package service

import (
	"context"

	"github.com/skillsling/marketplace/internal/core/ports"
)

// Keys of the persisted blobs inside a device namespace.
const (
	KeyUser        = "skillsling_user"
	KeyProviders   = "skillsling_providers"
	KeySignupDraft = "skillsling_signup_draft"
)

// namespacedStore prefixes every key with a device ID so one backend can hold
// many independent "local storages".
type namespacedStore struct {
	kv     ports.KVStore
	prefix string
}

// Namespaced scopes kv to the given namespace: key k is stored as "<ns>:<k>".
func Namespaced(kv ports.KVStore, ns string) ports.KVStore {
	return &namespacedStore{kv: kv, prefix: ns + ":"}
}

func (n *namespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *namespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *namespacedStore) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}

func (n *namespacedStore) Ping(ctx context.Context) error {
	return n.kv.Ping(ctx)
}
