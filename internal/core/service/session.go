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

// Session is the single current-user slot of one device. It is loaded once
// when opened and written through on every change.
type Session struct {
	kv   ports.KVStore
	log  zerolog.Logger
	user *domain.User
}

// OpenSession loads the persisted user, if any. A malformed or unreadable
// record leaves the session empty; it never fails.
func OpenSession(ctx context.Context, kv ports.KVStore, log zerolog.Logger) *Session {
	s := &Session{kv: kv, log: log}
	s.user = s.load(ctx)
	return s
}

func (s *Session) load(ctx context.Context) *domain.User {
	raw, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warn().Err(err).Str("key", KeyUser).Msg("session read failed, treating as signed out")
		}
		return nil
	}

	var u *domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn().Err(err).Str("key", KeyUser).Msg("malformed session record ignored")
		return nil
	}
	if !u.Valid() {
		s.log.Warn().Str("key", KeyUser).Msg("incomplete session record ignored")
		return nil
	}
	return u
}

// Current returns a copy of the signed-in user.
func (s *Session) Current() (*domain.User, bool) {
	return s.user.Clone(), s.user != nil
}

func (s *Session) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return s.Clear(ctx)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.user = user.Clone()
	return nil
}

func (s *Session) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.user = nil
	return nil
}
