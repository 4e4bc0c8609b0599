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

type Drafts struct {
	kv  ports.KVStore
	log zerolog.Logger
}

func NewDrafts(kv ports.KVStore, log zerolog.Logger) *Drafts {
	return &Drafts{kv: kv, log: log}
}

func (d *Drafts) Load(ctx context.Context) (*domain.SignupForm, bool) {
	raw, err := d.kv.Get(ctx, KeySignupDraft)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			d.log.Warn().Err(err).Msg("signup draft read failed")
		}
		return nil, false
	}
	var f *domain.SignupForm
	if err := json.Unmarshal(raw, &f); err != nil {
		d.log.Warn().Err(err).Msg("corrupt signup draft ignored")
		return nil, false
	}
	if f == nil || !f.Step.Valid() {
		d.log.Warn().Msg("signup draft with unknown step ignored")
		return nil, false
	}
	return f, true
}

func (d *Drafts) Save(ctx context.Context, form *domain.SignupForm) error {
	raw, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := d.kv.Set(ctx, KeySignupDraft, raw); err != nil {
		return fmt.Errorf("persist draft: %w", err)
	}
	return nil
}

func (d *Drafts) Discard(ctx context.Context) error {
	if err := d.kv.Delete(ctx, KeySignupDraft); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}
