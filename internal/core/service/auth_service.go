package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
)

const (
	msgNoAccount     = "No account found. Please sign up."
	msgEmailMismatch = "Incorrect email. Try signing up or use the registered email."
)

// AuthService drives the signup state machine and the login/logout flows
// against a device's stores.
type AuthService struct {
	ids    *IDGenerator
	now    func() time.Time
	logger zerolog.Logger
}

func NewAuthService(ids *IDGenerator, now func() time.Time, logger zerolog.Logger) *AuthService {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = NewIDGenerator(now)
	}
	return &AuthService{ids: ids, now: now, logger: logger}
}

// CurrentDraft returns the saved signup form, or a fresh one.
func (s *AuthService) CurrentDraft(ctx context.Context, dev *ports.Device) *domain.SignupForm {
	if f, ok := dev.Drafts.Load(ctx); ok {
		return f
	}
	return domain.NewSignupForm()
}

// SubmitBasicInfo applies the first step. With the provider role selected the
// form parks in ProviderDetails; otherwise the account is committed at once.
func (s *AuthService) SubmitBasicInfo(ctx context.Context, dev *ports.Device, in ports.BasicInfoInput) (*ports.SignupResult, error) {
	roles, err := domain.ParseRoleSet(in.Roles)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	form := s.CurrentDraft(ctx, dev)
	switch form.Step {
	case domain.StepCommitted:
		form = domain.NewSignupForm()
	case domain.StepProviderDetails:
		if err := form.Back(); err != nil {
			return nil, err
		}
	}

	form.SetRoles(roles)
	if form.Step == domain.StepRoleSelect {
		if err := form.ConfirmRoles(); err != nil {
			return nil, err
		}
	}
	form.SetName(in.Name)
	form.SetEmail(in.Email)
	form.SetPassword(in.Password)

	if err := form.Next(); err != nil {
		if saveErr := dev.Drafts.Save(ctx, form); saveErr != nil {
			s.logger.Warn().Err(saveErr).Msg("failed to save signup draft")
		}
		return nil, err
	}

	if form.Step == domain.StepProviderDetails {
		if err := dev.Drafts.Save(ctx, form); err != nil {
			return nil, fmt.Errorf("submit basic info: %w", err)
		}
		return &ports.SignupResult{Step: form.Step, Form: form}, nil
	}
	return s.commit(ctx, dev, form)
}

// SubmitProviderDetails finishes a provider signup parked in ProviderDetails.
func (s *AuthService) SubmitProviderDetails(ctx context.Context, dev *ports.Device, in ports.ProviderDetailsInput) (*ports.SignupResult, error) {
	form, ok := dev.Drafts.Load(ctx)
	if !ok || form.Step != domain.StepProviderDetails {
		return nil, domain.ErrNoSignupInProgress
	}

	for _, svc := range in.Services {
		if !slices.Contains(domain.ServiceCatalogue, svc) {
			return nil, domain.NewValidationError(fmt.Sprintf("unknown service %q", svc))
		}
	}
	form.SetServices(in.Services)
	form.SetBio(in.Bio)
	form.SetPrice(in.Price)

	if err := form.Finish(); err != nil {
		return nil, err
	}
	return s.commit(ctx, dev, form)
}

// BackToBasicInfo returns a parked provider signup to BasicInfo. Entered
// values are kept.
func (s *AuthService) BackToBasicInfo(ctx context.Context, dev *ports.Device) (*domain.SignupForm, error) {
	form, ok := dev.Drafts.Load(ctx)
	if !ok {
		return nil, domain.ErrNoSignupInProgress
	}
	if err := form.Back(); err != nil {
		return nil, err
	}
	if err := dev.Drafts.Save(ctx, form); err != nil {
		return nil, fmt.Errorf("back to basic info: %w", err)
	}
	return form, nil
}

func (s *AuthService) commit(ctx context.Context, dev *ports.Device, form *domain.SignupForm) (*ports.SignupResult, error) {
	user := form.BuildUser(s.ids.Next())
	if err := dev.Session.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("commit signup: %w", err)
	}

	res := &ports.SignupResult{
		Step:  form.Step,
		Form:  form,
		User:  user,
		Route: domain.PostAuthRoute(user.Roles),
	}

	if user.Roles.Has(domain.RoleProvider) {
		listing := form.BuildListing(s.ids.Next(), user, domain.FormatCreatedAt(s.now()))
		added, err := dev.Directory.Add(ctx, listing)
		if err != nil {
			return nil, fmt.Errorf("commit signup: %w", err)
		}
		res.Listing = &added
	}

	if err := dev.Drafts.Discard(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to discard signup draft")
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("roles", user.Roles.String()).
		Bool("listed", res.Listing != nil).
		Msg("signup committed")

	return res, nil
}

// Login re-adopts the stored account when the entered email matches it
// exactly. The password is not checked: there is no stored credential.
func (s *AuthService) Login(ctx context.Context, dev *ports.Device, in ports.LoginInput) (*ports.AuthResult, error) {
	saved, ok := dev.Session.Current()
	if !ok {
		return nil, &domain.MessageError{Err: domain.ErrNoAccount, Message: msgNoAccount}
	}
	if saved.Email != strings.TrimSpace(in.Email) {
		return nil, &domain.MessageError{Err: domain.ErrEmailMismatch, Message: msgEmailMismatch}
	}

	if err := dev.Session.Set(ctx, saved); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Int64("user_id", saved.ID).Msg("login")
	return &ports.AuthResult{User: saved, Route: domain.PostAuthRoute(saved.Roles)}, nil
}

// Logout tears the session down.
func (s *AuthService) Logout(ctx context.Context, dev *ports.Device) error {
	if err := dev.Session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
