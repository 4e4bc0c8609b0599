package ports

import (
	"context"

	"github.com/skillsling/marketplace/internal/core/domain"
)

// BasicInfoInput is the first signup step. Roles are raw names so the service
// can report unknown ones.
type BasicInfoInput struct {
	Roles    []string
	Name     string
	Email    string
	Password string
}

// ProviderDetailsInput is the second signup step, provider role only.
type ProviderDetailsInput struct {
	Services []string
	Bio      string
	Price    string
}

// SignupResult describes where a signup step left the form. User, Listing and
// Route are set once the form commits.
type SignupResult struct {
	Step    domain.SignupStep
	Form    *domain.SignupForm
	User    *domain.User
	Listing *domain.ProviderListing
	Route   string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned after a successful login.
type AuthResult struct {
	User  *domain.User
	Route string
}

type AuthService interface {
	CurrentDraft(ctx context.Context, dev *Device) *domain.SignupForm
	SubmitBasicInfo(ctx context.Context, dev *Device, in BasicInfoInput) (*SignupResult, error)
	SubmitProviderDetails(ctx context.Context, dev *Device, in ProviderDetailsInput) (*SignupResult, error)
	BackToBasicInfo(ctx context.Context, dev *Device) (*domain.SignupForm, error)
	Login(ctx context.Context, dev *Device, in LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, dev *Device) error
}
