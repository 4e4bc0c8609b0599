package domain

import (
	"slices"
	"strings"
)

// SignupStep is a state of the signup form.
type SignupStep string

const (
	StepRoleSelect      SignupStep = "role_select"
	StepBasicInfo       SignupStep = "basic_info"
	StepProviderDetails SignupStep = "provider_details"
	StepCommitted       SignupStep = "committed"
)

const (
	MinPasswordLength = 6

	msgBasicInfo = "Enter name, valid email and password (min 6 chars)."
	msgNoRole    = "Select at least one role."
)

// ServiceCatalogue lists the services a provider can offer.
var ServiceCatalogue = []string{
	"DJ",
	"Photographer",
	"Videographer",
	"Makeup Artist",
	"Catering",
	"PA/MC",
	"Graphic Designer",
}

var signupTransitions = map[SignupStep][]SignupStep{
	StepRoleSelect:      {StepBasicInfo},
	StepBasicInfo:       {StepProviderDetails, StepCommitted},
	StepProviderDetails: {StepBasicInfo, StepCommitted},
}

// Valid reports whether s is one of the known steps.
func (s SignupStep) Valid() bool {
	switch s {
	case StepRoleSelect, StepBasicInfo, StepProviderDetails, StepCommitted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the form may move from s to next.
func (s SignupStep) CanTransitionTo(next SignupStep) bool {
	return slices.Contains(signupTransitions[s], next)
}

// SignupForm is the multi-step signup state machine.
//
// Every setter clears Error, so a validation message only lives until the
// next edit. Password is never serialised: a saved draft must be resubmitted
// with the password to pass the BasicInfo guard again.
type SignupForm struct {
	Step     SignupStep `json:"step"`
	Roles    RoleSet    `json:"roles"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"-"`
	Services []string   `json:"services"`
	Bio      string     `json:"bio"`
	Price    string     `json:"price"`
	Error    string     `json:"error,omitempty"`
}

// NewSignupForm starts a form in RoleSelect with the provider role preselected.
func NewSignupForm() *SignupForm {
	return &SignupForm{
		Step:     StepRoleSelect,
		Roles:    NewRoleSet(RoleProvider),
		Services: []string{},
	}
}

func (f *SignupForm) SetRoles(r RoleSet)   { f.Roles = r; f.Error = "" }
func (f *SignupForm) ToggleRole(r Role)    { f.Roles = f.Roles.Toggle(r); f.Error = "" }
func (f *SignupForm) SetName(v string)     { f.Name = v; f.Error = "" }
func (f *SignupForm) SetEmail(v string)    { f.Email = v; f.Error = "" }
func (f *SignupForm) SetPassword(v string) { f.Password = v; f.Error = "" }
func (f *SignupForm) SetBio(v string)      { f.Bio = v; f.Error = "" }
func (f *SignupForm) SetPrice(v string)    { f.Price = v; f.Error = "" }

// SetServices replaces the selected services in the order given. Duplicates
// and anything outside the catalogue are dropped.
func (f *SignupForm) SetServices(services []string) {
	out := make([]string, 0, len(services))
	for _, s := range services {
		if slices.Contains(ServiceCatalogue, s) && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	f.Services = out
	f.Error = ""
}

// ToggleService adds or removes one service.
func (f *SignupForm) ToggleService(s string) {
	if i := slices.Index(f.Services, s); i >= 0 {
		f.Services = slices.Delete(slices.Clone(f.Services), i, i+1)
	} else if slices.Contains(ServiceCatalogue, s) {
		f.Services = append(slices.Clone(f.Services), s)
	}
	f.Error = ""
}

// ConfirmRoles leaves RoleSelect. At least one role is required.
func (f *SignupForm) ConfirmRoles() error {
	if f.Step != StepRoleSelect {
		return ErrInvalidSignupStep
	}
	if f.Roles.IsEmpty() {
		return f.fail(msgNoRole)
	}
	f.Step = StepBasicInfo
	return nil
}

// Next validates BasicInfo and advances to ProviderDetails when the provider
// role is selected, or straight to Committed otherwise.
func (f *SignupForm) Next() error {
	if f.Step != StepBasicInfo {
		return ErrInvalidSignupStep
	}
	if f.Roles.IsEmpty() {
		return f.fail(msgNoRole)
	}
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || len(f.Password) < MinPasswordLength {
		return f.fail(msgBasicInfo)
	}
	if f.Roles.Has(RoleProvider) {
		return f.moveTo(StepProviderDetails)
	}
	return f.moveTo(StepCommitted)
}

// Back returns from ProviderDetails to BasicInfo, keeping every entered value.
func (f *SignupForm) Back() error {
	if f.Step != StepProviderDetails {
		return ErrInvalidSignupStep
	}
	return f.moveTo(StepBasicInfo)
}

// Finish commits from ProviderDetails. Services, bio and price may be empty.
func (f *SignupForm) Finish() error {
	if f.Step != StepProviderDetails {
		return ErrInvalidSignupStep
	}
	return f.moveTo(StepCommitted)
}

// Committed reports whether the form reached its terminal state.
func (f *SignupForm) Committed() bool { return f.Step == StepCommitted }

// BuildUser constructs the session record for a committed form.
func (f *SignupForm) BuildUser(id int64) *User {
	u := &User{
		ID:    id,
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Roles: f.Roles,
	}
	if f.Roles.Has(RoleProvider) {
		u.Provider = &ProviderDetails{
			Services: slices.Clone(f.Services),
			Bio:      f.Bio,
			Price:    f.Price,
		}
	}
	return u
}

// BuildListing constructs the directory entry created alongside a provider
// signup. The title is the first selected service.
func (f *SignupForm) BuildListing(id int64, owner *User, createdAt string) ProviderListing {
	title := DefaultListingTitle
	if len(f.Services) > 0 {
		title = f.Services[0]
	}
	return ProviderListing{
		ID:        id,
		OwnerID:   owner.ID,
		Name:      owner.Name,
		Title:     title,
		Bio:       f.Bio,
		Price:     PriceOrPlaceholder(f.Price),
		CreatedAt: createdAt,
	}
}

func (f *SignupForm) moveTo(next SignupStep) error {
	if !f.Step.CanTransitionTo(next) {
		return ErrInvalidSignupStep
	}
	f.Step = next
	return nil
}

func (f *SignupForm) fail(msg string) error {
	f.Error = msg
	return NewValidationError(msg)
}

// PostAuthRoute picks where a freshly authenticated user lands: a single-role
// user goes to that role's dashboard, anyone else to the directory.
func PostAuthRoute(roles RoleSet) string {
	switch {
	case roles.Only(RoleProvider):
		return PathProviderDashboard
	case roles.Only(RoleClient):
		return PathClientDashboard
	default:
		return PathProviders
	}
}
