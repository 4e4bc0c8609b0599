package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
	"github.com/skillsling/marketplace/internal/infrastructure/storage/memory"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestAuth() *AuthService {
	return NewAuthService(nil, func() time.Time { return testNow }, zerolog.Nop())
}

func newTestDevice() *ports.Device {
	return OpenDevice(context.Background(), memory.NewKVStore(), "dev", zerolog.Nop())
}

func signupProvider(t *testing.T, svc *AuthService, dev *ports.Device, services []string, price string) *ports.SignupResult {
	t.Helper()
	ctx := context.Background()

	step, err := svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"provider"}, Name: "Alice", Email: "a@x.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("basic info: %v", err)
	}
	if step.Step != domain.StepProviderDetails {
		t.Fatalf("expected provider_details, got %s", step.Step)
	}

	res, err := svc.SubmitProviderDetails(ctx, dev, ports.ProviderDetailsInput{Services: services, Price: price})
	if err != nil {
		t.Fatalf("provider details: %v", err)
	}
	return res
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAuthService_ProviderSignup_PricePlaceholder(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()

	res := signupProvider(t, svc, dev, []string{"DJ"}, "")

	list := dev.Directory.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected one listing, got %d", len(list))
	}
	got := list[0]
	if got.Price != domain.PricePlaceholder || got.Title != "DJ" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if got.OwnerID != res.User.ID || got.Name != "Alice" {
		t.Fatalf("listing must point at the new user: %+v", got)
	}
	if got.CreatedAt != "2024-05-01T12:00:00.000Z" {
		t.Fatalf("unexpected createdAt: %s", got.CreatedAt)
	}
	if got.ID == res.User.ID {
		t.Fatalf("listing and user must have distinct ids")
	}
	if res.Route != domain.PathProviderDashboard {
		t.Fatalf("expected /provider, got %s", res.Route)
	}
	if _, ok := dev.Drafts.Load(ctx); ok {
		t.Fatalf("draft must be discarded after commit")
	}
}

func TestAuthService_ProviderSignup_InsertsAtFront(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()
	_, _ = dev.Directory.Add(ctx, domain.ProviderListing{ID: 1, Title: "Existing"})

	res := signupProvider(t, svc, dev, nil, "Ksh 2,000")

	list := dev.Directory.List(ctx)
	if len(list) != 2 || list[0].OwnerID != res.User.ID || list[1].ID != 1 {
		t.Fatalf("new listing must be at index 0: %+v", list)
	}
	if list[0].Title != domain.DefaultListingTitle || list[0].Price != "Ksh 2,000" {
		t.Fatalf("unexpected listing: %+v", list[0])
	}
}

func TestAuthService_ClientSignup_CommitsImmediately(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()

	res, err := svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"client"}, Name: " Bob ", Email: " b@x.com ", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Step != domain.StepCommitted || res.Route != domain.PathClientDashboard {
		t.Fatalf("unexpected result: step=%s route=%s", res.Step, res.Route)
	}
	if res.User.Provider != nil || res.Listing != nil {
		t.Fatalf("client signup must not create provider data")
	}

	u, ok := dev.Session.Current()
	if !ok || u.Name != "Bob" || u.Email != "b@x.com" {
		t.Fatalf("unexpected session: %+v", u)
	}
	if len(dev.Directory.List(ctx)) != 0 {
		t.Fatalf("directory must stay unchanged")
	}

	nav := NewNavigator(domain.Routes)
	dec, _ := nav.Resolve(domain.PathProviderDashboard, u)
	if dec.Redirect != domain.PathAuth {
		t.Fatalf("client must be bounced from /provider, got %+v", dec)
	}
}

func TestAuthService_BothRolesRouteToDirectory(t *testing.T) {
	svc := newTestAuth()
	dev := newTestDevice()
	ctx := context.Background()

	_, err := svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"provider", "client"}, Name: "Cy", Email: "c@x.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("basic info: %v", err)
	}
	res, err := svc.SubmitProviderDetails(ctx, dev, ports.ProviderDetailsInput{})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if res.Route != domain.PathProviders {
		t.Fatalf("expected /providers, got %s", res.Route)
	}
}

func TestAuthService_BasicInfoValidation(t *testing.T) {
	cases := []struct {
		name string
		in   ports.BasicInfoInput
		msg  string
	}{
		{
			name: "short password",
			in:   ports.BasicInfoInput{Roles: []string{"client"}, Name: "A", Email: "a@x.com", Password: "12345"},
			msg:  "Enter name, valid email and password (min 6 chars).",
		},
		{
			name: "no role",
			in:   ports.BasicInfoInput{Name: "A", Email: "a@x.com", Password: "123456"},
			msg:  "Select at least one role.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			dev := newTestDevice()

			_, err := newTestAuth().SubmitBasicInfo(ctx, dev, tc.in)
			if !errors.Is(err, domain.ErrValidation) || err.Error() != tc.msg {
				t.Fatalf("expected %q, got %v", tc.msg, err)
			}
			if _, ok := dev.Session.Current(); ok {
				t.Fatalf("failed signup must not create a session")
			}
		})
	}
}

func TestAuthService_UnknownRoleIsValidationError(t *testing.T) {
	_, err := newTestAuth().SubmitBasicInfo(context.Background(), newTestDevice(), ports.BasicInfoInput{
		Roles: []string{"admin"}, Name: "A", Email: "a@x.com", Password: "123456",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_BackThenResubmit(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()

	_, _ = svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"provider"}, Name: "Alice", Email: "a@x.com", Password: "secret",
	})

	form, err := svc.BackToBasicInfo(ctx, dev)
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if form.Step != domain.StepBasicInfo || form.Name != "Alice" || form.Email != "a@x.com" {
		t.Fatalf("values must survive back: %+v", form)
	}

	// Switching to client-only on resubmit commits without details.
	res, err := svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"client"}, Name: "Alice", Email: "a@x.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if res.Step != domain.StepCommitted || len(dev.Directory.List(ctx)) != 0 {
		t.Fatalf("expected client commit, got %+v", res)
	}
}

func TestAuthService_DetailsWithoutDraft(t *testing.T) {
	_, err := newTestAuth().SubmitProviderDetails(context.Background(), newTestDevice(), ports.ProviderDetailsInput{})
	if !errors.Is(err, domain.ErrNoSignupInProgress) {
		t.Fatalf("expected ErrNoSignupInProgress, got %v", err)
	}

	if _, err := newTestAuth().BackToBasicInfo(context.Background(), newTestDevice()); !errors.Is(err, domain.ErrNoSignupInProgress) {
		t.Fatalf("expected ErrNoSignupInProgress, got %v", err)
	}
}

func TestAuthService_DetailsRejectsUnknownService(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()
	_, _ = svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"provider"}, Name: "Alice", Email: "a@x.com", Password: "secret",
	})

	_, err := svc.SubmitProviderDetails(ctx, dev, ports.ProviderDetailsInput{Services: []string{"Juggler"}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(dev.Directory.List(ctx)) != 0 {
		t.Fatalf("nothing must be listed")
	}
}

// ---------------------------------------------------------------------------
// Login / logout
// ---------------------------------------------------------------------------

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()

	if _, err := svc.Login(ctx, dev, ports.LoginInput{Email: "a@x.com"}); !errors.Is(err, domain.ErrNoAccount) ||
		err.Error() != "No account found. Please sign up." {
		t.Fatalf("expected no account, got %v", err)
	}

	_, _ = svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"client"}, Name: "Bob", Email: "a@x.com", Password: "secret",
	})

	_, err := svc.Login(ctx, dev, ports.LoginInput{Email: "b@x.com", Password: "anything"})
	if !errors.Is(err, domain.ErrEmailMismatch) ||
		err.Error() != "Incorrect email. Try signing up or use the registered email." {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if u, _ := dev.Session.Current(); u.Email != "a@x.com" {
		t.Fatalf("mismatch must leave the session unchanged")
	}

	res, err := svc.Login(ctx, dev, ports.LoginInput{Email: " a@x.com ", Password: "wrong-but-unchecked"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Route != domain.PathClientDashboard || res.User.Name != "Bob" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth()
	dev := newTestDevice()
	_, _ = svc.SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
		Roles: []string{"client"}, Name: "Bob", Email: "a@x.com", Password: "secret",
	})

	if err := svc.Logout(ctx, dev); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := dev.Session.Current(); ok {
		t.Fatalf("session must be cleared")
	}
}

func TestAuthService_CorruptDraftStartsFresh(t *testing.T) {
	for _, raw := range []string{"null", "{}", `{"step":"bogus"}`} {
		t.Run(raw, func(t *testing.T) {
			ctx := context.Background()
			kv := memory.NewKVStore()
			_ = kv.Set(ctx, "dev:"+KeySignupDraft, []byte(raw))
			dev := OpenDevice(ctx, kv, "dev", zerolog.Nop())

			res, err := newTestAuth().SubmitBasicInfo(ctx, dev, ports.BasicInfoInput{
				Roles: []string{"client"}, Name: "Bob", Email: "b@x.com", Password: "secret",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Step != domain.StepCommitted {
				t.Fatalf("expected committed, got %s", res.Step)
			}
		})
	}
}

func TestAuthService_LoginWithIncompleteSessionRecord(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	_ = kv.Set(ctx, "dev:"+KeyUser, []byte(`{"id":1,"name":"A","email":"","roles":["client"]}`))
	dev := OpenDevice(ctx, kv, "dev", zerolog.Nop())

	_, err := newTestAuth().Login(ctx, dev, ports.LoginInput{Email: ""})
	if !errors.Is(err, domain.ErrNoAccount) {
		t.Fatalf("expected no account, got %v", err)
	}
}
