package identity

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carebridge/carebridge/internal/domain/models"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewProvider_RejectsShortKey(t *testing.T) {
	if _, err := NewProvider("short", "cb", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for short signing key")
	}
	if _, err := NewProvider(testKey, "cb", "", false, zap.NewNop()); err != nil {
		t.Errorf("32-byte key rejected: %v", err)
	}
}

func TestSignInLoadActorRoundTrip(t *testing.T) {
	p, err := NewProvider(testKey, "cb-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	signInReq := httptest.NewRequest(http.MethodPost, "/session", nil)
	actor := Actor{ID: "actor-1", Role: models.RoleVolunteer, DisplayName: "Vol One"}
	if err := p.SignIn(rec, signInReq, actor); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// Replay the cookie through the middleware.
	var got Actor
	var ok bool
	h := p.LoadActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = CurrentActor(r)
	}))
	next := httptest.NewRequest(http.MethodGet, "/issues/visible", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), next)

	if !ok {
		t.Fatal("expected actor in context")
	}
	if got.ID != "actor-1" || got.Role != models.RoleVolunteer || got.DisplayName != "Vol One" {
		t.Errorf("round-tripped actor mismatch: %+v", got)
	}
}

func TestLoadActor_IgnoresTamperedCookie(t *testing.T) {
	p, err := NewProvider(testKey, "cb-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	called := false
	h := p.LoadActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := CurrentActor(r); ok {
			t.Error("tampered cookie must not produce an actor")
		}
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "cb-session", Value: strings.Repeat("x", 64)})
	h.ServeHTTP(httptest.NewRecorder(), r)

	if !called {
		t.Error("middleware must pass the request through")
	}
}

func TestRequireActor(t *testing.T) {
	h := RequireActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request: expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r := WithActor(httptest.NewRequest(http.MethodGet, "/", nil), Actor{ID: "a", Role: models.RoleCitizen})
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusNoContent {
		t.Errorf("authenticated request: expected 204, got %d", rec.Code)
	}
}
