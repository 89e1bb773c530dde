// Package identity realizes the external Identity/Role Provider as a
// signed session cookie. The core trusts what the provider says — the
// actor ID, role, and display name — and performs no authentication of
// its own.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/carebridge/carebridge/internal/domain/models"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey      = "is_authenticated"
	actorIDKey     = "actor_id"
	actorNameKey   = "actor_name"
	actorRoleKey   = "actor_role"
	minKeyLength   = 32
	sessionMaxAge  = 7 * 24 * 60 * 60
	cookieSameSite = http.SameSiteLaxMode
)

// Actor is the authenticated identity attached to a request. Exactly
// one role per actor.
type Actor struct {
	ID          string
	Role        models.Role
	DisplayName string
}

type ctxKey struct{}

// Provider reads and writes the session cookie that carries the actor.
type Provider struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewProvider builds a cookie-backed provider. The signing key must be
// at least 32 bytes; secure should be true outside development.
func NewProvider(signingKey, cookieName, domain string, secure bool, logger *zap.Logger) (*Provider, error) {
	if len(signingKey) < minKeyLength {
		return nil, fmt.Errorf("identity: session key must be at least %d bytes", minKeyLength)
	}
	store := sessions.NewCookieStore([]byte(signingKey))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: cookieSameSite,
	}
	return &Provider{store: store, name: cookieName, log: logger}, nil
}

// CurrentActor returns the actor injected by LoadActor, if any.
func CurrentActor(r *http.Request) (Actor, bool) {
	a, ok := r.Context().Value(ctxKey{}).(Actor)
	return a, ok
}

// WithActor returns a request carrying the given actor. Exported for
// handler tests.
func WithActor(r *http.Request, a Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, a))
}

// LoadActor injects the session's actor into the request context when
// the session is authenticated and carries a valid role.
func (p *Provider) LoadActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := p.store.Get(r, p.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			a := Actor{
				ID:          getString(sess, actorIDKey),
				Role:        models.Role(strings.ToLower(getString(sess, actorRoleKey))),
				DisplayName: getString(sess, actorNameKey),
			}
			if a.ID != "" && models.ValidRole(a.Role) {
				r = WithActor(r, a)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireActor rejects requests with no authenticated actor.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentActor(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn writes the actor into the session cookie. Called by whatever
// front door exchanges the upstream provider's assertion for a session.
func (p *Provider) SignIn(w http.ResponseWriter, r *http.Request, a Actor) error {
	sess, _ := p.store.Get(r, p.name)
	sess.Values[isAuthKey] = true
	sess.Values[actorIDKey] = a.ID
	sess.Values[actorNameKey] = a.DisplayName
	sess.Values[actorRoleKey] = string(a.Role)
	if err := sess.Save(r, w); err != nil {
		p.log.Error("identity: session save failed", zap.Error(err))
		return err
	}
	return nil
}

// SignOut clears the session.
func (p *Provider) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := p.store.Get(r, p.name)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}
