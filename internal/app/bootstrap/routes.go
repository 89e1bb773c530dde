// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	donationsfeature "github.com/carebridge/carebridge/internal/app/features/donations"
	healthfeature "github.com/carebridge/carebridge/internal/app/features/health"
	issuesfeature "github.com/carebridge/carebridge/internal/app/features/issues"
	leaderboardfeature "github.com/carebridge/carebridge/internal/app/features/leaderboard"
	opportunitiesfeature "github.com/carebridge/carebridge/internal/app/features/opportunities"
	paymentsfeature "github.com/carebridge/carebridge/internal/app/features/payments"
	requestsfeature "github.com/carebridge/carebridge/internal/app/features/requests"
	sessionfeature "github.com/carebridge/carebridge/internal/app/features/session"
	uploadsfeature "github.com/carebridge/carebridge/internal/app/features/uploads"
	"github.com/carebridge/carebridge/internal/app/system/identity"
	"github.com/carebridge/carebridge/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. CareBridge builds the identity
// provider, the allocation coordinator, and mounts JSON feature routers
// for every resource area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	provider, err := identity.NewProvider(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("identity provider init failed", zap.Error(err))
		return nil, err
	}

	coord := coordinator.New(deps.Store, logger, coordinator.Config{
		InFilterLimit:     appCfg.InFilterLimit,
		VisibleIssueLimit: appCfg.VisibleIssueLimit,
		ListLimit:         appCfg.ListLimit,
	})

	r := chi.NewRouter()

	// Global middleware: loads the actor into context if signed in.
	r.Use(provider.LoadActor)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded images, served straight from local storage
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// The session exchange and the payment relay are the only
	// unauthenticated write endpoints; both are rate limited per IP.
	unauthLimit := ratelimit.New(30, time.Minute)

	// Session exchange and actor overview
	sessionHandler := sessionfeature.NewHandler(coord, provider, logger)
	r.With(unauthLimit.Middleware).Mount("/session", sessionfeature.Routes(sessionHandler))

	// Issue reporting and review
	issuesHandler := issuesfeature.NewHandler(coord, logger)
	r.Mount("/issues", issuesfeature.Routes(issuesHandler))

	// Volunteer opportunities and seat allocation
	oppsHandler := opportunitiesfeature.NewHandler(coord, logger)
	r.Mount("/opportunities", opportunitiesfeature.Routes(oppsHandler))

	// Food donations and exclusive claims
	donationsHandler := donationsfeature.NewHandler(coord, logger)
	r.Mount("/donations", donationsfeature.Routes(donationsHandler))

	// NGO food requests
	requestsHandler := requestsfeature.NewHandler(coord, logger)
	r.Mount("/requests", requestsfeature.Routes(requestsHandler))

	// Public leaderboards
	leaderboardHandler := leaderboardfeature.NewHandler(coord, logger)
	r.Mount("/leaderboard", leaderboardfeature.Routes(leaderboardHandler))

	// Payment confirmation relay (signature-authenticated)
	paymentsHandler := paymentsfeature.NewHandler(coord, appCfg.PaymentWebhookSecret, logger)
	r.With(unauthLimit.Middleware).Mount("/payments", paymentsfeature.Routes(paymentsHandler))

	// Image uploads
	uploadsHandler := uploadsfeature.NewHandler(deps.Objects, logger)
	r.Mount("/uploads", uploadsfeature.Routes(uploadsHandler))

	return r, nil
}
