// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, request limits); AppConfig is everything specific to
// CareBridge. The struct is passed to most lifecycle hooks, so any
// configuration needed during startup, request handling, or shutdown
// lives here.
type AppConfig struct {
	// Document store configuration
	StoreBackend  string // "mongo" or "memory" (memory is for local dev and tests)
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: carebridge-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Payment webhook configuration
	PaymentWebhookSecret string // HMAC secret for payment confirmation callbacks (blank disables verification)

	// File storage configuration
	StorageLocalPath string // Local storage path for uploaded images
	StorageLocalURL  string // URL prefix for serving local files

	// Allocation engine tuning
	InFilterLimit     int // Max values per multi-value equality filter sent to the store
	VisibleIssueLimit int // Cap on the merged NGO visible-issue feed
	ListLimit         int // Cap on plain listing queries
}
