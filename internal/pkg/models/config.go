package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	Services ServicesConfig
	APIKey   APIKeyConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Tracking TrackingConfig
}

// ServicesConfig contains URLs for other microservices
type ServicesConfig struct {
	UserServiceURL string
}

// APIKeyConfig holds the keys this service presents to its siblings
type APIKeyConfig struct {
	UserService string
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// IsDevelopment reports whether error details may be exposed to clients
func (a AppConfig) IsDevelopment() bool {
	return a.Environment == "development" || a.Environment == "local"
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration.
// An empty URL keeps broadcasts inside the current process.
type NATSConfig struct {
	URL string
}

// NSQConfig contains the nsqd address used for lifecycle event export
type NSQConfig struct {
	Address string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// TrackingConfig contains tracking specific tunables
type TrackingConfig struct {
	DefaultVehicleType string
	MaxRadiusMeters    float64
	ClientSendBuffer   int
	ProfileTimeoutSec  int
}
