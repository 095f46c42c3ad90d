package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"    validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth"        validate:"required"`
	Persistence PersistenceConfig `mapstructure:"persistence" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings for the single-operator API.
// OperatorPasswordHash is a bcrypt hash; the matching password is exchanged
// for a bearer token at the login endpoint.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	OperatorPasswordHash string `mapstructure:"operator_password_hash" validate:"required"`
}

// PersistenceConfig controls whole-snapshot persistence: the snapshot row
// name and the debounce window that coalesces bursts of edits into one
// write.
type PersistenceConfig struct {
	SnapshotName   string `mapstructure:"snapshot_name"   validate:"required"`
	DebounceMillis int    `mapstructure:"debounce_millis" validate:"required,gt=0"`
}
