package config

import (
	"net"
	"strconv"
	"time"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Database  DatabaseConfig   `yaml:"database"`
	Storage   StorageConfig    `yaml:"storage"`
	Log       LogConfig        `yaml:"log"`
	List      ListConfig       `yaml:"list"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	CORS      CORSConfig       `yaml:"cors"`
	Audit     AuditConfig      `yaml:"audit"`
	Resources []ResourceConfig `yaml:"resources"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Actor,X-Request-Id"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Message,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// ActorHeader names the request header carrying the acting user.
	ActorHeader string `yaml:"actor_header" env:"SERVER_ACTOR_HEADER" env-default:"X-Actor"`
	// WriteRateLimit caps mutating requests per client per minute; 0 disables it.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"0"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// MigrateOnStart applies embedded migrations before serving.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"DATABASE_MIGRATE_ON_START" env-default:"false"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ListConfig holds list page size bounds.
type ListConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"LIST_DEFAULT_LIMIT" env-default:"25"`
	MaxLimit     int `yaml:"max_limit"     env:"LIST_MAX_LIMIT"     env-default:"200"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// AuditConfig toggles the audit trail listener.
type AuditConfig struct {
	Enabled bool `yaml:"enabled" env:"AUDIT_ENABLED" env-default:"true"`
}

// ResourceConfig declares one entity class and its admin resource.
type ResourceConfig struct {
	Class        string              `yaml:"class"`
	Table        string              `yaml:"table"`
	PrimaryKey   string              `yaml:"primary_key"`
	Columns      []string            `yaml:"columns"`
	RoutePrefix  string              `yaml:"route_prefix"`
	ListFields   []ListFieldConfig   `yaml:"list_fields"`
	SearchFields []string            `yaml:"search_fields"`
	FilterFields []string            `yaml:"filter_fields"`
	FormFields   []FormFieldConfig   `yaml:"form_fields"`
	ShowSections []ShowSectionConfig `yaml:"show_sections"`
	DefaultLimit int                 `yaml:"default_limit"`
}

// ListFieldConfig is one list column.
type ListFieldConfig struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Sortable bool   `yaml:"sortable"`
}

// FormFieldConfig is one editable field.
type FormFieldConfig struct {
	Name       string   `yaml:"name"`
	RequiredIn []string `yaml:"required_in"`
	MaxLength  int      `yaml:"max_length"`
	Choices    []string `yaml:"choices"`
}

// ShowSectionConfig groups fields on the detail view.
type ShowSectionConfig struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Fields      []string `yaml:"fields"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
