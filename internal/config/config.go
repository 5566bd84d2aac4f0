package config

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port int

	DB DBConfig

	// AdminPassword is the shared secret expected in AdminHeader on protected paths.
	// Empty means admin access is not configured and protected paths fail closed.
	AdminPassword string
	AdminHeader   string

	SchemaCacheTTL     time.Duration
	CORSAllowedOrigins []string
	MaxBodyBytes       int64

	OTLPEndpoint     string
	ServiceName      string
	TraceSampleRatio float64
}

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SocketPath   string
	SSLMode      string
	MaxConns     int32
	QueryTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", 3001)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "devjobs")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "devjobs")
	v.SetDefault("DB_SOCKET_PATH", "")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_QUERY_TIMEOUT", "3s")

	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_HEADER", "X-Admin")

	v.SetDefault("SCHEMA_CACHE_TTL", "5m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)

	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("SERVICE_NAME", "devjobs-api")
	v.SetDefault("OTEL_TRACES_SAMPLER_RATIO", 1.0)
}

// NewViper returns a viper instance reading the process environment, after an
// optional .env file has been loaded into it.
func NewViper() *viper.Viper {
	// a missing .env is fine, the environment may be set elsewhere
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return v
}

func Load() Config {
	return FromViper(NewViper())
}

func FromViper(v *viper.Viper) Config {
	return Config{
		Env:  v.GetString("APP_ENV"),
		Port: v.GetInt("PORT"),
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SocketPath:   v.GetString("DB_SOCKET_PATH"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxConns:     int32(v.GetInt("DB_MAX_CONNS")),
			QueryTimeout: v.GetDuration("DB_QUERY_TIMEOUT"),
		},
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
		AdminHeader:        v.GetString("ADMIN_HEADER"),
		SchemaCacheTTL:     v.GetDuration("SCHEMA_CACHE_TTL"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
		OTLPEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:        v.GetString("SERVICE_NAME"),
		TraceSampleRatio:   v.GetFloat64("OTEL_TRACES_SAMPLER_RATIO"),
	}
}

// URL builds the pgx connection string. With a socket path set, the host is
// the socket directory, which pgx understands as a unix socket.
func (c DBConfig) URL() string {
	return c.url("postgres")
}

// MigrateURL is the same connection string under the golang-migrate pgx/v5 scheme.
func (c DBConfig) MigrateURL() string {
	return c.url("pgx5")
}

func (c DBConfig) url(scheme string) string {
	u := &url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.User, c.Password),
		Path:   "/" + c.Name,
	}

	q := url.Values{}
	q.Set("sslmode", c.SSLMode)

	if c.SocketPath != "" {
		u.Host = ""
		q.Set("host", c.SocketPath)
		q.Set("port", strconv.Itoa(c.Port))
	} else {
		u.Host = c.Host + ":" + strconv.Itoa(c.Port)
	}

	u.RawQuery = q.Encode()

	return u.String()
}

func (c Config) AdminConfigured() bool {
	return c.AdminPassword != ""
}

func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, duration)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
