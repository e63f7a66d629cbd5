package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, backend URL, secrets)
// - default: Values common across all environments (timeouts, formats, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Flow    FlowConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type BackendConfig struct {
	BaseURL string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
	APIKey  string        `envconfig:"BACKEND_API_KEY"`
}

// StorageConfig selects the key-value backend used for drafts and guest clients.
type StorageConfig struct {
	Driver       string        `envconfig:"STORAGE_DRIVER" default:"memory"` // memory | postgres | redis
	WriteTimeout time.Duration `envconfig:"STORAGE_WRITE_TIMEOUT" default:"2s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"booking"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"booking"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Amman"`
}

type RedisConfig struct {
	Addr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password  string `envconfig:"REDIS_PASSWORD"`
	DB        int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"booking"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Device-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Amman"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

type JWTConfig struct {
	// Secret shared with the academy backend that issues session tokens.
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	// SessionTokenTTL only applies to tokens minted locally (dev and tests).
	SessionTokenTTL time.Duration `envconfig:"JWT_SESSION_TOKEN_TTL" default:"24h"`
	ResumeSecret    string        `envconfig:"JWT_RESUME_SECRET"`
	ResumeTokenTTL  time.Duration `envconfig:"JWT_RESUME_TOKEN_TTL" default:"1h"`
}

type FlowConfig struct {
	DefaultMode   string        `envconfig:"FLOW_DEFAULT_MODE" default:"guest_checkout"`
	IdleTTL       time.Duration `envconfig:"FLOW_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"FLOW_SWEEP_INTERVAL" default:"1m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// ResumeSigningKey falls back to the session secret when no dedicated key is configured.
func (c JWTConfig) ResumeSigningKey() string {
	if c.ResumeSecret != "" {
		return c.ResumeSecret
	}
	return c.Secret
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Driver:       "memory",
			WriteTimeout: time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Amman",
		},
		Redis: RedisConfig{
			Addr:      "localhost:16379",
			KeyPrefix: "booking-test",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Device-ID"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Amman",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		JWT: JWTConfig{
			Secret:          "test-secret",
			SessionTokenTTL: time.Hour,
			ResumeTokenTTL:  time.Hour,
		},
		Flow: FlowConfig{
			DefaultMode:   "guest_checkout",
			IdleTTL:       30 * time.Minute,
			SweepInterval: time.Minute,
		},
	}
}
