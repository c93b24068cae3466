package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TACOCREW_DB_DSN"
	EnvDBHost = "TACOCREW_DB_HOST"
	EnvDBUser = "TACOCREW_DB_USER"
	EnvDBName = "TACOCREW_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TACOCREW_APP_ENV" required:"true"`
	Port         string `envconfig:"TACOCREW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TACOCREW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TACOCREW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"TACOCREW_DB_DSN"`

	LegacyHost     string `envconfig:"TACOCREW_DB_HOST"`
	LegacyPort     int    `envconfig:"TACOCREW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TACOCREW_DB_USER"`
	LegacyPassword string `envconfig:"TACOCREW_DB_PASSWORD"`
	LegacyName     string `envconfig:"TACOCREW_DB_NAME"`
	LegacySSLMode  string `envconfig:"TACOCREW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TACOCREW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TACOCREW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TACOCREW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TACOCREW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TACOCREW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TACOCREW_REDIS_ADDR"`
	Password     string        `envconfig:"TACOCREW_REDIS_PASSWORD"`
	DB           int           `envconfig:"TACOCREW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TACOCREW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TACOCREW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TACOCREW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TACOCREW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TACOCREW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TACOCREW_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TACOCREW_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TACOCREW_JWT_EXPIRATION_MINUTES" default:"43200"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type RateLimitConfig struct {
	CreateUserWindow  time.Duration `envconfig:"TACOCREW_RATE_LIMIT_CREATE_USER_WINDOW" default:"1m"`
	CreateUserIPLimit int           `envconfig:"TACOCREW_RATE_LIMIT_CREATE_USER_IP_LIMIT" default:"10"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"TACOCREW_CRON_INTERVAL" default:"5m"`
	LockTTL  time.Duration `envconfig:"TACOCREW_CRON_LOCK_TTL" default:"4m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TACOCREW_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
