package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
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
	Env          string `envconfig:"DISHPATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"DISHPATCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DISHPATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DISHPATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DISHPATCH_DB_DSN"`
	Driver string `envconfig:"DISHPATCH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DISHPATCH_DB_HOST"`
	LegacyPort     int    `envconfig:"DISHPATCH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DISHPATCH_DB_USER"`
	LegacyPassword string `envconfig:"DISHPATCH_DB_PASSWORD"`
	LegacyName     string `envconfig:"DISHPATCH_DB_NAME"`
	LegacySSLMode  string `envconfig:"DISHPATCH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DISHPATCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DISHPATCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DISHPATCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DISHPATCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DISHPATCH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DISHPATCH_REDIS_ADDR"`
	Password     string        `envconfig:"DISHPATCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"DISHPATCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DISHPATCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DISHPATCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DISHPATCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DISHPATCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DISHPATCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DISHPATCH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DISHPATCH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DISHPATCH_JWT_EXPIRATION_MINUTES" required:"true"`
}

// CartConfig tunes the cart engine's concurrency controls.
type CartConfig struct {
	LockTTL        time.Duration `envconfig:"DISHPATCH_CART_LOCK_TTL" default:"10s"`
	LockRetryDelay time.Duration `envconfig:"DISHPATCH_CART_LOCK_RETRY_DELAY" default:"25ms"`
	LockAttempts   int           `envconfig:"DISHPATCH_CART_LOCK_ATTEMPTS" default:"40"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DISHPATCH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DISHPATCH_AUTO_MIGRATE" default:"false"`
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
