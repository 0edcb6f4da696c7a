package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
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
	Env          string `envconfig:"MENUDIGITAL_APP_ENV" required:"true"`
	Port         string `envconfig:"MENUDIGITAL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MENUDIGITAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MENUDIGITAL_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"MENUDIGITAL_DB_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MENUDIGITAL_DB_DSN"`
	Driver string `envconfig:"MENUDIGITAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MENUDIGITAL_DB_HOST"`
	LegacyPort     int    `envconfig:"MENUDIGITAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MENUDIGITAL_DB_USER"`
	LegacyPassword string `envconfig:"MENUDIGITAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"MENUDIGITAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"MENUDIGITAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MENUDIGITAL_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MENUDIGITAL_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MENUDIGITAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MENUDIGITAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MENUDIGITAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MENUDIGITAL_REDIS_ADDR"`
	Password     string        `envconfig:"MENUDIGITAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"MENUDIGITAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MENUDIGITAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MENUDIGITAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MENUDIGITAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MENUDIGITAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MENUDIGITAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MENUDIGITAL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MENUDIGITAL_JWT_ISSUER" default:"menudigital"`
	SessionTTLMinutes int    `envconfig:"MENUDIGITAL_SESSION_TTL_MINUTES" default:"10080"`
}

// SessionTTL returns the admin session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MENUDIGITAL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MENUDIGITAL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MENUDIGITAL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MENUDIGITAL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MENUDIGITAL_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	RefreshInterval time.Duration `envconfig:"MENUDIGITAL_CATALOG_REFRESH_INTERVAL" default:"1m"`
	LoadTimeout     time.Duration `envconfig:"MENUDIGITAL_CATALOG_LOAD_TIMEOUT" default:"10s"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"MENUDIGITAL_CART_TTL" default:"4h"`
}

// RateLimitConfig throttles credential attempts. A zero window or limit
// disables the check.
type RateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"MENUDIGITAL_LOGIN_RATE_WINDOW" default:"1m"`
	LoginIPLimit int64         `envconfig:"MENUDIGITAL_LOGIN_RATE_IP_LIMIT" default:"10"`
}

// AdminConfig bootstraps the first back-office user. The seed only runs
// when a password is provided and no admins exist yet.
type AdminConfig struct {
	BootstrapUsername string `envconfig:"MENUDIGITAL_ADMIN_USERNAME" default:"admin"`
	BootstrapPassword string `envconfig:"MENUDIGITAL_ADMIN_PASSWORD"`
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
