package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/nasermirzaei89/env"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout      = 30
	defaultAddress      = ":9090"
	defaultCacheDB      = 0
	defaultCacheTTL     = 30
	defaultBloomBitSize = 10000000
	defaultDatabasePort = "3306"
	defaultDatabaseTZ   = "Local"
	DriverMySQL         = "mysql"
	DriverPostgres      = "postgres"
	LogFormatJSON       = "json"
	LogFormatText       = "text"
)

type Database struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Pass     string
	Name     string
	TimeZone string
}

type Cache struct {
	Host string
	Port string
	Pass string
	DB   int
	TTL  time.Duration
}

type Bloom struct {
	Enabled bool
	BitSize uint64
}

type Config struct {
	Address            string
	ContextTimeout     time.Duration
	Database           Database
	Cache              Cache
	Bloom              Bloom
	JWTSecret          string
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds the config from environment variables, falling back to
// defaults for missing or malformed values.
func FromEnv() *Config {
	return &Config{
		Address:        env.GetString("SERVER_ADDRESS", defaultAddress),
		ContextTimeout: time.Duration(getInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		Database: Database{
			Driver:   env.GetString("DATABASE_DRIVER", DriverMySQL),
			Host:     env.GetString("DATABASE_HOST", "localhost"),
			Port:     env.GetString("DATABASE_PORT", defaultDatabasePort),
			User:     env.GetString("DATABASE_USER", "root"),
			Pass:     env.GetString("DATABASE_PASS", ""),
			Name:     env.GetString("DATABASE_NAME", "blog"),
			TimeZone: env.GetString("DATABASE_TIMEZONE", defaultDatabaseTZ),
		},
		Cache: Cache{
			Host: env.GetString("CACHE_HOST", "localhost"),
			Port: env.GetString("CACHE_PORT", "6379"),
			Pass: env.GetString("CACHE_PASS", ""),
			DB:   getInt("CACHE_DB", defaultCacheDB),
			TTL:  time.Duration(getInt("COMMENT_CACHE_TTL_SECONDS", defaultCacheTTL)) * time.Second,
		},
		Bloom: Bloom{
			Enabled: env.GetBool("BLOOM_FILTER_ENABLED", true),
			BitSize: getUint("BLOOM_FILTER_SIZE", defaultBloomBitSize),
		},
		JWTSecret:          env.GetString("JWT_SECRET", ""),
		CORSAllowedOrigins: env.GetStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:           env.GetString("LOG_LEVEL", "info"),
		LogFormat:          env.GetString("LOG_FORMAT", LogFormatText),
	}
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return errors.New("DATABASE_DRIVER must be mysql or postgres")
	}
	return nil
}

// SetupLogger applies the log level and format to the logrus standard logger.
func (c *Config) SetupLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if c.LogFormat == LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func getInt(key string, def int) int {
	s := env.GetString(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}

func getUint(key string, def uint64) uint64 {
	s := env.GetString(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}
