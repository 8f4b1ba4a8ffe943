package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinSecretLen is the shortest JWT_SECRET accepted.
const MinSecretLen = 16

// Config holds all runtime configuration values.  It is built once at
// startup and handed to the components that need it; nothing reads the
// environment after that.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	MigrateOnStart bool          // apply embedded migrations before serving
	JWTSecret      string        // HS256 signing secret
	AccessTTL      time.Duration // lifetime of access tokens
	BcryptCost     int           // bcrypt cost for password hashing
	CORSOrigins    []string      // allowed origins for browser clients
	AMQPURL        string        // broker for inbox events; empty disables publishing
	UploadMaxBytes int64         // largest accepted media upload
	S3             S3Config
	Redis          RedisConfig
	RateLimit      RateLimitConfig
}

// S3Config describes the bucket used for media uploads.  An empty Bucket
// disables the upload endpoint.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string // custom endpoint for MinIO and friends; path-style is used when set
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // prefix for returned object URLs
}

// Enabled reports whether uploads are configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration from the process environment.  Missing or
// malformed values cause the program to exit with a fatal log message.
func Load() Config {
	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Parse builds a Config from lookup.  Every problem is reported, not just the
// first one.
func Parse(lookup LookupFunc) (Config, error) {
	e := &source{lookup: lookup}
	cfg := Config{
		Env:            e.must("APP_ENV"),
		Port:           e.must("APP_PORT"),
		DBUser:         e.must("DB_USER"),
		DBPass:         e.str("DB_PASS", ""),
		DBHost:         e.must("DB_HOST"),
		DBPort:         e.must("DB_PORT"),
		DBName:         e.must("DB_NAME"),
		MigrateOnStart: e.boolean("MIGRATE_ON_START", true),
		JWTSecret:      e.must("JWT_SECRET"),
		AccessTTL:      time.Duration(e.number("ACCESS_TOKEN_TTL_MIN", 24*60)) * time.Minute,
		BcryptCost:     e.number("BCRYPT_COST", 12),
		CORSOrigins:    splitList(e.str("CORS_ORIGINS", "*")),
		AMQPURL:        e.str("RABBITMQ_URL", e.str("AMQP_URL", "")),
		UploadMaxBytes: int64(e.number("UPLOAD_MAX_BYTES", 10<<20)),
		S3: S3Config{
			Bucket:        e.str("S3_BUCKET", ""),
			Region:        e.str("S3_REGION", "us-east-1"),
			Endpoint:      e.str("S3_ENDPOINT", ""),
			AccessKey:     e.str("S3_ACCESS_KEY", ""),
			SecretKey:     e.str("S3_SECRET_KEY", ""),
			PublicBaseURL: strings.TrimRight(e.str("S3_PUBLIC_BASE_URL", ""), "/"),
		},
		Redis:     loadRedis(e),
		RateLimit: loadRateLimit(e),
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < MinSecretLen {
		e.fail(fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLen))
	}
	if cfg.AccessTTL <= 0 {
		e.fail(errors.New("ACCESS_TOKEN_TTL_MIN must be positive"))
	}
	if cfg.UploadMaxBytes <= 0 {
		e.fail(errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// source wraps a LookupFunc and collects errors while fields are read.
type source struct {
	lookup LookupFunc
	errs   []error
}

func (s *source) fail(err error) { s.errs = append(s.errs, err) }

// must retrieves a required variable.  Unset and empty are both missing.
func (s *source) must(key string) string {
	v, ok := s.lookup(key)
	if !ok || v == "" {
		s.fail(fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

func (s *source) str(key, def string) string {
	if v, ok := s.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (s *source) number(key string, def int) int {
	v := s.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.fail(fmt.Errorf("invalid int for %s: %q", key, v))
		return def
	}
	return n
}

func (s *source) boolean(key string, def bool) bool {
	switch strings.ToLower(s.str(key, "")) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	s.fail(fmt.Errorf("invalid bool for %s", key))
	return def
}

func (s *source) dur(key string, def time.Duration) time.Duration {
	v := s.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		s.fail(fmt.Errorf("invalid duration for %s: %q", key, v))
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
