package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Document store. Empty DatabaseURL selects the in-memory store.
	DatabaseURL     string
	DatabaseName    string
	DBConnTimeout   time.Duration
	DBMaxConns      int32
	DBMinConns      int32
	DBMaxConnLife   time.Duration
	DatabaseURLSet  bool
	DatabaseNameSet bool

	// Redis (rate limits and sessions); empty addr disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated; empty allows every origin

	// RabbitMQ; empty URL disables the mail queue
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	MailSendEnabled    bool
	ContactNotifyEmail string

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool

	// Per-route request limits; enforced only when Redis is configured
	RateLimits RateLimits
}

// RateLimit allows Max requests per Window. Max <= 0 disables the limit.
type RateLimit struct {
	Max    int
	Window time.Duration
}

// RateLimits holds the limit for each rate-limited route group.
type RateLimits struct {
	Signup  RateLimit // POST /api/auth/signup, per IP
	Login   RateLimit // POST /api/auth/login, per IP
	Refresh RateLimit // POST /api/auth/refresh, per IP
	Session RateLimit // GET /api/auth/me, POST /api/auth/logout, per user
	Blogs   RateLimit // GET /api/blogs, per IP
	Contact RateLimit // POST /api/contact, per IP
	Schema  RateLimit // GET /schema, per public IP
	Debug   RateLimit // GET /api/debug/vars, per IP
}

// DefaultRateLimits are the limits used when no RATE_LIMIT_* variable is set.
func DefaultRateLimits() RateLimits {
	perMin := func(n int) RateLimit { return RateLimit{Max: n, Window: time.Minute} }
	return RateLimits{
		Signup:  perMin(10),
		Login:   perMin(10),
		Refresh: perMin(60),
		Session: perMin(120),
		Blogs:   perMin(120),
		Contact: perMin(5),
		Schema:  perMin(60),
		Debug:   perMin(120),
	}
}

func loadRateLimits() RateLimits {
	def := DefaultRateLimits()
	window := getdur("RATE_LIMIT_WINDOW", time.Minute)
	lim := func(key string, d RateLimit) RateLimit {
		return RateLimit{Max: getint(key, d.Max), Window: window}
	}
	return RateLimits{
		Signup:  lim("RATE_LIMIT_SIGNUP", def.Signup),
		Login:   lim("RATE_LIMIT_LOGIN", def.Login),
		Refresh: lim("RATE_LIMIT_REFRESH", def.Refresh),
		Session: lim("RATE_LIMIT_SESSION", def.Session),
		Blogs:   lim("RATE_LIMIT_BLOGS", def.Blogs),
		Contact: lim("RATE_LIMIT_CONTACT", def.Contact),
		Schema:  lim("RATE_LIMIT_SCHEMA", def.Schema),
		Debug:   lim("RATE_LIMIT_DEBUG", def.Debug),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isset(key string) bool {
	return os.Getenv(key) != ""
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "saas-landing-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8000"),
		GinMode: getenv("GIN_MODE", "release"),

		DatabaseURL:     getenv("DATABASE_URL", ""),
		DatabaseName:    getenv("DATABASE_NAME", "landing"),
		DBConnTimeout:   getdur("DB_CONNECT_TIMEOUT", 10*time.Second),
		DBMaxConns:      int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:      int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife:   getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		DatabaseURLSet:  isset("DATABASE_URL"),
		DatabaseNameSet: isset("DATABASE_NAME"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTAccessSecret:  getenv("JWT_ACCESS_SECRET", "devaccesssecret"),
		JWTRefreshSecret: getenv("JWT_REFRESH_SECRET", "devrefreshsecret"),
		AccessTTL:        getdur("JWT_ACCESS_TTL", time.Hour),
		RefreshTTL:       getdur("JWT_REFRESH_TTL", 168*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		MailSendEnabled:    getbool("MAIL_SEND_ENABLED", true),
		ContactNotifyEmail: getenv("CONTACT_NOTIFY_EMAIL", ""),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),
		HTTPLogEnabled:      getbool("HTTP_LOG_ENABLED", false),

		RateLimits: loadRateLimits(),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// MailQueueEnabled reports whether email jobs should be published.
func (c *Config) MailQueueEnabled() bool {
	return c.MailSendEnabled && c.RabbitMQURL != "" && c.RabbitMQEmailQueue != ""
}
