package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Remote drivers understood by REMOTE_DRIVER.
const (
	DriverAuto      = "auto"
	DriverMemory    = "memory"
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// Upload drivers understood by UPLOAD_DRIVER.
const (
	UploadInline     = "inline"
	UploadFilesystem = "fs"
	UploadS3         = "s3"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Remote  RemoteConfig
	Redis   RedisConfig
	Email   EmailConfig
	Upload  UploadConfig
	Admin   AdminConfig
	Proxy   ProxyConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
	Timezone    string
}

// RemoteConfig selects the table backend. SupabaseURL + SupabaseAnonKey is the
// hosted PostgREST flavour; DSN talks to Postgres directly; SQLitePath keeps the
// tables in a single local file.
type RemoteConfig struct {
	Driver          string
	SupabaseURL     string
	SupabaseAnonKey string
	DSN             string
	SQLitePath      string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmailConfig struct {
	ServiceID      string
	TemplateID     string
	PublicKey      string
	PrivateKey     string
	FromEmail      string
	RecipientEmail string
	APIURL         string
}

type UploadConfig struct {
	Driver       string
	FSRoot       string
	PublicBase   string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3PathStyle  bool
	MaxSizeBytes int64
}

type AdminConfig struct {
	Email  string
	PWCode string
}

type ProxyConfig struct {
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
	AllowPrivate  bool
}

type SessionConfig struct {
	TTL       time.Duration
	SweepCron string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", ""),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Timezone:    getEnv("SITE_TIMEZONE", "Asia/Kathmandu"),
		},
		Remote: RemoteConfig{
			Driver:          strings.ToLower(getEnv("REMOTE_DRIVER", DriverAuto)),
			SupabaseURL:     strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
			DSN:             getEnv("DB_DSN", ""),
			SQLitePath:      getEnv("SQLITE_PATH", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			ServiceID:      getEnv("EMAILJS_SERVICE_ID", ""),
			TemplateID:     getEnv("EMAILJS_TEMPLATE_ID", ""),
			PublicKey:      getEnv("EMAILJS_PUBLIC_KEY", ""),
			PrivateKey:     getEnv("EMAILJS_PRIVATE_KEY", ""),
			FromEmail:      getEnv("EMAILJS_FROM_EMAIL", "noreply@srbeng.com"),
			RecipientEmail: getEnv("EMAILJS_RECIPIENT_EMAIL", "info@srbeng.com"),
			APIURL:         strings.TrimRight(getEnv("EMAILJS_API_URL", "https://api.emailjs.com"), "/"),
		},
		Upload: UploadConfig{
			Driver:       strings.ToLower(getEnv("UPLOAD_DRIVER", UploadInline)),
			FSRoot:       getEnv("UPLOAD_FS_ROOT", "uploads"),
			PublicBase:   strings.TrimRight(getEnv("UPLOAD_PUBLIC_BASE", "/uploads"), "/"),
			S3Bucket:     getEnv("UPLOAD_S3_BUCKET", ""),
			S3Region:     getEnv("UPLOAD_S3_REGION", "us-east-1"),
			S3Endpoint:   getEnv("UPLOAD_S3_ENDPOINT", ""),
			S3PathStyle:  getEnvAsBool("UPLOAD_S3_PATH_STYLE", false),
			MaxSizeBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		Admin: AdminConfig{
			Email:  getEnv("ADMIN_EMAIL", ""),
			PWCode: getEnv("ADMIN_PW_CODE", ""),
		},
		Proxy: ProxyConfig{
			RatePerSecond: getEnvAsFloat("PROXY_RATE_PER_SEC", 10),
			Burst:         getEnvAsInt("PROXY_BURST", 20),
			Timeout:       time.Duration(getEnvAsInt("PROXY_TIMEOUT_SECONDS", 15)) * time.Second,
			AllowPrivate:  getEnvAsBool("PROXY_ALLOW_PRIVATE", false),
		},
		Session: SessionConfig{
			TTL:       time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
			SweepCron: getEnv("SESSION_SWEEP_CRON", "0 0 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Remote.Driver {
	case DriverAuto, DriverMemory:
	case DriverPostgREST:
		if c.Remote.SupabaseURL == "" || c.Remote.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required for REMOTE_DRIVER=postgrest")
		}
	case DriverPostgres:
		if c.Remote.DSN == "" {
			return fmt.Errorf("DB_DSN is required for REMOTE_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.Remote.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for REMOTE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unknown REMOTE_DRIVER %q", c.Remote.Driver)
	}

	switch c.Upload.Driver {
	case UploadInline, UploadFilesystem:
	case UploadS3:
		if c.Upload.S3Bucket == "" {
			return fmt.Errorf("UPLOAD_S3_BUCKET is required for UPLOAD_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_DRIVER %q", c.Upload.Driver)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid SITE_TIMEZONE %q: %w", c.App.Timezone, err)
	}

	return nil
}

// RemoteDriver resolves DriverAuto to a concrete driver. The hosted backend is
// only used when both its URL and anonymous key are present.
func (c *Config) RemoteDriver() string {
	if c.Remote.Driver != DriverAuto {
		return c.Remote.Driver
	}
	switch {
	case c.Remote.SupabaseURL != "" && c.Remote.SupabaseAnonKey != "":
		return DriverPostgREST
	case c.Remote.DSN != "":
		return DriverPostgres
	case c.Remote.SQLitePath != "":
		return DriverSQLite
	default:
		return DriverMemory
	}
}

// EmailEnabled reports whether contact-form email delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.ServiceID != "" && c.Email.TemplateID != ""
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Location returns the timezone used for date-sensitive statistics.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
