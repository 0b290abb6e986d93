package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REMOTE_DRIVER", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("UPLOAD_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverMemory, cfg.RemoteDriver())
	assert.Equal(t, UploadInline, cfg.Upload.Driver)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "Asia/Kathmandu", cfg.Location().String())
	assert.False(t, cfg.EmailEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://srbeng.com, ,https://admin.srbeng.com")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("EMAILJS_SERVICE_ID", "svc")
	t.Setenv("EMAILJS_TEMPLATE_ID", "tpl")
	t.Setenv("PROXY_RATE_PER_SEC", "2.5")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("UPLOAD_S3_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://srbeng.com", "https://admin.srbeng.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://abc.supabase.co", cfg.Remote.SupabaseURL)
	assert.Equal(t, DriverPostgREST, cfg.RemoteDriver())
	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, 2.5, cfg.Proxy.RatePerSecond)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.Upload.S3PathStyle)
}

func TestRemoteDriverAuto(t *testing.T) {
	tests := []struct {
		name   string
		remote RemoteConfig
		want   string
	}{
		{"nothing set", RemoteConfig{Driver: DriverAuto}, DriverMemory},
		{"url without key stays local", RemoteConfig{Driver: DriverAuto, SupabaseURL: "https://x"}, DriverMemory},
		{"hosted", RemoteConfig{Driver: DriverAuto, SupabaseURL: "https://x", SupabaseAnonKey: "k"}, DriverPostgREST},
		{"dsn", RemoteConfig{Driver: DriverAuto, DSN: "postgres://x"}, DriverPostgres},
		{"sqlite", RemoteConfig{Driver: DriverAuto, SQLitePath: "site.db"}, DriverSQLite},
		{"forced", RemoteConfig{Driver: DriverMemory, DSN: "postgres://x"}, DriverMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Remote: tt.remote}
			assert.Equal(t, tt.want, cfg.RemoteDriver())
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			App:    AppConfig{Timezone: "UTC"},
			Remote: RemoteConfig{Driver: DriverAuto},
			Upload: UploadConfig{Driver: UploadInline},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no port", func(c *Config) { c.Server.Port = "" }, "PORT"},
		{"postgrest without key", func(c *Config) { c.Remote.Driver = DriverPostgREST; c.Remote.SupabaseURL = "https://x" }, "SUPABASE_ANON_KEY"},
		{"postgres without dsn", func(c *Config) { c.Remote.Driver = DriverPostgres }, "DB_DSN"},
		{"sqlite without path", func(c *Config) { c.Remote.Driver = DriverSQLite }, "SQLITE_PATH"},
		{"unknown driver", func(c *Config) { c.Remote.Driver = "mongo" }, "REMOTE_DRIVER"},
		{"s3 without bucket", func(c *Config) { c.Upload.Driver = UploadS3 }, "UPLOAD_S3_BUCKET"},
		{"unknown upload driver", func(c *Config) { c.Upload.Driver = "ftp" }, "UPLOAD_DRIVER"},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, "SITE_TIMEZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
