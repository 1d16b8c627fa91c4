package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "SESSION_SECRET", "PASSWORD_STORAGE",
	"GOOGLE_API_KEY", "GEMINI_MODEL", "AI_REQUEST_TIMEOUT",
	"USER_STORE", "USER_DATA_FILE",
	"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_USERS_KEY",
	"DATABASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, defaultSessionSecret, cfg.SessionSecret)
	assert.Equal(t, PasswordStorageBcrypt, cfg.PasswordStorage)
	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	assert.Zero(t, cfg.AIRequestTimeout)
	assert.Equal(t, UserStoreFile, cfg.UserStore)
	assert.Equal(t, "users.json", cfg.UserDataFile)
}

func TestLoadConfig_MissingAPIKeyIsNotFatal(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.GoogleAPIKey)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("GOOGLE_API_KEY", "key-123")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("AI_REQUEST_TIMEOUT", "45s")
	t.Setenv("PASSWORD_STORAGE", "PLAIN")
	t.Setenv("USER_DATA_FILE", "/tmp/users.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "key-123", cfg.GoogleAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 45*time.Second, cfg.AIRequestTimeout)
	assert.Equal(t, PasswordStoragePlain, cfg.PasswordStorage)
	assert.Equal(t, "/tmp/users.json", cfg.UserDataFile)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"privileged port", map[string]string{"PORT": "80"}},
		{"bad timeout", map[string]string{"AI_REQUEST_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"AI_REQUEST_TIMEOUT": "-1s"}},
		{"unknown password storage", map[string]string{"PASSWORD_STORAGE": "md5"}},
		{"unknown user store", map[string]string{"USER_STORE": "redis"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}},
		{"s3 without bucket", map[string]string{"USER_STORE": "s3"}},
		{"postgres in production without dsn", map[string]string{
			"ENVIRONMENT": "production", "SESSION_SECRET": "s", "USER_STORE": "postgres",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig_S3Backend(t *testing.T) {
	clearEnv(t)
	t.Setenv("USER_STORE", "s3")
	t.Setenv("S3_BUCKET_NAME", "nutrigen")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, UserStoreS3, cfg.UserStore)
	assert.Equal(t, "users.json", cfg.S3UsersKey)
	assert.Empty(t, cfg.UserDataFile)
}

func TestLoadConfig_PostgresDevelopmentDefaultDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("USER_STORE", "postgres")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Contains(t, cfg.DatabaseDSN, "nutrigen")
}
