package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("TEST_INT", "12")
	t.Setenv("TEST_FLOAT", "0.25")
	t.Setenv("TEST_DURATION", "90m")
	t.Setenv("TEST_BAD", "twelve")

	n, err := getEnvInt("TEST_INT", 1)
	assert.NoError(t, err)
	assert.Equal(t, 12, n)

	f, err := getEnvFloat("TEST_FLOAT", 1)
	assert.NoError(t, err)
	assert.Equal(t, 0.25, f)

	d, err := getEnvDuration("TEST_DURATION", time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	n, err = getEnvInt("TEST_INT_NOT_SET", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = getEnvInt("TEST_BAD", 1)
	assert.Error(t, err)
	_, err = getEnvFloat("TEST_BAD", 1)
	assert.Error(t, err)
	_, err = getEnvDuration("TEST_BAD", time.Second)
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "pass"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "healthbot", cfg.Database.Name)
				assert.Equal(t, 1.0, cfg.ProgressDelayScale)
				assert.Equal(t, 64, cfg.Workers)
				assert.Equal(t, 8, cfg.UserQueueSize)
				assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
				assert.Empty(t, cfg.ReportsChatURL)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"BOT_TOKEN":            "token",
				"DB_PASSWORD":          "pass",
				"PROGRESS_DELAY_SCALE": "0",
				"WORKERS":              "4",
				"SESSION_IDLE_TTL":     "30m",
				"REPORTS_CHAT_URL":     "http://chat.local/ask",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0.0, cfg.ProgressDelayScale)
				assert.Equal(t, 4, cfg.Workers)
				assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
				assert.Equal(t, "http://chat.local/ask", cfg.ReportsChatURL)
			},
		},
		{
			name:    "missing BOT_TOKEN",
			env:     map[string]string{"DB_PASSWORD": "pass"},
			wantErr: true,
		},
		{
			name:    "missing DB_PASSWORD",
			env:     map[string]string{"BOT_TOKEN": "token"},
			wantErr: true,
		},
		{
			name:    "negative delay scale",
			env:     map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "pass", "PROGRESS_DELAY_SCALE": "-1"},
			wantErr: true,
		},
		{
			name:    "bad worker count",
			env:     map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "pass", "WORKERS": "many"},
			wantErr: true,
		},
	}

	keys := []string{
		"BOT_TOKEN", "DB_PASSWORD", "PROGRESS_DELAY_SCALE", "WORKERS", "USER_QUEUE_SIZE",
		"SESSION_IDLE_TTL", "REPORTS_CHAT_URL", "DB_NAME",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
