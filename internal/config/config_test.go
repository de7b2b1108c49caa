package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "runner")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "reports")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "runner", cfg.User)
	assert.Equal(t, "reports", cfg.Database)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		drop string
	}{
		{"missing user", "DB_USER"},
		{"missing password", "DB_PASSWORD"},
		{"missing database", "DB_NAME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.drop, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.drop)
		})
	}
}

func TestLoadBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestDSN(t *testing.T) {
	cfg := &Config{Host: "db.internal", Port: 3307, User: "u", Password: "p", Database: "d"}
	assert.Equal(t, "u:p@tcp(db.internal:3307)/d?parseTime=true", cfg.DSN())
}
