package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SALES_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/superstore.csv", cfg.Dataset.Path)
	assert.Equal(t, "latin1", cfg.Dataset.Encoding)
	assert.Equal(t, "reports", cfg.Reports.Dir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
dataset:
  path: /data/from-file.csv
  encoding: utf8
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	t.Setenv("SALES_CONFIG_FILE", configFile)
	t.Setenv("SALES_DATASET_PATH", "/data/from-env.csv")

	cfg, err := Load()
	require.NoError(t, err)

	// Env wins over file for the path, file wins over defaults elsewhere.
	assert.Equal(t, "/data/from-env.csv", cfg.Dataset.Path)
	assert.Equal(t, "utf8", cfg.Dataset.Encoding)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_InvalidEncoding(t *testing.T) {
	t.Setenv("SALES_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SALES_DATASET_ENCODING", "ebcdic")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SALES_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
