package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "valid config",
			yaml:    `listen_address: "localhost:8080"`,
			wantErr: "",
		},
		{
			name:    "empty file keeps defaults",
			yaml:    ``,
			wantErr: "",
		},
		{
			name:    "unknown log level fails validation",
			yaml:    `log_level: verbose`,
			wantErr: "config validation failed",
		},
		{
			name:    "empty listen address fails validation",
			yaml:    `listen_address: ""`,
			wantErr: "config validation failed",
		},
		{
			name:    "unknown key rejected",
			yaml:    `listen_port: 8080`,
			wantErr: "failed to unmarshal config file",
		},
		{
			name:    "invalid yaml syntax",
			yaml:    `invalid: [yaml: content`,
			wantErr: "failed to unmarshal config file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestConfig(t, test.yaml)
			cfg, err := Load(path)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.NotEmpty(t, cfg.DBFilepath)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.ErrorContains(t, err, "failed to read config file")
	assert.Nil(t, cfg)
}

func TestLoad_MergesDefaults(t *testing.T) {
	t.Parallel()

	path := writeTestConfig(t, "log_level: debug\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().ListenAddress, cfg.ListenAddress)
	assert.Equal(t, Default().DBFilepath, cfg.DBFilepath)
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}
