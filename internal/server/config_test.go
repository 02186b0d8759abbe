package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 6, cfg.Game.MaxPlayers)
	assert.Equal(t, 15*time.Second, cfg.ChallengeTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfig_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.hcl")
	content := `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

game {
  max_players          = 4
  challenge_timeout_ms = 5000
  seed                 = 42
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Game.MaxPlayers)
	assert.Equal(t, 5*time.Second, cfg.ChallengeTimeout())
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfig_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.hcl")
	content := `
server {
  port = 3000
}

game {
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Game.MaxPlayers)
	assert.Equal(t, 15*time.Second, cfg.ChallengeTimeout())
}

func TestLoadServerConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ServerConfig) {}, wantErr: false},
		{name: "port too low", mutate: func(c *ServerConfig) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *ServerConfig) { c.Server.Port = 70000 }, wantErr: true},
		{name: "max players too low", mutate: func(c *ServerConfig) { c.Game.MaxPlayers = 1 }, wantErr: true},
		{name: "max players too high", mutate: func(c *ServerConfig) { c.Game.MaxPlayers = 9 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *ServerConfig) { c.Game.ChallengeTimeoutMs = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
