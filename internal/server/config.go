package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/parkrye/WebProject-PirateDice/internal/game"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// GameSettings contains the room rule knobs
type GameSettings struct {
	MaxPlayers         int   `hcl:"max_players,optional"`
	ChallengeTimeoutMs int   `hcl:"challenge_timeout_ms,optional"`
	Seed               int64 `hcl:"seed,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			MaxPlayers:         game.MaxPlayers,
			ChallengeTimeoutMs: int(game.DefaultChallengeTimeout / time.Millisecond),
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Game.MaxPlayers == 0 {
		config.Game.MaxPlayers = game.MaxPlayers
	}
	if config.Game.ChallengeTimeoutMs == 0 {
		config.Game.ChallengeTimeoutMs = int(game.DefaultChallengeTimeout / time.Millisecond)
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Game.MaxPlayers < game.MinPlayers || c.Game.MaxPlayers > game.MaxPlayers {
		return fmt.Errorf("max players must be between %d and %d, got %d",
			game.MinPlayers, game.MaxPlayers, c.Game.MaxPlayers)
	}
	if c.Game.ChallengeTimeoutMs < 0 {
		return fmt.Errorf("challenge timeout must not be negative: %d", c.Game.ChallengeTimeoutMs)
	}
	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// ChallengeTimeout returns the configured window duration.
func (c *ServerConfig) ChallengeTimeout() time.Duration {
	return time.Duration(c.Game.ChallengeTimeoutMs) * time.Millisecond
}
