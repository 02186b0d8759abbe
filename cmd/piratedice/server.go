package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/parkrye/WebProject-PirateDice/cmd/piratedice/shared"
	"github.com/parkrye/WebProject-PirateDice/internal/server"
)

// ServerCmd contains core server configuration
type ServerCmd struct {
	Config     string `kong:"help='Path to HCL config file',default='piratedice.hcl'"`
	Addr       string `kong:"help='Server address (overrides config file)'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
	MaxPlayers int    `kong:"help='Maximum players per room (overrides config file)'"`
	TimeoutMs  int    `kong:"help='Challenge window timeout in milliseconds (overrides config file)'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed for the server (optional)'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}

	// CLI flags override the config file
	if c.MaxPlayers != 0 {
		cfg.Game.MaxPlayers = c.MaxPlayers
	}
	if c.TimeoutMs != 0 {
		cfg.Game.ChallengeTimeoutMs = c.TimeoutMs
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.GetServerAddress()
	}

	logger := shared.SetupLogger(c.Debug)
	logger.SetLevel(shared.ParseLevel(cfg.Server.LogLevel))

	s := server.NewServer(addr, logger)
	rooms := server.NewRoomService(cfg, s, logger, nil)
	s.SetRoomService(rooms)

	logger.Info("Starting pirate dice server",
		"address", addr,
		"max_players", cfg.Game.MaxPlayers,
		"challenge_timeout", cfg.ChallengeTimeout(),
		"seeded", cfg.Game.Seed != 0)

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
