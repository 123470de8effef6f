package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/frudas24/tuiomouse/internal/app"
	"github.com/frudas24/tuiomouse/internal/config"
	"github.com/frudas24/tuiomouse/internal/input"
	"github.com/frudas24/tuiomouse/internal/logging"
	"github.com/frudas24/tuiomouse/internal/screen"
)

// run wires the application and blocks until shutdown.
func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	if err != nil {
		return err
	}
	// zerolog's global floor starts at debug; lower it so trace reaches the logger.
	if lvl := logger.GetLevel(); lvl < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := cfg.ApplyArgs(args); err != nil {
		logger.Warn().Err(err).Int("port", cfg.Port).Msg("ignoring port argument")
	}

	res := screen.System{}
	if err := screen.Check(res); err != nil {
		return err
	}
	logStartup(logger, cfg, res)

	injector, err := input.NewInjector()
	if err != nil {
		return err
	}

	appInstance, err := app.New(cfg, logger, injector, res)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", cfg.ListenAddr()).Msg("listening for TUIO")
	if err := appInstance.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

// logStartup reports config sources, the detected displays and the listen address.
func logStartup(logger zerolog.Logger, cfg config.Config, res screen.Resolver) {
	logger.Info().Msg("tuiomouse starting")
	logFileStatus(logger, "env", filepath.Join(cfg.DataDir, ".env"))
	logFileStatus(logger, "config", cfg.ConfigPath)

	w, h := res.Size()
	logger.Info().Int("width", w).Int("height", h).Msg("screen size")
	monitors, err := screen.ListMonitors()
	if err != nil {
		logger.Debug().Err(err).Msg("monitor enumeration failed")
	}
	for _, m := range monitors {
		logger.Debug().Int("index", m.Index).Int("x", m.X).Int("y", m.Y).
			Int("w", m.W).Int("h", m.H).Bool("primary", m.Primary).Msg("monitor")
	}
	if cfg.StatusAddr != "" {
		logListenStatus(logger, cfg.StatusAddr)
	}
}

// logFileStatus reports whether an optional config file was found.
func logFileStatus(logger zerolog.Logger, name, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		logger.Debug().Str("path", path).Msgf("%s file: missing", name)
		return
	}
	logger.Info().Str("path", path).Msgf("%s file: ok", name)
}

// logListenStatus reports the status address and a local URL helper.
func logListenStatus(logger zerolog.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info().Str("addr", addr).Msg("status server enabled")
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	logger.Info().Str("url", "http://"+net.JoinHostPort(host, port)+"/api/contacts").Msg("status server enabled")
}
