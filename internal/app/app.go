// Package app wires the TUIO client, cursor mapper and status server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/frudas24/tuiomouse/internal/config"
	"github.com/frudas24/tuiomouse/internal/control"
	"github.com/frudas24/tuiomouse/internal/input"
	"github.com/frudas24/tuiomouse/internal/screen"
	"github.com/frudas24/tuiomouse/internal/status"
	"github.com/frudas24/tuiomouse/internal/tuio"
)

const shutdownTimeout = 5 * time.Second

// App coordinates the TUIO listener, the cursor mapper and the optional status server.
type App struct {
	cfg    config.Config
	logger zerolog.Logger
	mapper *control.Mapper
	client *tuio.Client
	status *status.Server
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, logger zerolog.Logger, injector input.Injector, res screen.Resolver) (*App, error) {
	if injector == nil {
		return nil, errors.New("injector is required")
	}
	if res == nil {
		return nil, errors.New("screen resolver is required")
	}

	a := &App{
		cfg:    cfg,
		logger: logger.With().Str("module", "app").Logger(),
		mapper: control.NewMapper(res, injector, logger),
		client: tuio.NewClient(logger),
	}
	a.client.AddListener(a.mapper)

	if cfg.StatusAddr != "" {
		a.status = status.NewServer(a.mapper.Contacts, logger)
		a.mapper.SetObserver(a.status.Publish)
	}
	return a, nil
}

// Mapper returns the cursor mapper.
func (a *App) Mapper() *control.Mapper {
	return a.mapper
}

// Run listens for TUIO packets until ctx is cancelled or a listener fails.
func (a *App) Run(ctx context.Context) error {
	return a.run(ctx, func(ctx context.Context) error {
		return a.client.ListenAndServe(ctx, a.cfg.ListenAddr())
	})
}

// serve runs the app on an already bound TUIO socket.
func (a *App) serve(ctx context.Context, conn net.PacketConn) error {
	return a.run(ctx, func(ctx context.Context) error {
		return a.client.Serve(ctx, conn)
	})
}

// run starts the status server (when enabled) and blocks in listen.
func (a *App) run(ctx context.Context, listen func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		server   *http.Server
		statusCh = make(chan error, 1)
	)
	if a.status != nil {
		server = &http.Server{
			Addr:              a.cfg.StatusAddr,
			Handler:           a.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.Info().Str("addr", server.Addr).Msg("status server listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				statusCh <- fmt.Errorf("status server: %w", err)
				cancel()
			}
		}()
	}

	runErr := listen(ctx)

	if server != nil {
		a.status.Close()
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn().Err(err).Msg("status server shutdown")
		}
	}

	select {
	case err := <-statusCh:
		return err
	default:
	}
	return runErr
}
