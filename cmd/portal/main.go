// Command portal serves the BlueMoon resident portal.
//
//	@title			BlueMoon Resident Portal
//	@version		1.0
//	@description	Role-gated resident portal for the BlueMoon apartment management backend.
//	@host			localhost:3000
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	_ "github.com/bluemoon/resident-portal/docs"
	"github.com/bluemoon/resident-portal/internal/api"
	"github.com/bluemoon/resident-portal/internal/api/metrics"
	"github.com/bluemoon/resident-portal/internal/api/middleware"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
	"github.com/bluemoon/resident-portal/internal/infrastructure/backend"
	redisdb "github.com/bluemoon/resident-portal/internal/infrastructure/db/redis"
	"github.com/bluemoon/resident-portal/internal/infrastructure/http/handlers"
	"github.com/bluemoon/resident-portal/internal/pkg/config"
	"github.com/bluemoon/resident-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "portal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing .env is fine; the environment wins over the file.
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "bluemoon-portal",
	})

	notices, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load notices: %w", err)
	}

	// --- Redis: backend tokens, flash notices, navigation sequence ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	tokens := redisdb.NewTokenStore(rdb, cfg.Session.TTL)
	flash := redisdb.NewFlashStore(rdb)
	seq := redisdb.NewSequencer(rdb, cfg.Session.TTL)

	// --- Command boundary ---
	client := backend.NewClient(backend.Config{
		BaseURL:     cfg.Backend.URL,
		Timeout:     cfg.Backend.Timeout,
		AllowedURLs: cfg.Backend.AllowedURLs,
	}, tokens, logger.Component("backend"))
	client.SetHook(metrics.ObserveCommand)

	portal := service.NewPortal(client)
	resolver := service.NewSessionResolver(client, logger.Component("session"))

	tree, err := screens.NewTree(screens.Deps{
		Portal:   portal,
		Backends: client,
		Notices:  notices,
		Transfer: service.BankTransfer{Account: cfg.Payment.Account, Bank: cfg.Payment.Bank},
	})
	if err != nil {
		return err
	}

	checks := map[string]handlers.Check{
		"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		"backend": client.Ping,
	}

	observers := []navigation.Observer{
		navigation.ObserverFunc(func(_ context.Context, out navigation.Outcome) {
			metrics.ObserveNavigation(out.Route.Pattern(), out.State.String(), out.Elapsed)
		}),
	}

	// --- Optional navigation audit trail ---
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.Audit.Enabled {
		audit, err := startAudit(ctx, workersCtx, cfg, logger.Component("audit"))
		if err != nil {
			return err
		}
		defer audit.close()
		observers = append(observers, audit.dispatcher)
		checks["mongo"] = audit.ping
	}

	nav := navigation.NewNavigator(tree, resolver, seq, screens.NavigatorConfig(notices),
		logger.Component("navigation"), observers...)

	key, err := middleware.SessionKey(cfg.Session.Secret)
	if err != nil {
		return err
	}

	e, err := api.NewRouter(api.Deps{
		Navigator: nav,
		Sessions:  resolver,
		Portal:    portal,
		Flash:     flash,
		Notices:   notices,
		Checks:    checks,
		Session: middleware.SessionConfig{
			Key:    key,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Production(),
		},
		LoginRate:  rate.Limit(cfg.Login.Rate),
		LoginBurst: cfg.Login.Burst,
		Log:        log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.URL).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
