// Package setserver assembles and runs the standalone websocket server.
package setserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"setgame/internal/app"
	"setgame/internal/config"
	"setgame/internal/platform/otel"
	"setgame/internal/ports"
	"setgame/internal/ports/ws"
	"setgame/internal/rules"
	"setgame/internal/storage/memory"
	"setgame/internal/storage/redis"
	"setgame/internal/storage/sqlite"
)

const (
	serviceName     = "setserver"
	shutdownTimeout = 5 * time.Second
	wsPath          = "/ws"
)

// Run serves until ctx is cancelled or a component fails.
func Run(ctx context.Context, cfg config.ServerConfig, logger zerolog.Logger) error {
	if cfg.GameConfigPath != "" {
		if err := config.LoadGameConfig(cfg.GameConfigPath); err != nil {
			return err
		}
	}
	gameCfg := config.GetGameConfig()

	shutdownTracing, err := otel.Setup(ctx, serviceName, otel.Config{
		Enabled:  cfg.OtelEnabled,
		Endpoint: cfg.OtelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("flush traces")
		}
	}()

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore.Close(); err != nil {
			logger.Warn().Err(err).Msg("close store")
		}
	}()

	engine := rules.NewEngine(rules.Config{
		Attributes: gameCfg.Attributes,
		Values:     gameCfg.Values,
		BoardSize:  gameCfg.BoardSize,
	}, nil)
	rulesCfg := engine.Config()
	logger.Info().
		Int("attributes", rulesCfg.Attributes).
		Int("values", rulesCfg.Values).
		Int("board_size", rulesCfg.BoardSize).
		Msg("rules configured")
	coord := app.NewCoordinator(store, engine, app.WithQueueSize(gameCfg.CommandQueueSize))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewMux(coord, logger, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return coord.Run(gctx)
	})
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Str("store", cfg.Store).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// NewMux routes the websocket endpoint and a liveness probe.
// A non-empty allowedOrigins restricts which browser origins may open sockets.
func NewMux(coord *app.Coordinator, logger zerolog.Logger, allowedOrigins []string) *http.ServeMux {
	var opts []ws.Option
	if len(allowedOrigins) > 0 {
		opts = append(opts, ws.WithCheckOrigin(originChecker(allowedOrigins)))
	}

	mux := http.NewServeMux()
	mux.Handle(wsPath, ws.NewHandler(coord, logger, opts...))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	return mux
}

// originChecker accepts requests without an Origin header and those whose
// Origin matches one of allowed, ignoring case.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o = strings.ToLower(strings.TrimSpace(o)); o != "" {
			set[o] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore selects the shared store backend named by cfg.Store.
func OpenStore(ctx context.Context, cfg config.ServerConfig) (ports.KeyValueStore, io.Closer, error) {
	switch cfg.Store {
	case config.StoreMemory, "":
		return memory.NewStore(), nopCloser{}, nil
	case config.StoreRedis:
		store, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return store, store, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
