package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/api"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/db"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/middleware"
)

func main() {
	cfg := loadConfig()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	store, cleanup, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("build store", zap.Error(err))
	}
	defer cleanup()

	if err := api.SeedDemoData(store); err != nil {
		log.Fatal("seed demo data", zap.Error(err))
	}

	router := api.NewRouter(store, log, cfg.MovementInterval)

	mux := http.NewServeMux()
	router.Register(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "Blucentia API",
		})
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     cfg.Commit,
			"build_time": cfg.BuildTime,
		})
	})

	handler := middleware.NoStore(middleware.CORS(middleware.WithAuth(mux)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go router.Movement().Run(ctx)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("addr", cfg.ListenAddr), zap.String("store", cfg.StoreBackend))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
}

// buildStore picks the entity-store backend. Both backends hold state for the
// process lifetime only; the sqlite backend exists for the relational shape
// and as the path toward durable storage later.
func buildStore(cfg config, log *zap.Logger) (api.Store, func(), error) {
	switch cfg.StoreBackend {
	case "sqlite":
		d, err := db.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		store, err := db.NewSQLiteStore(d, log)
		if err != nil {
			d.Close()
			return nil, nil, err
		}
		return store, func() { d.Close() }, nil
	default:
		return api.NewMemoryStore(), func() {}, nil
	}
}
