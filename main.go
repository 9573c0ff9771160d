package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/classpulse/auth"
	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/db"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/router"
	"github.com/danielhkuo/classpulse/store"
)

func main() {
	var err error

	// A missing .env file is fine; real deployments use the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	st := store.NewStore(store.Options{
		MaxRooms:           cfg.MaxRooms,
		MaxLearnersPerRoom: cfg.MaxLearners,
	})

	ids, err := auth.NewIssuer(cfg.SessionKey, cfg.MultiUserMode)
	if err != nil {
		slog.Error("identity setup failed", "error", err)
		os.Exit(1)
	}
	if cfg.MultiUserMode {
		slog.Warn("multi-user mode enabled, learner ids carry a time suffix")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Optional state export
	var exportDone sync.WaitGroup
	if cfg.DatabaseURL != "" {
		dbConn, err := openExportDB(cfg)
		if err != nil {
			slog.Error("export database unavailable", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		exporter := db.NewExporter(dbConn, cfg.DatabaseType, st)
		exportDone.Add(1)
		go func() {
			defer exportDone.Done()
			exporter.Run(ctx, cfg.ExportInterval)
		}()
		slog.Info("State export enabled", "type", cfg.DatabaseType, "interval", cfg.ExportInterval)
	}

	// Per-client limiter for status updates
	limiter := middleware.NewRateLimiter(cfg.UpdateRate, cfg.UpdateBurst, cfg.TrustProxy)
	go limiter.StartCleanup(5 * time.Minute)
	defer limiter.Stop()

	// Create router
	mux := router.NewRouter(st, ids, limiter, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "max_rooms", cfg.MaxRooms, "max_learners", cfg.MaxLearners)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Let the exporter write its final snapshot
	stop()
	exportDone.Wait()
}

// openExportDB connects to the export database and makes sure the schema exists
func openExportDB(cfg cliparse.Config) (*sql.DB, error) {
	dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		return nil, err
	}

	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	slog.Info("Database schema ready")

	return dbConn, nil
}
