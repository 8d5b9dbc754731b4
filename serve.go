/*
Package main
File: serve.go
Description: The game server. Restores the save slot, then runs the
WebSocket hub, the engine heartbeat and the HTTP API until interrupted.
SIGHUP forces an immediate save; SIGINT/SIGTERM shut down with a final save.
*/

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

	"github.com/spf13/cobra"

	"github.com/everforgeworks/idleforge/internal/api"
	"github.com/everforgeworks/idleforge/internal/config"
	"github.com/everforgeworks/idleforge/internal/engine"
	"github.com/everforgeworks/idleforge/internal/game"
	"github.com/everforgeworks/idleforge/internal/persistence/store"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		memory     bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, memory)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "server.yaml", "server config file (missing file uses defaults)")
	cmd.Flags().BoolVar(&memory, "memory", false, "keep saves in memory only (lost on exit)")
	return cmd
}

func runServe(configPath string, memory bool) error {
	logger := newLogger()

	// 1. Load the server config and the game catalog
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	g, err := game.New(cat)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	// 2. Open the save store
	dbPath := cfg.DatabasePath()
	var st store.Store
	if memory {
		st = store.NewMemory()
		dbPath = "memory"
	} else if st, err = store.Open(dbPath); err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 3. Hub and engine
	hub := api.NewHub(logger)
	eng := engine.New(g, engine.Options{
		Store:            st,
		Slot:             cfg.SaveSlot,
		Publisher:        hub,
		Logger:           logger,
		TickInterval:     cfg.TickInterval(),
		PulseEveryTicks:  cfg.PulseEveryTicks,
		AutosaveInterval: cfg.AutosaveInterval(),
	})

	// 4. Restore progress. An unreadable slot stops the server so autosave
	// cannot overwrite it.
	loadCtx, loadCancel := context.WithTimeout(ctx, 5*time.Second)
	err = eng.LoadContext(loadCtx)
	loadCancel()
	switch {
	case err == nil:
		logger.Printf("Restored slot %q from %s", cfg.SaveSlot, dbPath)
	case errors.Is(err, store.ErrNotFound):
		logger.Printf("No save in slot %q, starting fresh", cfg.SaveSlot)
	default:
		return fmt.Errorf("restore slot %q: %w", cfg.SaveSlot, err)
	}

	go hub.Run(ctx)

	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		eng.Run(ctx)
	}()

	// 5. SIGHUP: save now
	go func() {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Println("SIGNAL: forcing save...")
				if eng.Save() {
					logger.Printf("Saved slot %q", cfg.SaveSlot)
				}
			}
		}
	}()

	// 6. Router and middleware
	limiter := api.NewIPLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	go limiter.Run(ctx, time.Minute, 10*time.Minute)
	routes := api.NewServer(eng, hub).Routes()
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.CORS(cfg.CORSOrigin, limiter.Middleware(routes)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("IDLEFORGE: Server live on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 7. Wait for a signal or a listener failure, then wind down
	var runErr error
	select {
	case <-ctx.Done():
		logger.Println("SIGNAL: shutting down...")
	case runErr = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Printf("HTTP shutdown: %v", serr)
	}
	<-engineDone
	return runErr
}
