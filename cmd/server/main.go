package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"relgraph/infrastructure/config"
	"relgraph/infrastructure/di"
)

var (
	flagPort    int
	flagAddress string
	flagOrigin  string
	flagDemo    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "relgraph",
		Short: "Interactive character relationship graph explorer",
		Long: "Loads a character interaction graph from Neo4j, computes a " +
			"deterministic force-directed layout and serves an interactive " +
			"explorer page with per-session hover, tap and search.",
		RunE: run,
	}

	rootCmd.Flags().IntVar(&flagPort, "port", 0, "listen port (overrides PORT)")
	rootCmd.Flags().StringVar(&flagAddress, "address", "", "bind address (overrides BIND_ADDRESS)")
	rootCmd.Flags().StringVar(&flagOrigin, "websocket-origin", "", "allowed websocket origin (overrides WEBSOCKET_ORIGIN)")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "serve the built-in sample dataset instead of querying Neo4j")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local runs keep credentials in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	go container.Hub.Run()

	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     container.Handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.Addr()),
			zap.String("environment", cfg.Environment),
			zap.String("websocketOrigin", cfg.WebSocketOrigin),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}
	container.Shutdown(shutdownCtx)

	log.Println("Server stopped")
	return nil
}

func applyFlags(cfg *config.Config) {
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if flagAddress != "" {
		cfg.BindAddress = flagAddress
	}
	if flagOrigin != "" {
		cfg.WebSocketOrigin = flagOrigin
	}
	if flagDemo {
		cfg.DemoMode = true
	}
}
