package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/logging"
	"github.com/hevilin/talentsite/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
	serveDemo bool
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server for the public site and the back office.

With --demo (or DEMO_MODE=true) the server runs on a seeded in-memory store and
needs no database. JWT_SECRET is always required.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "Serve seeded in-memory data instead of a database")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "Human-readable console logs")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if serveDemo {
		cfg.Demo = true
	}
	if serveDev {
		cfg.Development = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	bypass, err := config.NewBypassConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	revoker, closeRevoker, err := openRevoker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRevoker()

	publisher, err := openPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		CORSOrigin:     cfg.CORSOrigin,
		WhatsAppNumber: cfg.WhatsAppNumber,
		Demo:           cfg.Demo,
	}, server.Deps{
		Store:    store,
		Logger:   logger,
		JWT:      jwtConfig,
		Password: passwordConfig,
		Bypass:   bypass,
		Revoker:  revoker,
		Events:   publisher,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting server", zap.Int("port", cfg.Port), zap.Bool("demo", cfg.Demo))
	return srv.Start(ctx)
}
