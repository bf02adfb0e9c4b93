package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/config"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/server"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the auction HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := utils.SetLevel(cfg.Log.Level); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Store.Seed {
		if err := repository.SeedSampleData(ctx, store, time.Now()); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		utils.Info("store seeded with sample data", map[string]any{"driver": cfg.Store.Driver})
	}

	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			utils.Warn("failed to close event publisher", map[string]any{"error": err.Error()})
		}
	}()

	opts := []auction.Option{auction.WithPublisher(publisher)}
	if owners, closeOwners := newOwnershipChecker(cfg.Ownership); owners != nil {
		defer closeOwners()
		opts = append(opts, auction.WithOwnershipChecker(owners))
	}
	auctionSvc := auction.NewAuctionService(store, opts...)

	gin.SetMode(gin.ReleaseMode)
	router := server.SetupRouter(auctionSvc, cfg.Auth.GatewaySecret)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	utils.Info("starting auction server", map[string]any{
		"addr":      srv.Addr,
		"store":     cfg.Store.Driver,
		"ownership": cfg.Ownership.Source,
		"events":    cfg.Events.Driver,
	})
	return server.Serve(ctx, srv, ln, cfg.Server.ShutdownTimeout)
}
