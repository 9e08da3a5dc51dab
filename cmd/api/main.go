package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bizhub/internal/config"
	"bizhub/internal/db"
	"bizhub/internal/httpserver"
	"bizhub/internal/logging"
	customerrepo "bizhub/internal/repository/customer"
	orderrepo "bizhub/internal/repository/order"
	storerepo "bizhub/internal/repository/store"
	customersvc "bizhub/internal/service/customer"
	directorysvc "bizhub/internal/service/directory"
	ordersvc "bizhub/internal/service/order"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("api")

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	storeRepo := storerepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	directoryService := directorysvc.New(orderRepo, customerRepo,
		directorysvc.WithOrderLimit(cfg.POSOrderLimit),
		directorysvc.WithDefaultCurrency(cfg.DefaultCurrency),
		directorysvc.WithLogger(logger),
	)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		StoreRepo:    storeRepo,
		CustomerSvc:  customersvc.New(customerRepo),
		OrderSvc:     ordersvc.New(orderRepo),
		DirectorySvc: directoryService,
	}, httpserver.Options{CORSOrigins: cfg.CORSOrigins})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
