package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"bizhub/internal/config"
	"bizhub/internal/db"
	"bizhub/internal/domain"
	"bizhub/internal/importer"
	"bizhub/internal/logging"
	"bizhub/internal/repository/customer"
	"bizhub/internal/repository/store"
	customersvc "bizhub/internal/service/customer"

	"go.uber.org/zap"
)

func main() {
	var (
		filePath  string
		storeSlug string
		currency  string
	)
	flag.StringVar(&filePath, "file", "", "Path to customer CSV file")
	flag.StringVar(&storeSlug, "store", "", "Store slug to import into (created if missing)")
	flag.StringVar(&currency, "currency", "", "Currency for a newly created store (defaults to DEFAULT_CURRENCY)")
	flag.Parse()

	if filePath == "" || storeSlug == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("importer")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if currency == "" {
		currency = cfg.DefaultCurrency
	}
	st, err := store.NewPostgres(pool, logger).EnsureBySlug(ctx, domain.Store{Slug: storeSlug, Name: storeSlug, Currency: currency})
	if err != nil {
		logger.Fatal("ensure store", zap.String("slug", storeSlug), zap.Error(err))
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, customersvc.New(customer.NewPostgres(pool, logger)), st.ID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	fmt.Printf("Imported %d customers into store %s in %s\n", count, storeSlug, time.Since(start).Truncate(time.Millisecond))
}
