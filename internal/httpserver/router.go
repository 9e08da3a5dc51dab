package httpserver

import (
	"context"
	"errors"
	"time"

	"bizhub/internal/domain"
	customersvc "bizhub/internal/service/customer"
	ordersvc "bizhub/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type storeGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
}

type customerService interface {
	Create(ctx context.Context, storeID string, in customersvc.CreateInput) (*domain.Customer, error)
	List(ctx context.Context, storeID string) ([]domain.Customer, error)
}

type orderService interface {
	Create(ctx context.Context, storeID string, in ordersvc.CreateInput) (*domain.Order, error)
	List(ctx context.Context, storeID string, filter domain.OrderFilter) ([]domain.Order, error)
}

type directoryService interface {
	List(ctx context.Context, store domain.Store, query string) ([]domain.Profile, error)
	Export(ctx context.Context, store domain.Store, query string) (*excelize.File, string, error)
}

// Deps groups the services the router dispatches to.
type Deps struct {
	StoreRepo    storeGetter
	CustomerSvc  customerService
	OrderSvc     orderService
	DirectorySvc directoryService
}

func (d Deps) validate() error {
	switch {
	case d.StoreRepo == nil:
		return errors.New("store repository required")
	case d.CustomerSvc == nil:
		return errors.New("customer service required")
	case d.OrderSvc == nil:
		return errors.New("order service required")
	case d.DirectorySvc == nil:
		return errors.New("directory service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(zap.NewStdLog(logger).Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	stores := router.Group("/stores/:storeId", storeMiddleware(deps.StoreRepo, logger))
	stores.GET("/customers", h.listCustomers)
	stores.POST("/customers", h.createCustomer)
	stores.GET("/orders", h.listOrders)
	stores.POST("/orders", h.createOrder)
	stores.GET("/pos/customers", h.listProfiles)
	stores.GET("/pos/customers/export", h.exportProfiles)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

type handlers struct {
	deps   Deps
	logger *zap.Logger
}
