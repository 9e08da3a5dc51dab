package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizhub/internal/domain"
	customersvc "bizhub/internal/service/customer"
	ordersvc "bizhub/internal/service/order"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const testStoreID = "6f1c2b9e-3d4a-4c5b-8e7f-0a1b2c3d4e5f"

type stubStoreRepo struct {
	store *domain.Store
	err   error
}

func (s *stubStoreRepo) GetByID(_ context.Context, _ string) (*domain.Store, error) {
	return s.store, s.err
}

type stubCustomerService struct {
	customers []domain.Customer
	created   *domain.Customer
	err       error
	lastInput customersvc.CreateInput
}

func (s *stubCustomerService) Create(_ context.Context, _ string, in customersvc.CreateInput) (*domain.Customer, error) {
	s.lastInput = in
	return s.created, s.err
}

func (s *stubCustomerService) List(_ context.Context, _ string) ([]domain.Customer, error) {
	return s.customers, s.err
}

type stubOrderService struct {
	orders     []domain.Order
	created    *domain.Order
	err        error
	lastInput  ordersvc.CreateInput
	lastFilter domain.OrderFilter
}

func (s *stubOrderService) Create(_ context.Context, _ string, in ordersvc.CreateInput) (*domain.Order, error) {
	s.lastInput = in
	return s.created, s.err
}

func (s *stubOrderService) List(_ context.Context, _ string, filter domain.OrderFilter) ([]domain.Order, error) {
	s.lastFilter = filter
	return s.orders, s.err
}

type stubDirectoryService struct {
	profiles  []domain.Profile
	err       error
	lastQuery string
	lastStore domain.Store
}

func (s *stubDirectoryService) List(_ context.Context, store domain.Store, query string) ([]domain.Profile, error) {
	s.lastStore = store
	s.lastQuery = query
	return s.profiles, s.err
}

func (s *stubDirectoryService) Export(_ context.Context, store domain.Store, query string) (*excelize.File, string, error) {
	s.lastStore = store
	s.lastQuery = query
	if s.err != nil {
		return nil, "", s.err
	}
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Name")
	return f, "customers_test.xlsx", nil
}

func testStore() *domain.Store {
	return &domain.Store{ID: testStoreID, Slug: "shop", Name: "Shop", Currency: "KES"}
}

func testDeps() Deps {
	return Deps{
		StoreRepo:    &stubStoreRepo{store: testStore()},
		CustomerSvc:  &stubCustomerService{},
		OrderSvc:     &stubOrderService{},
		DirectorySvc: &stubDirectoryService{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	router, err := buildRouter(zap.NewNop(), nil, deps, Options{})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	gin.SetMode(gin.TestMode)
	return router
}

func TestStoreMiddleware_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubStoreRepo{store: testStore()}
	router := gin.New()
	router.Use(storeMiddleware(repo, zap.NewNop()))
	router.GET("/stores/:storeId/test", func(c *gin.Context) {
		if s := storeFrom(c); s == nil || s.ID != testStoreID {
			t.Fatalf("expected store in context, got %+v", s)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/stores/"+testStoreID+"/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestStoreMiddleware_Statuses(t *testing.T) {
	cases := []struct {
		name string
		repo *stubStoreRepo
		path string
		want int
	}{
		{"not found", &stubStoreRepo{err: domain.ErrNotFound}, "/stores/" + testStoreID + "/test", http.StatusNotFound},
		{"repo error", &stubStoreRepo{err: errors.New("boom")}, "/stores/" + testStoreID + "/test", http.StatusInternalServerError},
		{"malformed id", &stubStoreRepo{}, "/stores/not-a-uuid/test", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(storeMiddleware(tc.repo, zap.NewNop()))
			router.GET("/stores/:storeId/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestBuildRouter_RequiresDeps(t *testing.T) {
	deps := testDeps()
	deps.DirectorySvc = nil
	if _, err := buildRouter(zap.NewNop(), nil, deps, Options{}); err == nil {
		t.Fatalf("expected error for missing directory service")
	}
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz without db: expected 503, got %d", rec.Code)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	router, err := buildRouter(zap.NewNop(), nil, testDeps(), Options{CORSOrigins: []string{"https://shop.example"}})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Fatalf("expected allow-origin header, got %q", got)
	}
}
