package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/nhakalabs/storefront-gateway/internal/auth"
	checkoutsvc "github.com/nhakalabs/storefront-gateway/internal/checkout"
	"github.com/nhakalabs/storefront-gateway/internal/contributions"
	"github.com/nhakalabs/storefront-gateway/internal/payment"
	"github.com/nhakalabs/storefront-gateway/internal/storefront"
	pkgauth "github.com/nhakalabs/storefront-gateway/pkg/auth"
	"github.com/nhakalabs/storefront-gateway/pkg/auth/session"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

type stubSessionStore struct{}

func (stubSessionStore) Get(ctx context.Context, sessionID string) (*session.Record, error) {
	return &session.Record{
		AccessToken: "upstream-token",
		UserID:      "user-1",
		Email:       "visitor@example.com",
		FullName:    "Test Visitor",
	}, nil
}

type stubAuthService struct{}

func (stubAuthService) SignIn(ctx context.Context, creds commerce.Credentials) (*authsvc.Session, error) {
	panic("unimplemented")
}

func (stubAuthService) SignUp(ctx context.Context, input commerce.SignupInput) (*authsvc.Session, error) {
	panic("unimplemented")
}

func (stubAuthService) SignOut(ctx context.Context, sessionID string) error {
	return nil
}

func (stubAuthService) Me(ctx context.Context) (*commerce.User, error) {
	return &commerce.User{ID: "user-1", Email: "visitor@example.com"}, nil
}

type stubStorefrontService struct{}

func (stubStorefrontService) View(ctx context.Context, sessionID string) (*storefront.CartView, error) {
	return &storefront.CartView{}, nil
}

func (stubStorefrontService) AddItem(ctx context.Context, sessionID string, input storefront.AddItemInput) (*storefront.CartView, error) {
	panic("unimplemented")
}

func (stubStorefrontService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*storefront.CartView, error) {
	panic("unimplemented")
}

func (stubStorefrontService) RemoveItem(ctx context.Context, sessionID, productID string) (*storefront.CartView, error) {
	panic("unimplemented")
}

func (stubStorefrontService) SetPanel(ctx context.Context, sessionID string, panel storefront.Panel, open bool, productID string) (*storefront.CartView, error) {
	panic("unimplemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) State(ctx context.Context, sessionID string) (*checkoutsvc.WizardState, error) {
	return &checkoutsvc.WizardState{Step: checkoutsvc.StepDelivery}, nil
}

func (stubCheckoutService) SubmitDelivery(ctx context.Context, sessionID string, info checkoutsvc.DeliveryInfo, identity *checkoutsvc.Identity) (*checkoutsvc.WizardState, error) {
	panic("unimplemented")
}

func (stubCheckoutService) SelectPaymentMethod(ctx context.Context, sessionID string, method payment.Method) (*checkoutsvc.WizardState, error) {
	panic("unimplemented")
}

func (stubCheckoutService) Back(ctx context.Context, sessionID string) (*checkoutsvc.WizardState, error) {
	panic("unimplemented")
}

func (stubCheckoutService) PlaceOrder(ctx context.Context, sessionID string, identity *checkoutsvc.Identity) (*commerce.Purchase, error) {
	panic("unimplemented")
}

func (stubCheckoutService) Teardown(sessionID string) {}

type stubOrderService struct{}

func (stubOrderService) List(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.Purchase], error) {
	return types.EmptyList[commerce.Purchase](1), nil
}

func (stubOrderService) Get(ctx context.Context, orderID string) (*commerce.Purchase, error) {
	return &commerce.Purchase{OrderID: orderID}, nil
}

type stubMemorialService struct{}

func (stubMemorialService) Get(ctx context.Context, id string) (*commerce.Memorial, error) {
	panic("unimplemented")
}

func (stubMemorialService) GetPublic(ctx context.Context, id string) (*commerce.Memorial, error) {
	return &commerce.Memorial{ID: id, Title: "In Loving Memory"}, nil
}

func (stubMemorialService) Configure(ctx context.Context, id string, update commerce.MemorialUpdate) (*commerce.Memorial, error) {
	panic("unimplemented")
}

type stubContributionService struct{}

func (stubContributionService) List(ctx context.Context, memorialID string, params pagination.Params) (*types.ListEnvelope[commerce.Contribution], error) {
	panic("unimplemented")
}

func (stubContributionService) Create(ctx context.Context, input commerce.CreateContributionInput) (*commerce.Contribution, error) {
	panic("unimplemented")
}

func (stubContributionService) Upload(ctx context.Context, input contributions.UploadInput) (*commerce.Contribution, error) {
	panic("unimplemented")
}

func (stubContributionService) SetVisibility(ctx context.Context, id string, hidden bool) (*commerce.Contribution, error) {
	panic("unimplemented")
}

type stubUserService struct{}

func (stubUserService) List(ctx context.Context, params pagination.Params) (*types.ListEnvelope[commerce.User], error) {
	return types.EmptyList[commerce.User](1), nil
}

func (stubUserService) Get(ctx context.Context, id string) (*commerce.User, error) {
	panic("unimplemented")
}

func (stubUserService) Create(ctx context.Context, input commerce.UserInput) (*commerce.User, error) {
	panic("unimplemented")
}

func (stubUserService) Update(ctx context.Context, id string, input commerce.UserInput) (*commerce.User, error) {
	panic("unimplemented")
}

func (stubUserService) Delete(ctx context.Context, id string) error {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		nil,
		stubSessionStore{},
		nil,
		stubAuthService{},
		stubStorefrontService{},
		stubCheckoutService{},
		stubOrderService{},
		stubMemorialService{},
		stubContributionService{},
		stubUserService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintSessionToken(cfg.JWT, time.Now(), pkgauth.SessionTokenPayload{
		SessionID: "sess-1",
		UserID:    "user-1",
		Email:     "visitor@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Nhaka-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-Nhaka-Env"))
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart view got %d", resp.Code)
	}
}

func TestPublicMemorialNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/memorials/mem-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public memorial got %d", resp.Code)
	}
}

func TestCheckoutStateRequiresToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/checkout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/checkout", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for checkout state got %d", resp.Code)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
