package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// emptyCartStore has no carts; the cart service treats that as an empty
// cart, which is all the routing tests need.
type emptyCartStore struct{}

func (emptyCartStore) GetByUser(context.Context, primitive.ObjectID) (*models.Cart, error) {
	return nil, repository.ErrNotFound
}

func (emptyCartStore) ReplaceItems(context.Context, primitive.ObjectID, []models.CartItem) error {
	return nil
}

func (emptyCartStore) Clear(context.Context, primitive.ObjectID) error {
	return nil
}

func newTestGateway(t *testing.T) (*Gateway, *service.AuthService) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT:    config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 5, PublicPath: "/uploads"},
	}
	logger := zap.NewNop()
	auth := service.NewAuthService(nil, nil, nil, cfg.JWT, logger)
	cart := service.NewCartService(emptyCartStore{}, nil, logger)

	gw := NewGateway(cfg, logger, auth, nil, cart, nil, nil, nil)
	gw.SetupRoutes()
	return gw, auth
}

func bearerToken(t *testing.T, auth *service.AuthService, role string) string {
	t.Helper()
	token, err := auth.IssueToken(&models.User{ID: primitive.NewObjectID(), Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthEndpoint(t *testing.T) {
	gw, _ := newTestGateway(t)

	w := httptest.NewRecorder()
	gw.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	gw, _ := newTestGateway(t)

	w := httptest.NewRecorder()
	gw.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	gw, _ := newTestGateway(t)

	for _, header := range []string{"token-without-scheme", "Bearer ", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		gw.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	gw, _ := newTestGateway(t)
	forged := service.NewAuthService(nil, nil, nil,
		config.JWTConfig{Secret: "other-secret", Expiry: time.Hour}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", bearerToken(t, forged, models.RoleUser))
	w := httptest.NewRecorder()
	gw.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	gw, auth := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", bearerToken(t, auth, models.RoleUser))
	w := httptest.NewRecorder()
	gw.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	gw, auth := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearerToken(t, auth, models.RoleUser))
	w := httptest.NewRecorder()
	gw.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRouteUnauthenticated(t *testing.T) {
	gw, _ := newTestGateway(t)

	w := httptest.NewRecorder()
	gw.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
