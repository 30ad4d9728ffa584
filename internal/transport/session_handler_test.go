package transport

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier-storefront/internal/config"
	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/session"
)

func newSessionRouter(t *testing.T, gw *stubGateway) chi.Router {
	t.Helper()
	store := newMemStore()
	sessionService := session.NewService(store, gw, config.SessionConfig{
		Secret:       testSecret,
		AccessExpiry: 60,
	})

	router := chi.NewRouter()
	handler := NewSessionHandler(sessionService, zap.NewNop())
	handler.RegisterRoutes(router, testAuthMiddleware())
	return router
}

func knownUserGateway() *stubGateway {
	return &stubGateway{
		loginFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email == "ada@example.com" && password == "correct-horse" {
				return &domain.User{ID: "u-1", Name: "Ada", Email: email, Role: domain.RoleCustomer}, nil
			}
			return nil, gateway.ErrInvalidCredentials
		},
	}
}

func TestLogin_ReturnsUsableToken(t *testing.T) {
	router := newSessionRouter(t, knownUserGateway())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, domain.RoleCustomer, resp.User.Role)

	// Token is accepted on a protected route
	profileRec := doJSON(t, router, http.MethodGet, "/api/profile/", resp.Token, nil)
	require.Equal(t, http.StatusOK, profileRec.Code)

	var profile domain.User
	decodeBody(t, profileRec, &profile)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestLogin_TokenCarriesIdentityClaims(t *testing.T) {
	router := newSessionRouter(t, knownUserGateway())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	decodeBody(t, rec, &resp)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, domain.RoleCustomer, claims["role"])
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	router := newSessionRouter(t, knownUserGateway())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignup_CreatesSession(t *testing.T) {
	gw := &stubGateway{
		signupFn: func(_ context.Context, name, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "u-2", Name: name, Email: email, Role: domain.RoleCustomer}, nil
		},
	}
	router := newSessionRouter(t, gw)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Grace",
		"email":    "grace@example.com",
		"password": "long-enough-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "u-2", resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	router := newSessionRouter(t, &stubGateway{})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Grace",
		"email":    "grace@example.com",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_DestroysStoredSession(t *testing.T) {
	router := newSessionRouter(t, knownUserGateway())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	decodeBody(t, rec, &resp)

	logoutRec := doJSON(t, router, http.MethodPost, "/api/auth/logout", resp.Token, nil)
	require.Equal(t, http.StatusOK, logoutRec.Code)

	// Token still parses but the identity behind it is gone
	profileRec := doJSON(t, router, http.MethodGet, "/api/profile/", resp.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, profileRec.Code)
}

func TestUpdateProfile_MergesNonEmptyFields(t *testing.T) {
	router := newSessionRouter(t, knownUserGateway())

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp SessionResponse
	decodeBody(t, rec, &resp)

	updateRec := doJSON(t, router, http.MethodPut, "/api/profile/", resp.Token, UpdateProfileRequest{
		Phone: "+44 20 7946 0000",
	})
	require.Equal(t, http.StatusOK, updateRec.Code)

	var updated domain.User
	decodeBody(t, updateRec, &updated)
	assert.Equal(t, "+44 20 7946 0000", updated.Phone)
	assert.Equal(t, "Ada", updated.Name, "empty update fields must not overwrite")
}
