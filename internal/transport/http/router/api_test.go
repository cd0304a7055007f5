package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staymarket/internal/core/auth"
	"staymarket/internal/service"
)

type testHasher struct{}

func (testHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }
func (testHasher) Verify(plain, hash string) bool    { return "h:"+plain == hash }

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	f := service.NewFacade(service.NewMemoryRepos(), testHasher{}, nil)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewAPIEngine(zap.NewNop(), f, jwter)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) (userID, token string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
		"first_name": "Jane", "last_name": "Doe",
		"email": email, "password": "abc123!@#",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "abc123!@#",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)
	return created.Data.ID, login.Data.Token
}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestEngine()
	_, token := registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
	// 散列绝不回显
	assert.NotContains(t, w.Body.String(), "h:abc123!@#")
}

func TestDuplicateEmailConflict(t *testing.T) {
	r := newTestEngine()
	registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/users", "", gin.H{
		"first_name": "John", "last_name": "Doe",
		"email": "jane@example.com", "password": "abc123!@#",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestEngine()
	registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "nope1234!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWriteRoutesRequireToken(t *testing.T) {
	r := newTestEngine()
	w := doJSON(t, r, http.MethodPost, "/api/v1/places", "", gin.H{"title": "Loft", "price": 10})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/places", "not-a-token", gin.H{"title": "Loft", "price": 10})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceLifecycleStatuses(t *testing.T) {
	r := newTestEngine()
	_, token := registerAndLogin(t, r, "owner@example.com")

	// 非法价格 → 400，错误信息点名 price
	w := doJSON(t, r, http.MethodPost, "/api/v1/places", token, gin.H{
		"title": "Loft", "price": -5, "latitude": 0, "longitude": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")

	w = doJSON(t, r, http.MethodPost, "/api/v1/places", token, gin.H{
		"title": "Loft", "price": 120, "latitude": 48.85, "longitude": 2.35,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// 公开读
	w = doJSON(t, r, http.MethodGet, "/api/v1/places/"+created.Data.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/places/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 别人的房源改不了 → 403
	_, otherToken := registerAndLogin(t, r, "other@example.com")
	w = doJSON(t, r, http.MethodPut, "/api/v1/places/"+created.Data.ID, otherToken, gin.H{"title": "Mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/places/"+created.Data.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/places/"+created.Data.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAmenityAdminOnlyStatus(t *testing.T) {
	r := newTestEngine()
	_, token := registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/amenities", token, gin.H{"name": "Wi-Fi"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestEngine()
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
