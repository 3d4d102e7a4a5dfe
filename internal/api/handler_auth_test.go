package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"datacenter-inventory-backend/config"
	"datacenter-inventory-backend/internal/model"
	"datacenter-inventory-backend/internal/notify"
	"datacenter-inventory-backend/internal/store"
)

type discardSender struct{}

func (discardSender) Send(context.Context, notify.Message) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&model.User{}, &model.Datacenter{}, &model.Equipment{}))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLMinutes = 60
	cfg.Auth.TokenTTL = time.Hour

	return NewRouter(cfg, store.NewGormStore(gdb), discardSender{})
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate username is rejected.
	w = postJSON(r, "/api/auth/signup", gin.H{
		"username": "alice", "password": "longenough",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Short passwords never reach the store.
	w = postJSON(r, "/api/auth/signup", gin.H{
		"username": "bob", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/auth/login", gin.H{
		"username": "alice", "password": "longenough",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["access"])

	w = postJSON(r, "/api/auth/login", gin.H{
		"username": "alice", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/datacenters", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/datacenters", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizedDatacenterRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", gin.H{"username": "carol", "password": "longenough"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(r, "/api/auth/login", gin.H{"username": "carol", "password": "longenough"})
	require.Equal(t, http.StatusOK, w.Code)

	var login map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	token := login["access"]

	buf, _ := json.Marshal(gin.H{"name": "DC-East", "description": "primary site"})
	req := httptest.NewRequest(http.MethodPost, "/api/datacenters", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/datacenters", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "DC-East", list[0]["name"])
}
