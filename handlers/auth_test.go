package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentbot-backend/config"
	"rentbot-backend/database"
	"rentbot-backend/notifier"
	"rentbot-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	testCfg := &config.Config{
		Admin: config.AdminConfig{Password: "admin123"},
		Subscription: config.SubscriptionConfig{
			MonthlyPrice:      12000,
			YearlyPrice:       100000,
			FreePropertyLimit: 1,
		},
	}

	log := zap.NewNop()
	Setup(testCfg,
		services.NewPaymentService(db),
		services.NewPremiumService(db, testCfg.Subscription),
		services.NewNotificationService(db, &notifier.LogNotifier{Log: log}, log, 3),
		services.NewReportService(db))

	r := gin.New()
	r.POST("/admin/login", AdminLogin)
	r.POST("/api/admin/password", ChangeAdminPassword)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginWithDefaultPassword(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/admin/login", gin.H{"password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/admin/login", gin.H{"password": "guess"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginAfterPasswordRotation(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/admin/password", gin.H{"new_password": "rotated-secret"})
	require.Equal(t, http.StatusOK, w.Code)

	// The stored hash now gates admin login; the default no longer works.
	w = postJSON(t, r, "/admin/login", gin.H{"password": "admin123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/admin/login", gin.H{"password": "rotated-secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}
