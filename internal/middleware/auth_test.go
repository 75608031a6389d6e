package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-visit-server/internal/config"
	"hospital-visit-server/internal/models"
	"hospital-visit-server/internal/utils"
)

func authTestRouter(cfg *config.Config, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg), handler)
	return router
}

func TestAuthMiddlewareSetsContext(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret", JWTExpirationMinutes: 15}
	user := &models.User{Role: models.RoleDoctor}
	user.ID = "user-1"
	token, err := utils.GenerateAccessToken(user, "", cfg)
	require.NoError(t, err)

	router := authTestRouter(cfg, func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, "user-1", userID)

		role, ok := GetUserRoleFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, models.RoleDoctor, role)

		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret"}
	router := authTestRouter(cfg, func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret"}
	router := authTestRouter(cfg, func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret", JWTExpirationMinutes: 15}
	patient := &models.User{Role: models.RolePatient}
	patient.ID = "user-2"
	token, err := utils.GenerateAccessToken(patient, "", cfg)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin-only", AuthMiddleware(cfg), RoleAuthMiddleware(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
