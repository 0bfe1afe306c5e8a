package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/locpham-gh/the-gathering/internal/model"
	"github.com/locpham-gh/the-gathering/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(jwtUtil *utils.JWTUtil, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(jwtUtil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID := c.GetInt(AuthUserKey)
		role, _ := c.Get(AuthRoleKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupAuthRouter(utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	router := setupAuthRouter(utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupAuthRouter(utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthMiddleware_ExpiredTokenSameAsInvalid(t *testing.T) {
	expired := utils.NewJWTUtil("secret", -1)
	token, err := expired.GenerateToken(1, model.RoleUser)
	require.NoError(t, err)

	router := setupAuthRouter(utils.NewJWTUtil("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthMiddleware_ValidTokenPopulatesContext(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	token, err := jwtUtil.GenerateToken(9, model.RoleAdmin)
	require.NoError(t, err)

	router := setupAuthRouter(jwtUtil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":9`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAdminMiddleware_ForbidsNonAdmin(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	token, err := jwtUtil.GenerateToken(2, model.RoleUser)
	require.NoError(t, err)

	router := setupAuthRouter(jwtUtil, AdminMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	token, err := jwtUtil.GenerateToken(3, model.RoleAdmin)
	require.NoError(t, err)

	router := setupAuthRouter(jwtUtil, AdminMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware_FailsClosedWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Role gate wired without the JWT middleware in front of it
	router.GET("/admin", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
