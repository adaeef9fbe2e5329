package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/shelfapi/bookshelf/internal/app/auth"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func tokenFor(t *testing.T, svc *auth.JWTService, userID int64, role models.Role) string {
	t.Helper()
	user := &models.User{ID: userID, Email: "reader@example.com"}
	accessToken, _, _, _, err := svc.GenerateTokenPair(user, role)
	require.NoError(t, err)
	return accessToken
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func newReadOnlyOrAuthRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	group := router.Group("/books", ReadOnlyOrAuth(svc))
	group.GET("", okHandler)
	group.POST("", okHandler)
	group.DELETE("/:id/delete", okHandler)
	return router
}

func TestReadOnlyOrAuthAllowsUnauthenticatedReads(t *testing.T) {
	router := newReadOnlyOrAuthRouter(testJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadOnlyOrAuthRejectsUnauthenticatedWrites(t *testing.T) {
	router := newReadOnlyOrAuthRouter(testJWTService())

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/books"},
		{http.MethodDelete, "/books/1/delete"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestReadOnlyOrAuthAllowsAuthenticatedWrites(t *testing.T) {
	svc := testJWTService()
	router := newReadOnlyOrAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, 1, models.RoleMember))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadOnlyOrAuthRejectsGarbageToken(t *testing.T) {
	router := newReadOnlyOrAuthRouter(testJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReadOnlyOrAuthReportsExpiredToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	router := newReadOnlyOrAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, 1, models.RoleMember))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestRoleRequired(t *testing.T) {
	svc := testJWTService()
	router := gin.New()
	router.GET("/dashboard/admin", RoleRequired(svc, models.RoleAdmin), okHandler)

	// No token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong role
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, 1, models.RoleMember))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Matching role
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, 1, models.RoleAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// stubGroupRepo grants a fixed permission set regardless of user
type stubGroupRepo struct {
	granted map[string]bool
}

func (s *stubGroupRepo) GetByName(context.Context, string) (*models.Group, error) { return nil, nil }
func (s *stubGroupRepo) EnsureGroup(context.Context, string) (int64, error)       { return 0, nil }
func (s *stubGroupRepo) EnsurePermission(context.Context, string, string) (int64, error) {
	return 0, nil
}
func (s *stubGroupRepo) AddPermissionToGroup(context.Context, int64, int64) error { return nil }
func (s *stubGroupRepo) AddUserToGroup(context.Context, int64, int64) error       { return nil }
func (s *stubGroupRepo) RemoveUserFromGroup(context.Context, int64, int64) error  { return nil }
func (s *stubGroupRepo) UserHasPermission(_ context.Context, _ int64, codename string) (bool, error) {
	return s.granted[codename], nil
}
func (s *stubGroupRepo) GetPermissionsForUser(context.Context, int64) ([]*models.Permission, error) {
	return nil, nil
}

func TestPermissionRequired(t *testing.T) {
	svc := testJWTService()
	authz := appauth.NewAuthorizationService(&stubGroupRepo{granted: map[string]bool{
		models.PermCanViewBook: true,
	}})

	router := gin.New()
	router.GET("/books", PermissionRequired(svc, authz, models.PermCanViewBook), okHandler)
	router.DELETE("/books/:id/delete", PermissionRequired(svc, authz, models.PermCanDeleteBook), okHandler)

	memberToken := tokenFor(t, svc, 1, models.RoleMember)

	// Granted permission passes
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing permission is forbidden
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/books/1/delete", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins bypass the permission tables
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/books/1/delete", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, svc, 2, models.RoleAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unauthenticated requests are rejected before the permission check
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/books", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
