package middleware

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/models"
	"afrisoutien/internal/tokens"
)

type fakeLoader struct {
	users map[int]*models.User
}

func (f *fakeLoader) GetByID(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func newTestRouter(issuer *tokens.Issuer, loader UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(issuer, loader), func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": u.ID})
	})
	r.GET("/admin", Auth(issuer, loader), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func bodyCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestAuthMissingToken(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	r := newTestRouter(issuer, &fakeLoader{users: map[int]*models.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_MISSING", bodyCode(t, w))
}

func TestAuthValidBearer(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	loader := &fakeLoader{users: map[int]*models.User{
		5: {ID: 5, Email: "user@example.com", Role: authz.RoleDonor},
	}}
	r := newTestRouter(issuer, loader)

	tok, err := issuer.IssueAccess(5)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":5`)
}

func TestAuthValidCookie(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	loader := &fakeLoader{users: map[int]*models.User{
		5: {ID: 5, Email: "user@example.com", Role: authz.RoleDonor},
	}}
	r := newTestRouter(issuer, loader)

	tok, err := issuer.IssueAccess(5)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: tok})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	r := newTestRouter(issuer, &fakeLoader{users: map[int]*models.User{}})

	claims := &tokens.Claims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("a"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", bodyCode(t, w))
}

func TestAuthInvalidToken(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	r := newTestRouter(issuer, &fakeLoader{users: map[int]*models.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "TOKEN_INVALID", bodyCode(t, w))
}

func TestAuthUserDeleted(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	r := newTestRouter(issuer, &fakeLoader{users: map[int]*models.User{}})

	tok, err := issuer.IssueAccess(99)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", bodyCode(t, w))
}

func TestOptionalAuth(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	loader := &fakeLoader{users: map[int]*models.User{
		5: {ID: 5, Role: authz.RoleDonor},
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", OptionalAuth(issuer, loader), func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})

	// anonymous passes through
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":null`)

	// garbage token is ignored, not rejected
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":null`)

	// valid token attaches the user
	tok, err := issuer.IssueAccess(5)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":5`)
}

func TestRequireAdmin(t *testing.T) {
	issuer := tokens.NewIssuer("a", "r")
	loader := &fakeLoader{users: map[int]*models.User{
		1: {ID: 1, Role: authz.RoleAdmin},
		2: {ID: 2, Role: authz.RoleDonor},
	}}
	r := newTestRouter(issuer, loader)

	adminTok, err := issuer.IssueAccess(1)
	require.NoError(t, err)
	donorTok, err := issuer.IssueAccess(2)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+donorTok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
}
