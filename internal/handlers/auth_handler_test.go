package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/middleware"
	"afrisoutien/internal/models"
	"afrisoutien/internal/services"
	"afrisoutien/internal/tokens"
)

type fakeUserService struct {
	byID    map[int]*models.User
	byEmail map[string]*models.User
}

func (f *fakeUserService) Register(name, email, password string, role authz.Role) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) GetByID(id int) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserService) GetByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserService) UpdateProfile(userID int, name string) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserService) List(limit, offset int) ([]*models.User, error) { return nil, nil }
func (f *fakeUserService) ChangeRole(userID int, role authz.Role) error   { return nil }
func (f *fakeUserService) Delete(id int) error                            { return nil }

type authTestEnv struct {
	router *gin.Engine
	issuer *tokens.Issuer
	user   *models.User
}

const testPassword = "s3cret-pass"

func newAuthEnv(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := services.NewAuthService()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	user := &models.User{
		ID:           1,
		Name:         "Awa Diop",
		Email:        "awa@example.com",
		PasswordHash: hash,
		Role:         authz.RoleDonor,
	}
	users := &fakeUserService{
		byID:    map[int]*models.User{user.ID: user},
		byEmail: map[string]*models.User{user.Email: user},
	}

	issuer := tokens.NewIssuer("access-secret", "refresh-secret")
	h := NewAuthHandler(users, auth, issuer, false)

	r := gin.New()
	grp := r.Group("/api/auth")
	grp.POST("/login", h.Login)
	grp.POST("/refresh", h.Refresh)
	grp.POST("/logout", h.Logout)
	grp.GET("/me", middleware.Auth(issuer, users), h.Me)

	return &authTestEnv{router: r, issuer: issuer, user: user}
}

func respCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func (env *authTestEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookies(t *testing.T) {
	env := newAuthEnv(t)

	w := env.login(t, "awa@example.com", testPassword)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"awa@example.com"`)
	assert.NotContains(t, w.Body.String(), "password", "hash must never leave the server")

	access := respCookie(w, middleware.AccessCookie)
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, int(tokens.AccessTTL.Seconds()), access.MaxAge)

	refresh := respCookie(w, "refresh_token")
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, "/api/auth", refresh.Path)
	assert.Equal(t, int(tokens.RefreshTTL.Seconds()), refresh.MaxAge)

	// each cookie must verify against its own secret only
	userID, err := env.issuer.VerifyAccess(access.Value)
	require.NoError(t, err)
	assert.Equal(t, env.user.ID, userID)
	_, err = env.issuer.VerifyRefresh(access.Value)
	assert.Error(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newAuthEnv(t)

	for name, creds := range map[string][2]string{
		"unknown email":  {"nobody@example.com", testPassword},
		"wrong password": {"awa@example.com", "wrong"},
	} {
		w := env.login(t, creds[0], creds[1])
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		// one opaque message for both failure modes
		assert.Contains(t, w.Body.String(), "Invalid credentials", name)
		assert.Nil(t, respCookie(w, middleware.AccessCookie), name)
		assert.Nil(t, respCookie(w, "refresh_token"), name)
	}
}

func TestRefreshMintsAccessWithoutRotation(t *testing.T) {
	env := newAuthEnv(t)

	login := env.login(t, "awa@example.com", testPassword)
	require.Equal(t, http.StatusOK, login.Code)
	refresh := respCookie(login, "refresh_token")
	require.NotNil(t, refresh)

	var accessValues []string
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refresh.Value})
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Token refreshed")

		access := respCookie(w, middleware.AccessCookie)
		require.NotNil(t, access)
		userID, err := env.issuer.VerifyAccess(access.Value)
		require.NoError(t, err)
		assert.Equal(t, env.user.ID, userID)
		accessValues = append(accessValues, access.Value)

		// the refresh cookie is never re-set on this path
		assert.Nil(t, respCookie(w, "refresh_token"))
	}
	assert.Len(t, accessValues, 2)
}

func TestRefreshWithoutCookie(t *testing.T) {
	env := newAuthEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "REFRESH_TOKEN_MISSING")
}

func TestRefreshExpiredClearsSession(t *testing.T) {
	env := newAuthEnv(t)

	claims := &tokens.Claims{
		UserID: env.user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("refresh-secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: expired})
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "REFRESH_TOKEN_EXPIRED")

	// both cookies expired so the browser drops the dead session
	access := respCookie(w, middleware.AccessCookie)
	require.NotNil(t, access)
	assert.Less(t, access.MaxAge, 0)
	refresh := respCookie(w, "refresh_token")
	require.NotNil(t, refresh)
	assert.Less(t, refresh.MaxAge, 0)
}

func TestRefreshInvalidKeepsCookies(t *testing.T) {
	env := newAuthEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "not-a-jwt"})
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "REFRESH_TOKEN_INVALID")
	assert.Empty(t, w.Result().Cookies())
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newAuthEnv(t)

	access, err := env.issuer.IssueAccess(env.user.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: access})
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "REFRESH_TOKEN_INVALID")
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newAuthEnv(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Logged out")
	}
}

func TestMeWithExpiredAccessToken(t *testing.T) {
	env := newAuthEnv(t)

	claims := &tokens.Claims{
		UserID: env.user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookie, Value: expired})
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestMeReturnsCurrentUser(t *testing.T) {
	env := newAuthEnv(t)

	login := env.login(t, "awa@example.com", testPassword)
	require.Equal(t, http.StatusOK, login.Code)
	access := respCookie(login, middleware.AccessCookie)
	require.NotNil(t, access)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookie, Value: access.Value})
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"awa@example.com"`)
}
