package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/middleware"
	"afrisoutien/internal/models"
	"afrisoutien/internal/services"
	"afrisoutien/internal/tokens"
)

const (
	refreshCookie = "refresh_token"
	// refresh tokens only ever travel to the auth endpoints
	refreshCookiePath = "/api/auth"
)

type AuthHandler struct {
	users  services.UserService
	auth   services.AuthService
	issuer *tokens.Issuer
	secure bool // Secure cookie flag, on in production
}

func NewAuthHandler(users services.UserService, auth services.AuthService, issuer *tokens.Issuer, secure bool) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, issuer: issuer, secure: secure}
}

func (h *AuthHandler) setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, token, int(tokens.AccessTTL.Seconds()), "/", "", h.secure, true)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, int(tokens.RefreshTTL.Seconds()), refreshCookiePath, "", h.secure, true)
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", h.secure, true)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, "", -1, refreshCookiePath, "", h.secure, true)
}

// @Summary      Connexion
// @Description  Authentifie l'utilisateur et pose les cookies de session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Identifiants"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	// one opaque message for unknown email and wrong password alike
	user, err := h.users.GetByEmail(email)
	if err != nil || user == nil {
		log.Printf("[auth][login] unknown email=%q", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !h.auth.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)) {
		log.Printf("[auth][login] password mismatch for userID=%d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, err := h.issuer.IssueAccess(user.ID)
	if err != nil {
		log.Printf("[auth][login] sign access token failed for userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	refreshToken, err := h.issuer.IssueRefresh(user.ID)
	if err != nil {
		log.Printf("[auth][login] sign refresh token failed for userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	h.setAccessCookie(c, accessToken)
	h.setRefreshCookie(c, refreshToken)

	log.Printf("[auth][login] success userID=%d role=%s took=%s",
		user.ID, user.Role, time.Since(start).Truncate(time.Millisecond))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// @Summary      Rafraîchir le jeton d'accès
// @Description  Échange un refresh token valide contre un nouveau jeton d'accès
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	rt, err := c.Cookie(refreshCookie)
	if err != nil || rt == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": "REFRESH_TOKEN_MISSING", "error": "Refresh token required",
		})
		return
	}

	userID, err := h.issuer.VerifyRefresh(rt)
	if err != nil {
		if errors.Is(err, tokens.ErrExpired) {
			// session is over for good, force a full re-login
			h.clearCookies(c)
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": "REFRESH_TOKEN_EXPIRED", "error": "Session expired, please log in again",
			})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{
			"code": "REFRESH_TOKEN_INVALID", "error": "Invalid refresh token",
		})
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": "USER_NOT_FOUND", "error": "Account no longer exists",
		})
		return
	}

	// mint a new access token only; the refresh cookie stays as issued at
	// login and keeps its original expiry
	accessToken, err := h.issuer.IssueAccess(user.ID)
	if err != nil {
		log.Printf("[auth][refresh] sign access token failed for userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	h.setAccessCookie(c, accessToken)

	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed", "user": user})
}

// @Summary      Déconnexion
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// idempotent: clearing absent cookies is a no-op
	h.clearCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary      Profil de l'utilisateur connecté
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "TOKEN_MISSING", "error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
