package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citymarket/citymarket/internal/application"
	"github.com/citymarket/citymarket/internal/interface/middleware"
	"github.com/citymarket/citymarket/pkg/helpers"
	"github.com/citymarket/citymarket/pkg/response"
	"github.com/citymarket/citymarket/pkg/validation"
)

const (
	merchantDashboardPath = "/merchant/dashboard/"
	shopperDashboardPath  = "/user/dashboard/"
	registerShopPath      = "/merchant/register-shop/"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username   string `form:"username" json:"username" binding:"required,min=3,max=100"`
	Email      string `form:"email" json:"email" binding:"required,email"`
	Password   string `form:"password" json:"password" binding:"required,pwd"`
	IsMerchant bool   `form:"is_merchant" json:"is_merchant"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterForm GET /register/
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"fields": []string{"username", "email", "password", "is_merchant"},
	}, "registration form", nil)
}

// Register POST /register/
// Merchants are logged in right away and pointed at shop registration;
// shoppers go back to login.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, p, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		IsMerchant: req.IsMerchant,
	})
	if err != nil {
		if errors.Is(err, application.ErrUsernameTaken) {
			response.Error[any](c, http.StatusConflict, "username already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	data := gin.H{
		"account_id":  a.ID,
		"username":    a.Username,
		"is_merchant": p.IsMerchant,
	}

	if p.IsMerchant {
		pair, err := h.Auth.IssueTokens(c.Request.Context(), a)
		if err != nil {
			h.Logger.WithError(err).Error("auto-login after registration failed")
			response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
			return
		}
		h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
		response.Success(c, http.StatusCreated, data, "merchant registration successful, now register your shop",
			map[string]any{"redirect": registerShopPath})
		return
	}

	response.Success(c, http.StatusCreated, data, "registration successful, please log in",
		map[string]any{"redirect": middleware.LoginPath})
}

// LoginForm GET /login/
func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"fields": []string{"username", "password"},
	}, "login form", nil)
}

// Login POST /login/
// Dispatches by role after establishing the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	p, err := h.Auth.ProfileOf(c.Request.Context(), a.ID)
	if err != nil {
		if errors.Is(err, application.ErrProfileMissing) {
			// Recoverable: the account exists but carries no role record.
			c.Redirect(http.StatusFound, middleware.LoginPath+"?error=profile+not+found")
			return
		}
		h.Logger.WithError(err).Error("profile lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	pair, err := h.Auth.IssueTokens(c.Request.Context(), a)
	if err != nil {
		h.Logger.WithError(err).Error("token issue failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	redirect := shopperDashboardPath
	if p.IsMerchant {
		redirect = merchantDashboardPath
	}
	response.Success(c, http.StatusOK, gin.H{
		"account_id":  a.ID,
		"username":    a.Username,
		"is_merchant": p.IsMerchant,
	}, "login successful", map[string]any{"redirect": redirect})
}

// Refresh POST /refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", nil)
}

// Logout GET /logout/
// Always allowed, even for an actor that is already logged out.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		if claims, pErr := h.Auth.JWT.ParseAccessToken(token); pErr == nil {
			h.Auth.EndSession(c.Request.Context(), claims.AccountID)
		}
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// Home GET /
func (h *AuthHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
