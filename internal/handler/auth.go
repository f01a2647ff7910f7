// Package handler exposes the HTTP surface: login, catalog browsing,
// order creation and listing, QR tickets and the live seat feed.
// Handlers translate sentinel errors from the lower layers into HTTP
// status codes and never contain reservation logic themselves.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// AuthHandler issues access tokens for the single built-in demo
// account.  Credential issuance is deliberately minimal: the engine only
// ever asks "is this token valid", so one bcrypt-hashed demo credential
// is all the account store there is.
type AuthHandler struct {
	cfg      config.Config
	demoHash string
}

// NewAuthHandler hashes the demo password once at startup so login
// compares against a bcrypt hash rather than the plaintext.
func NewAuthHandler(cfg config.Config) (*AuthHandler, error) {
	hash, err := utils.HashPassword(cfg.DemoPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{cfg: cfg, demoHash: hash}, nil
}

// Login handles POST /api/login.  The body is JSON {email, password};
// on success it returns a bearer access token.  The route is wrapped by
// the per-IP rate limiter, so repeated bad attempts surface as 429
// before they get here.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Email != h.cfg.DemoEmail || !utils.VerifyPassword(h.demoHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.cfg.JWTSecret, body.Email, h.cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"token_type":   "bearer",
	})
}
