package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	"github.com/ateliermartel/garage-api/internal/middleware"
	"github.com/ateliermartel/garage-api/internal/model"
	"github.com/ateliermartel/garage-api/internal/repository"
	"github.com/ateliermartel/garage-api/internal/utils"
)

// AuthHandler bundles dependencies for the login/refresh/logout endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// issueSession rotates the user's opaque token and signs a fresh bearer
// token around it.  Rotation invalidates every previously issued bearer for
// this user: each user has at most one active session.
func (h *AuthHandler) issueSession(ctx context.Context, u *model.User) (utils.BearerToken, error) {
	opaque, err := utils.NewOpaqueToken()
	if err != nil {
		return utils.BearerToken{}, err
	}
	if err := h.Users.SetToken(ctx, u.ID, opaque); err != nil {
		return utils.BearerToken{}, err
	}
	u.Token = opaque
	return utils.NewBearerToken(h.Cfg.JWTSecret, u.ID, opaque, h.Cfg.TokenTTLMin)
}

func sessionResponse(c echo.Context, bearer utils.BearerToken, u *model.User) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"jwt":     bearer.Token,
		"exp":     bearer.Exp.Unix(),
		"user":    u, // password and opaque token are never serialized
	})
}

// Login handles POST /login: credentials in, signed bearer token out.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return failField(c, "Email et mot de passe requis.", "email")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusUnauthorized, "Nom d'utilisateur ou mot de passe invalide.")
		}
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return fail(c, http.StatusUnauthorized, "Nom d'utilisateur ou mot de passe invalide.")
	}
	if !u.Active {
		return fail(c, http.StatusForbidden, "Compte désactivé.")
	}

	bearer, err := h.issueSession(ctx, &u)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return sessionResponse(c, bearer, &u)
}

// Refresh handles GET /refresh: rotates the session of the authenticated
// caller and returns a fresh bearer token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return fail(c, http.StatusUnauthorized, "Non authentifié.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bearer, err := h.issueSession(ctx, u)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return sessionResponse(c, bearer, u)
}

// Logout handles GET /logout: clears the opaque token, which invalidates
// the bearer token on its next verification.
func (h *AuthHandler) Logout(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return fail(c, http.StatusUnauthorized, "Non authentifié.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetToken(ctx, u.ID, ""); err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
