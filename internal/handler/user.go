package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	"github.com/ateliermartel/garage-api/internal/model"
	"github.com/ateliermartel/garage-api/internal/repository"
	"github.com/ateliermartel/garage-api/internal/utils"
)

// UserHandler implements the admin-only user management endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type userReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// validateProfile checks the shared profile fields and returns the field
// name and message of the first violation.
func validateProfile(req *userReq) (string, string) {
	if !utils.ValidEmail(req.Email) {
		return "email", "Adresse email invalide."
	}
	if !utils.MinLen(req.Name, 2) {
		return "name", "Le nom doit contenir au moins 2 caractères."
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleWorker {
		return "role", "Rôle inconnu."
	}
	req.Role = role
	return "", ""
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

// Add handles POST /add_user.
func (h *UserHandler) Add(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if field, msg := validateProfile(&req); field != "" {
		return failField(c, msg, field)
	}
	if !utils.ValidPassword(req.Password) {
		return failField(c, "Le mot de passe doit contenir 8 caractères dont une majuscule, une minuscule et un chiffre.", "password")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Email, hash, strings.TrimSpace(req.Name), req.Role)
	if err != nil {
		if err == repository.ErrEmailExists {
			return failField(c, "Cette adresse email est déjà utilisée.", "email")
		}
		return failDebug(c, http.StatusBadRequest, "L'utilisateur n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

// Update handles POST /update_user/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if field, msg := validateProfile(&req); field != "" {
		return failField(c, msg, field)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Update(ctx, id, req.Email, strings.TrimSpace(req.Name), req.Role); err != nil {
		if err == repository.ErrEmailExists {
			return failField(c, "Cette adresse email est déjà utilisée.", "email")
		}
		return failDebug(c, http.StatusBadRequest, "L'utilisateur n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /delete_user/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return failDebug(c, http.StatusBadRequest, "L'utilisateur n'a pas pu être supprimé.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Activate handles POST /activate_user/:id.
func (h *UserHandler) Activate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetActive(ctx, id, req.Active); err != nil {
		return failDebug(c, http.StatusBadRequest, "L'utilisateur n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ChangePassword handles POST /change_user_password/:id.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if !utils.ValidPassword(req.Password) {
		return failField(c, "Le mot de passe doit contenir 8 caractères dont une majuscule, une minuscule et un chiffre.", "password")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetPassword(ctx, id, hash); err != nil {
		return failDebug(c, http.StatusBadRequest, "Le mot de passe n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ResetPassword handles POST /reset_user_password/:id: a random password is
// generated, stored, and returned once to the admin.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	plain, err := utils.RandomPassword(12)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	hash, err := utils.HashPassword(plain)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetPassword(ctx, id, hash); err != nil {
		return failDebug(c, http.StatusBadRequest, "Le mot de passe n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "password": plain})
}
