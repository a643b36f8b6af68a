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

// CommentHandler implements the review endpoints: anonymous submission with
// a per-IP cooldown, public listing of approved entries, staff moderation.
type CommentHandler struct {
	Cfg      config.Config
	Comments *repository.CommentRepo
}

func NewCommentHandler(cfg config.Config, r *repository.CommentRepo) *CommentHandler {
	return &CommentHandler{Cfg: cfg, Comments: r}
}

// ListAll handles GET /comments (moderation view, staff only).
func (h *CommentHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListAll(ctx)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
}

// ListApproved handles GET /approved_comments (public).
func (h *CommentHandler) ListApproved(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListApproved(ctx)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
}

// Add handles POST /add_comment.  An empty comment text is allowed and
// treated as a rating-only review.
func (h *CommentHandler) Add(c echo.Context) error {
	var req struct {
		Name    string  `json:"name"`
		Comment string  `json:"comment"`
		Rating  float64 `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if !utils.MinLen(req.Name, 2) {
		return failField(c, "Le nom doit contenir au moins 2 caractères.", "name")
	}
	if !utils.ValidRating(req.Rating) {
		return failField(c, "La note doit être comprise entre 0 et 5 par demi-point.", "rating")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm := model.Comment{
		Name:    strings.TrimSpace(req.Name),
		Comment: strings.TrimSpace(req.Comment),
		Rating:  req.Rating,
		IP:      c.RealIP(),
	}
	id, err := h.Comments.Create(ctx, &cm)
	if err != nil {
		if err == repository.ErrCommentCooldown {
			return fail(c, http.StatusBadRequest, "Merci d'attendre 30 minutes entre deux commentaires.")
		}
		return failDebug(c, http.StatusBadRequest, "Le commentaire n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

// Approve handles POST /approve_comment/:id (staff moderation).
func (h *CommentHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.SetApproved(ctx, id, req.Approved); err != nil {
		return failDebug(c, http.StatusBadRequest, "Le commentaire n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /delete_comment/:id (staff).
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.Delete(ctx, id); err != nil {
		return failDebug(c, http.StatusBadRequest, "Le commentaire n'a pas pu être supprimé.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
