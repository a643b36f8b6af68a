package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	q "github.com/ateliermartel/garage-api/internal/queue"
	queue_publisher "github.com/ateliermartel/garage-api/internal/service"
	"github.com/ateliermartel/garage-api/internal/utils"
)

// ContactHandler implements POST /contact: the validated message is
// published to the contact queue and delivered by the background consumer.
type ContactHandler struct {
	Cfg config.Config
}

func NewContactHandler(cfg config.Config) *ContactHandler {
	return &ContactHandler{Cfg: cfg}
}

// Send handles POST /contact.
func (h *ContactHandler) Send(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if !utils.MinLen(req.Name, 2) {
		return failField(c, "Le nom doit contenir au moins 2 caractères.", "name")
	}
	if !utils.ValidEmail(req.Email) {
		return failField(c, "Adresse email invalide.", "email")
	}
	if req.Phone != "" && !utils.ValidPhone(req.Phone) {
		return failField(c, "Numéro de téléphone invalide.", "phone")
	}
	if !utils.MinLen(req.Message, 10) {
		return failField(c, "Le message doit contenir au moins 10 caractères.", "message")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev := q.ContactMessageEvent{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Message:    strings.TrimSpace(req.Message),
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishContactMessage(ctx, ev); err != nil {
		return failDebug(c, http.StatusInternalServerError, "Le message n'a pas pu être envoyé.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
