package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	"github.com/ateliermartel/garage-api/internal/model"
	"github.com/ateliermartel/garage-api/internal/repository"
	"github.com/ateliermartel/garage-api/internal/utils"
)

// ServiceHandler implements the services endpoints: public listing,
// admin-only mutation.  Mutations arrive as multipart forms because of the
// optional image upload; the image is validated against the sniffed type
// and stored as a data URI.
type ServiceHandler struct {
	Cfg      config.Config
	Services *repository.ServiceRepo
}

func NewServiceHandler(cfg config.Config, s *repository.ServiceRepo) *ServiceHandler {
	return &ServiceHandler{Cfg: cfg, Services: s}
}

// List handles GET /services.
func (h *ServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "services": services})
}

// bindService reads the multipart form into a Service.  The error return
// carries a user-facing message; the field return names the bad input.
func (h *ServiceHandler) bindService(c echo.Context) (model.Service, string, string) {
	var s model.Service
	s.Name = strings.TrimSpace(c.FormValue("name"))
	if !utils.MinLen(s.Name, 2) {
		return s, "name", "Le nom doit contenir au moins 2 caractères."
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("amount")), 64)
	if err != nil || amount < 0 {
		return s, "amount", "Le montant doit être un nombre positif."
	}
	s.Amount = amount
	s.Description = strings.TrimSpace(c.FormValue("description"))

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return s, "image", "L'image n'a pas pu être lue."
		}
		defer func() { _ = f.Close() }()
		data, err := io.ReadAll(io.LimitReader(f, utils.MaxImageBytes+1))
		if err != nil {
			return s, "image", "L'image n'a pas pu être lue."
		}
		mime, err := utils.ValidateImage(data)
		if err != nil {
			return s, "image", "Image invalide (jpeg, png ou webp, 8 Mo maximum)."
		}
		s.Image = utils.DataURI(mime, data)
	}
	return s, "", ""
}

// Add handles POST /add_service.
func (h *ServiceHandler) Add(c echo.Context) error {
	s, field, msg := h.bindService(c)
	if field != "" {
		return failField(c, msg, field)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Services.Create(ctx, &s)
	if err != nil {
		return failDebug(c, http.StatusBadRequest, "Le service n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

// Update handles POST /update_service/:id.
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	s, field, msg := h.bindService(c)
	if field != "" {
		return failField(c, msg, field)
	}
	s.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Services.Update(ctx, &s); err != nil {
		return failDebug(c, http.StatusBadRequest, "Le service n'a pas pu être enregistré.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /delete_service/:id.
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Services.Delete(ctx, id); err != nil {
		return failDebug(c, http.StatusBadRequest, "Le service n'a pas pu être supprimé.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
