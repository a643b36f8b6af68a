package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	"github.com/ateliermartel/garage-api/internal/model"
	"github.com/ateliermartel/garage-api/internal/repository"
	"github.com/ateliermartel/garage-api/internal/utils"
)

// OpeningHandler implements the opening-hours endpoints: public listing,
// admin-only mutation.
type OpeningHandler struct {
	Cfg      config.Config
	Openings *repository.OpeningHourRepo
}

func NewOpeningHandler(cfg config.Config, o *repository.OpeningHourRepo) *OpeningHandler {
	return &OpeningHandler{Cfg: cfg, Openings: o}
}

type periodReq struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func validatePeriod(req periodReq) (string, string) {
	if req.Day < 0 || req.Day > 6 {
		return "day", "Le jour doit être compris entre 0 (dimanche) et 6 (samedi)."
	}
	if !utils.ValidHHMM(req.Start) {
		return "start", "Heure d'ouverture invalide (format HHMM)."
	}
	if !utils.ValidHHMM(req.End) {
		return "end", "Heure de fermeture invalide (format HHMM)."
	}
	// HHMM strings compare lexicographically in chronological order
	if req.Start >= req.End {
		return "end", "La fermeture doit être postérieure à l'ouverture."
	}
	return "", ""
}

// List handles GET /openings.
func (h *OpeningHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	periods, err := h.Openings.List(ctx)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "openings": periods})
}

// Add handles POST /add_period.
func (h *OpeningHandler) Add(c echo.Context) error {
	var req periodReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if field, msg := validatePeriod(req); field != "" {
		return failField(c, msg, field)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.OpeningHour{Day: req.Day, Start: req.Start, End: req.End}
	id, err := h.Openings.Create(ctx, &p)
	if err != nil {
		if err == repository.ErrPeriodOverlap {
			return fail(c, http.StatusBadRequest, "Ouverture dans une période connue.")
		}
		return failDebug(c, http.StatusBadRequest, "La période n'a pas pu être enregistrée.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

// Update handles POST /update_period/:id.
func (h *OpeningHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	var req periodReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if field, msg := validatePeriod(req); field != "" {
		return failField(c, msg, field)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.OpeningHour{ID: id, Day: req.Day, Start: req.Start, End: req.End}
	if err := h.Openings.Update(ctx, &p); err != nil {
		if err == repository.ErrPeriodOverlap {
			return fail(c, http.StatusBadRequest, "Ouverture dans une période connue.")
		}
		return failDebug(c, http.StatusBadRequest, "La période n'a pas pu être enregistrée.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /delete_period/:id.
func (h *OpeningHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Openings.Delete(ctx, id); err != nil {
		return failDebug(c, http.StatusBadRequest, "La période n'a pas pu être supprimée.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
