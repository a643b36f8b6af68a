package handler

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	"github.com/ateliermartel/garage-api/internal/middleware"
	"github.com/ateliermartel/garage-api/internal/model"
	"github.com/ateliermartel/garage-api/internal/repository"
	"github.com/ateliermartel/garage-api/internal/utils"
)

// OfferHandler implements the vehicle listing endpoints: the public
// filtered search, the filter-limits discovery, gallery image streaming,
// and the staff CRUD including gallery uploads.
type OfferHandler struct {
	Cfg    config.Config
	Offers *repository.OfferRepo
}

func NewOfferHandler(cfg config.Config, o *repository.OfferRepo) *OfferHandler {
	return &OfferHandler{Cfg: cfg, Offers: o}
}

// attachGallery resolves each offer's gallery directory into public URLs.
func (h *OfferHandler) attachGallery(offers []model.Offer) {
	for i := range offers {
		offers[i].Gallery = utils.GalleryURLs(h.Cfg.GalleryRoot, offers[i].Image, h.Cfg.PublicRoot, offers[i].ID)
	}
}

// Search handles POST /offers/:page.  The body carries the open-ended
// filter map plus the requested page size; anonymous and guest callers only
// see active offers, staff sees everything.
func (h *OfferHandler) Search(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		page = 1
	}
	var req struct {
		Filters map[string]string `json:"filters"`
		PerPage int               `json:"per_page"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if req.PerPage < 1 {
		req.PerPage = 12
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	includeInactive := middleware.CurrentUser(c).IsStaff()
	offers, pg, err := h.Offers.Search(ctx, req.Filters, page, req.PerPage, includeInactive)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	h.attachGallery(offers)
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"offers":     offers,
		"page":       pg.Page,
		"per_page":   pg.PerPage,
		"total":      pg.Total,
		"total_page": pg.TotalPage,
	})
}

// FiltersLimits handles GET /offers/filters_limits: the widget metadata
// describing the legal value space of each registered filter.
func (h *OfferHandler) FiltersLimits(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	limits, err := h.Offers.FiltersLimits(ctx)
	if err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "filters": limits})
}

// Image handles GET /image/:id/:file and streams one gallery file.  The
// filename token is base64; resolution canonicalizes and verifies
// containment, so anything that does not land on a regular file inside the
// offer's own directory is a plain 404.
func (h *OfferHandler) Image(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "Image introuvable.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer, err := h.Offers.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusNotFound, "Image introuvable.")
	}
	path, err := utils.ResolveGalleryFile(h.Cfg.GalleryRoot, offer.Image, c.Param("file"))
	if err != nil {
		return fail(c, http.StatusNotFound, "Image introuvable.")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(c, http.StatusNotFound, "Image introuvable.")
	}
	return c.Blob(http.StatusOK, utils.SniffMIME(data), data)
}

type offerReq struct {
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Price          float64            `json:"price"`
	ReleaseDate    string             `json:"release_date"` // YYYY-MM
	Mileage        int64              `json:"mileage"`
	Active         bool               `json:"active"`
	Informations   model.Informations `json:"informations"`
	EquipmentsList []string           `json:"equipments_list"`
}

func validateOffer(req *offerReq) (string, string) {
	if !utils.MinLen(req.Name, 2) {
		return "name", "Le nom doit contenir au moins 2 caractères."
	}
	if req.Price < 0 {
		return "price", "Le prix doit être un nombre positif."
	}
	if !utils.ValidYearMonth(req.ReleaseDate) {
		return "release_date", "La date de mise en circulation doit être au format AAAA-MM."
	}
	if req.Mileage < 0 {
		return "mileage", "Le kilométrage doit être un nombre positif."
	}
	if req.EquipmentsList == nil {
		req.EquipmentsList = []string{}
	}
	return "", ""
}

// Add handles POST /add_offer.  A fresh gallery directory is created for
// the offer, named from the slug of the offer name plus a short random
// suffix so two offers with the same name never share a directory.
func (h *OfferHandler) Add(c echo.Context) error {
	var req offerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if field, msg := validateOffer(&req); field != "" {
		return failField(c, msg, field)
	}

	folder := utils.Slugify(req.Name) + "-" + uuid.NewString()[:8]
	if err := os.MkdirAll(filepath.Join(h.Cfg.GalleryRoot, folder), 0o755); err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer := model.Offer{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		ReleaseDate:    req.ReleaseDate,
		Mileage:        req.Mileage,
		Active:         req.Active,
		Informations:   req.Informations,
		EquipmentsList: req.EquipmentsList,
		Image:          folder,
	}
	id, err := h.Offers.Create(ctx, &offer)
	if err != nil {
		return failDebug(c, http.StatusBadRequest, "L'annonce n'a pas pu être enregistrée.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

// Update handles POST /update_offer/:id.
func (h *OfferHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	var req offerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requête invalide.")
	}
	if field, msg := validateOffer(&req); field != "" {
		return failField(c, msg, field)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer := model.Offer{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		ReleaseDate:    req.ReleaseDate,
		Mileage:        req.Mileage,
		Active:         req.Active,
		Informations:   req.Informations,
		EquipmentsList: req.EquipmentsList,
	}
	if err := h.Offers.Update(ctx, &offer); err != nil {
		return failDebug(c, http.StatusBadRequest, "L'annonce n'a pas pu être enregistrée.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /delete_offer/:id and removes the gallery directory
// with the row.  A failed directory removal only logs: the row is already
// gone and the orphan directory is harmless.
func (h *OfferHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer, err := h.Offers.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusBadRequest, "L'annonce n'a pas pu être supprimée.")
		}
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	if err := h.Offers.Delete(ctx, id); err != nil {
		return failDebug(c, http.StatusBadRequest, "L'annonce n'a pas pu être supprimée.", h.Cfg.Debug, err)
	}
	if offer.Image != "" {
		if err := os.RemoveAll(filepath.Join(h.Cfg.GalleryRoot, offer.Image)); err != nil {
			c.Logger().Warnf("gallery cleanup failed for offer %d: %v", id, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UploadImage handles POST /add_offer_image/:id: one multipart image file
// appended to the offer's gallery under a random name.
func (h *OfferHandler) UploadImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	offer, err := h.Offers.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Annonce inconnue.")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return failField(c, "Aucun fichier reçu.", "image")
	}
	f, err := fh.Open()
	if err != nil {
		return failField(c, "L'image n'a pas pu être lue.", "image")
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(io.LimitReader(f, utils.MaxImageBytes+1))
	if err != nil {
		return failField(c, "L'image n'a pas pu être lue.", "image")
	}
	mime, err := utils.ValidateImage(data)
	if err != nil {
		return failField(c, "Image invalide (jpeg, png ou webp, 8 Mo maximum).", "image")
	}

	ext := map[string]string{"image/jpeg": ".jpg", "image/png": ".png", "image/webp": ".webp"}[mime]
	name := uuid.NewString() + ext
	dir := filepath.Join(h.Cfg.GalleryRoot, offer.Image)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return failDebug(c, http.StatusInternalServerError, "Erreur interne.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"url": fmt.Sprintf("%s/image/%d/%s",
			strings.TrimSuffix(h.Cfg.PublicRoot, "/"), id, utils.EncodeImageName(name)),
	})
}

// DeleteImage handles DELETE /delete_offer_image/:id/:file.
func (h *OfferHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Identifiant invalide.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer, err := h.Offers.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Annonce inconnue.")
	}
	path, err := utils.ResolveGalleryFile(h.Cfg.GalleryRoot, offer.Image, c.Param("file"))
	if err != nil {
		return fail(c, http.StatusNotFound, "Image introuvable.")
	}
	if err := os.Remove(path); err != nil {
		return failDebug(c, http.StatusBadRequest, "L'image n'a pas pu être supprimée.", h.Cfg.Debug, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
