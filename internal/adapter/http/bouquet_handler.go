package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type BouquetHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewBouquetHandler(service interfaces.CatalogService, lgr logger.Logger) *BouquetHandler {
	return &BouquetHandler{service: service, logger: lgr}
}

type bouquetRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// ListBouquets is public and returns active bouquets. With all=true an
// authenticated admin also sees deactivated ones.
func (h *BouquetHandler) ListBouquets(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if r.URL.Query().Get("all") == "true" {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			respondError(w, domain.ErrUnauthorized)
			return
		}
		activeOnly = false
	}

	bouquets, err := h.service.ListBouquets(r.Context(), activeOnly)
	if err != nil {
		respondError(w, err)
		return
	}

	if bouquets == nil {
		bouquets = []*domain.Bouquet{}
	}
	respondData(w, http.StatusOK, bouquets)
}

func (h *BouquetHandler) GetBouquet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}

	bouquet, err := h.service.GetBouquet(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, bouquet)
}

func (h *BouquetHandler) CreateBouquet(w http.ResponseWriter, r *http.Request) {
	var req bouquetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("body", "invalid request body"))
		return
	}

	bouquet, err := h.service.CreateBouquet(r.Context(), interfaces.BouquetCommand{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, bouquet)
}

func (h *BouquetHandler) UpdateBouquet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}

	var req bouquetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("body", "invalid request body"))
		return
	}

	bouquet, err := h.service.UpdateBouquet(r.Context(), id, interfaces.BouquetCommand{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, bouquet)
}

// DeleteBouquet deactivates the bouquet. Physical deletion would break
// historic orders that reference it.
func (h *BouquetHandler) DeleteBouquet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}

	if err := h.service.DeactivateBouquet(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "bouquet deactivated")
}
