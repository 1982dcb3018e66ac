package http

import (
	"encoding/json"
	"net/http"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type SettingsHandler struct {
	service interfaces.SettingsService
	logger  logger.Logger
}

func NewSettingsHandler(service interfaces.SettingsService, lgr logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: lgr}
}

type setSettingRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, settings)
}

func (h *SettingsHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	var req setSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("body", "invalid request body"))
		return
	}

	setting, err := h.service.Set(r.Context(), req.Key, req.Value, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, setting)
}
