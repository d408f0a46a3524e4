package api

import (
	"errors"
	"net/http"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/i18n"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SettingsHandler handles the settings endpoints
type SettingsHandler struct {
	services *service.Services
	siteID   int64
	log      zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		services: services,
		siteID:   cfg.Comments.SiteID,
		log:      log,
	}
}

// Get handles GET /v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context(), h.siteID)
	if err != nil {
		h.requestLog(c).Error().Err(err).Msg("Failed to load settings")
		respondError(c, http.StatusInternalServerError, i18n.MsgInternalError)
		return
	}
	respondSuccess(c, http.StatusOK, settings)
}

// Update handles PUT /v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, i18n.MsgInvalidSettings)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.services.Settings.SetEnabledTypes(ctx, h.siteID, req.EnabledTypes); err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(c, http.StatusUnprocessableEntity, i18n.MsgInvalidSettings)
			return
		}
		h.requestLog(c).Error().Err(err).Msg("Failed to save settings")
		respondError(c, http.StatusInternalServerError, i18n.MsgSettingsFailed)
		return
	}

	h.requestLog(c).Info().Int64("user_id", currentUser(c).ID).Msg("Settings updated")
	h.Get(c)
}

func (h *SettingsHandler) requestLog(c *gin.Context) *zerolog.Logger {
	return requestLogger(c, h.log, "settings")
}
