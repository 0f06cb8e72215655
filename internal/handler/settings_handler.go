package handler

import (
	"net/http"

	"github.com/Eursukkul/rental-backoffice/internal/dto"
	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type SettingsHandler struct {
	svc service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/settings")
	g.GET("", h.ListSettings)
	g.PUT("/:key", h.UpdateSetting)
}

func (h *SettingsHandler) ListSettings(c echo.Context) error {
	all, err := h.svc.All(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, all)
}

func (h *SettingsHandler) UpdateSetting(c echo.Context) error {
	key := c.Param("key")

	var req dto.UpdateSettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.Set(c.Request().Context(), key, req.Value); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}
