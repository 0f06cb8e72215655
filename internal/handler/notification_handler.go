package handler

import (
	"net/http"

	"github.com/Eursukkul/rental-backoffice/internal/dto"
	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/bookings/:id/notify", h.Notify)
}

func (h *NotificationHandler) Notify(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	var req dto.NotifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.svc.Send(c.Request().Context(), id, req.Kind)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusAccepted, msg)
}
