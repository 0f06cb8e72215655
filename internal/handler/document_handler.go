package handler

import (
	"fmt"
	"net/http"

	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type DocumentHandler struct {
	svc service.DocumentService
}

func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/bookings/:id/receipt", h.Receipt)
	e.GET("/api/v1/reports/receivables", h.Receivables)
}

func (h *DocumentHandler) Receipt(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}
	file, err := h.svc.Receipt(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return sendFile(c, file)
}

func (h *DocumentHandler) Receivables(c echo.Context) error {
	file, err := h.svc.Receivables(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return serviceError(err)
	}
	return sendFile(c, file)
}

func sendFile(c echo.Context, f *service.File) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Blob(http.StatusOK, f.ContentType, f.Data)
}
