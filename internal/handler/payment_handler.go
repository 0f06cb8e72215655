package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/dto"
	"github.com/Eursukkul/rental-backoffice/internal/format"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	svc service.PaymentService
	now func() time.Time
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc, now: time.Now}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.GET("/:id/payments", h.ListPayments)
	bookings.POST("/:id/payments", h.AddPayment)
	bookings.POST("/:id/payments/schedule", h.RebuildSchedule)

	payments := e.Group("/api/v1/payments")
	payments.PATCH("/:id/paid", h.MarkPaid)
	payments.DELETE("/:id", h.DeletePayment)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	entries, err := h.svc.ListPayments(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToLedgerResponse(id, entries, h.now()))
}

// RebuildSchedule takes the form-encoded payment form (deposit_amount,
// deposit_date, installments_count, installment_<i>_due/_amount/_note).
func (h *PaymentHandler) RebuildSchedule(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	res, err := h.svc.RebuildSchedule(c.Request().Context(), id, form)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToScheduleResponse(id, res, h.now()))
}

func (h *PaymentHandler) AddPayment(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	var req dto.AddPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	due, err := format.ParseDate(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date")
	}

	entry := &models.PaymentEntry{
		DueDate: due,
		Amount:  req.Amount,
		Status:  models.PaymentStatus(req.Status),
		Note:    strings.TrimSpace(req.Note),
	}
	if req.PaidDate != "" {
		paid, err := format.ParseDate(req.PaidDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paid_date")
		}
		entry.PaidDate = &paid
	}

	if err := h.svc.AddPayment(c.Request().Context(), id, entry); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPaymentResponse(entry, h.now()))
}

func (h *PaymentHandler) MarkPaid(c echo.Context) error {
	id, err := parseID(c, "payment")
	if err != nil {
		return err
	}

	var req dto.MarkPaidRequest
	if c.Request().ContentLength > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	var paidDate *time.Time
	if req.PaidDate != "" {
		d, err := format.ParseDate(req.PaidDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paid_date")
		}
		paidDate = &d
	}

	entry, err := h.svc.MarkPaid(c.Request().Context(), id, paidDate)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPaymentResponse(entry, h.now()))
}

func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id, err := parseID(c, "payment")
	if err != nil {
		return err
	}
	if err := h.svc.DeletePayment(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
