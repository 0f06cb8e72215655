package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Eursukkul/rental-backoffice/internal/dto"
	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

const maxSignatureUpload = 5 << 20

type ContractHandler struct {
	contracts  service.ContractService
	signatures service.SignatureService
}

func NewContractHandler(contracts service.ContractService, signatures service.SignatureService) *ContractHandler {
	return &ContractHandler{contracts: contracts, signatures: signatures}
}

func (h *ContractHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.GET("/:id/contract", h.RenderContract)
	bookings.POST("/:id/contract", h.GenerateContract)
	bookings.GET("/:id/contract/pdf", h.DownloadContract)
	bookings.PUT("/:id/signature", h.UploadTenantSignature)

	e.PUT("/api/v1/signatures/landlord", h.UploadLandlordSignature)
}

func (h *ContractHandler) RenderContract(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	out, err := h.contracts.RenderText(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	missing := out.Missing
	if missing == nil {
		missing = []string{}
	}
	return c.JSON(http.StatusOK, dto.ContractTextResponse{
		BookingID: id,
		Text:      out.Text,
		Missing:   missing,
		Complete:  out.Complete(),
	})
}

func (h *ContractHandler) GenerateContract(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	path, err := h.contracts.GeneratePDF(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, dto.ArtifactResponse{BookingID: id, Path: path})
}

func (h *ContractHandler) DownloadContract(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	path, err := h.contracts.OpenPDF(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.Attachment(path, fmt.Sprintf("contract_%d.pdf", id))
}

func (h *ContractHandler) UploadTenantSignature(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}
	data, err := readUpload(c)
	if err != nil {
		return err
	}

	path, err := h.signatures.UploadTenant(c.Request().Context(), id, data)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ArtifactResponse{BookingID: id, Path: path})
}

func (h *ContractHandler) UploadLandlordSignature(c echo.Context) error {
	data, err := readUpload(c)
	if err != nil {
		return err
	}

	path, err := h.signatures.UploadLandlord(c.Request().Context(), data)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.ArtifactResponse{Path: path})
}

func readUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxSignatureUpload {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSignatureUpload))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	return data, nil
}
