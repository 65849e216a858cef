package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	request "invoicetracker/internal/adapter/http/dto/request"
	response "invoicetracker/internal/adapter/http/dto/response"
	"invoicetracker/internal/adapter/http/middleware"
	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase"
	"invoicetracker/internal/usecase/interfaces"
	"invoicetracker/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)
	errMissingUploadFile     = pkg.NewDomainErrorSimple("MISSING_FILE", "A file part named \"file\" is required", http.StatusBadRequest)
	errNotAuthenticated      = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
)

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// ScreenUpload runs the pre-create screening pass: upload validation,
// extraction and duplicate detection. Nothing is persisted.
func (h *InvoiceHandler) ScreenUpload(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}

	data, contentType, fileName, err := readUploadPart(c)
	if err != nil {
		c.JSON(errMissingUploadFile.HTTPStatus, errMissingUploadFile.ToHTTPError())
		return
	}

	result, err := h.usecase.ScreenUpload(c.Request.Context(), actor, usecase.UploadScreeningRequest{
		FileBytes:       data,
		FileContentType: contentType,
		FileName:        fileName,
	})
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromScreening(result.TempFingerprintID, result.Extraction, result.Duplicate))
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}

	var form request.CreateInvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}
	date, err := form.ResolveDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_DATE", err.Error(), http.StatusBadRequest).ToHTTPError())
		return
	}
	quantities, err := form.ResolveQuantities()
	if err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_QUANTITIES", err.Error(), http.StatusBadRequest).ToHTTPError())
		return
	}

	req := usecase.CreateInvoiceRequest{
		RequestedName:     form.Name,
		Date:              date,
		Quantities:        quantities,
		TempFingerprintID: form.TempFingerprintID,
	}
	if data, contentType, fileName, err := readUploadPart(c); err == nil {
		req.FileBytes = data
		req.FileContentType = contentType
		req.OriginalFileName = fileName
	}

	inv, err := h.usecase.Create(c.Request.Context(), actor, req)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromInvoice(*inv))
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}
	date, err := payload.ResolveDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_DATE", err.Error(), http.StatusBadRequest).ToHTTPError())
		return
	}
	quantities, err := payload.ResolveQuantities()
	if err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_QUANTITIES", err.Error(), http.StatusBadRequest).ToHTTPError())
		return
	}

	inv, err := h.usecase.Update(c.Request.Context(), actor, id, usecase.UpdateInvoiceRequest{
		Date:       date,
		Status:     payload.ResolveStatus(),
		Quantities: quantities,
	})
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(*inv))
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.usecase.Delete(c.Request.Context(), actor, id); err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.usecase.Get(c.Request.Context(), actor, id)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(*inv))
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}

	filter := interfaces.InvoiceFilter{
		Status: entities.InvoiceStatus(c.Query("status")),
		Cursor: c.Query("cursor"),
	}
	if v := c.Query("owner_id"); v != "" {
		ownerID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_OWNER_ID", "owner_id must be numeric", http.StatusBadRequest).ToHTTPError())
			return
		}
		filter.OwnerID = ownerID
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 32)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_LIMIT", "limit must be a non-negative number", http.StatusBadRequest).ToHTTPError())
			return
		}
		filter.Limit = int32(limit)
	}

	invoices, nextCursor, err := h.usecase.List(c.Request.Context(), actor, filter)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(invoices, nextCursor))
}

func (h *InvoiceHandler) DownloadInvoiceFile(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	data, fileName, err := h.usecase.DownloadFile(c.Request.Context(), actor, id)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, contentType, data)
}

func (h *InvoiceHandler) GetInvoiceAudit(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entries, err := h.usecase.AuditLog(c.Request.Context(), actor, id)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAuditEntries(entries))
}

func readUploadPart(c *gin.Context) (data []byte, contentType, fileName string, err error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", "", err
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", "", err
	}
	contentType = header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	return data, contentType, header.Filename, nil
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		appErr := pkg.NewDomainErrorSimple("INVALID_ID", "Invalid invoice id", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return 0, false
	}
	return id, true
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoInvoiceFile):
		return pkg.NewDomainErrorSimple("NO_INVOICE_FILE", "Invoice has no stored file", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed to access this invoice", http.StatusForbidden)
	case errors.Is(err, usecase.ErrNoSuitableCreator),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrProductsNotFound),
		errors.Is(err, usecase.ErrFileTooLarge),
		errors.Is(err, usecase.ErrUnsupportedFileType),
		errors.Is(err, usecase.ErrExtensionMismatch):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
