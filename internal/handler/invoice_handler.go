package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-explorer-service/internal/apiclient"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/ridwanfathin/invoice-explorer-service/internal/model"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
)

// InvoiceHandler handles HTTP requests for invoice details and edit sessions
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// respondServiceError maps service and engine errors to responses. Remote
// API failures get remoteMessage.
func respondServiceError(c *gin.Context, event string, err error, remoteMessage string) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondNotFound(c, ErrSessionNotFound)
	case errors.Is(err, service.ErrInvoiceNotFound):
		respondNotFound(c, ErrFileNotFound)
	case errors.Is(err, engine.ErrUnknownField):
		respondBadRequest(c, "Unknown item field", newErrorDetail("field", err.Error()))
	case errors.Is(err, engine.ErrFieldLocked):
		respondUnprocessableEntity(c, "Field cannot be edited", newErrorDetail("field", err.Error()))
	case errors.Is(err, engine.ErrItemIndexOutOfRange):
		respondUnprocessableEntity(c, "Item does not exist", newErrorDetail("index", err.Error()))
	case errors.As(err, &apiErr):
		logError(c, event, err, map[string]interface{}{"status_code": apiErr.StatusCode})
		respondBadGateway(c, remoteMessage)
	default:
		logError(c, event, err, nil)
		respondInternalServerError(c, ErrInternalServer)
	}
}

func sessionResponse(view *service.SessionView) *model.SessionResponse {
	return model.NewSessionResponse(view.Session, view.Totals, view.HasChanges)
}

// GetInvoice handles the GET /files/:fileName endpoint
// @Summary Get invoice details
// @Description Load an invoice file with its tax mode and item totals
// @Tags invoices
// @Produce json
// @Param fileName path string true "File name"
// @Success 200 {object} model.InvoiceResponse
// @Failure 404 {object} model.ErrorResponse "File not found"
// @Failure 502 {object} model.ErrorResponse "Failed to load invoice data"
// @Router /v1/files/{fileName} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	fileName, err := getPathParam(c, "fileName")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	view, err := h.invoiceService.GetInvoice(c.Request.Context(), fileName)
	if err != nil {
		respondServiceError(c, "failed_to_load_invoice", err, ErrLoadInvoice)
		return
	}

	respondOK(c, model.NewInvoiceResponse(view.FileName, view.TaxMode, view.Invoice, view.Totals))
}

// DownloadOriginal handles the GET /files/:fileName/download endpoint
// @Summary Download the original file
// @Tags invoices
// @Produce octet-stream
// @Param fileName path string true "File name"
// @Success 200 {file} file
// @Failure 404 {object} model.ErrorResponse "File not found"
// @Failure 502 {object} model.ErrorResponse "Could not download original file"
// @Router /v1/files/{fileName}/download [get]
func (h *InvoiceHandler) DownloadOriginal(c *gin.Context) {
	fileName, err := getPathParam(c, "fileName")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	download, err := h.invoiceService.DownloadOriginal(c.Request.Context(), fileName)
	if err != nil {
		respondServiceError(c, "failed_to_download_original", err, ErrDownloadOriginal)
		return
	}

	respondAttachment(c, download.FileName, download.ContentType, download.Data)
}

// ExportCurrent handles the GET /files/:fileName/export endpoint
// @Summary Export the current content
// @Description Download the file's current content as <name>_edited_<date>.json
// @Tags invoices
// @Produce json
// @Param fileName path string true "File name"
// @Success 200 {file} file
// @Failure 404 {object} model.ErrorResponse "File not found"
// @Failure 502 {object} model.ErrorResponse "Could not export current file"
// @Router /v1/files/{fileName}/export [get]
func (h *InvoiceHandler) ExportCurrent(c *gin.Context) {
	fileName, err := getPathParam(c, "fileName")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	download, err := h.invoiceService.ExportCurrent(c.Request.Context(), fileName)
	if err != nil {
		respondServiceError(c, "failed_to_export_current", err, ErrExportCurrent)
		return
	}

	respondAttachment(c, download.FileName, download.ContentType, download.Data)
}

// ListRevisions handles the GET /files/:fileName/revisions endpoint
// @Summary List saved revisions
// @Tags invoices
// @Produce json
// @Param fileName path string true "File name"
// @Success 200 {object} model.RevisionListResponse
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/files/{fileName}/revisions [get]
func (h *InvoiceHandler) ListRevisions(c *gin.Context) {
	fileName, err := getPathParam(c, "fileName")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	revisions, err := h.invoiceService.ListRevisions(c.Request.Context(), fileName)
	if err != nil {
		respondServiceError(c, "failed_to_list_revisions", err, ErrLoadRevisions)
		return
	}

	respondOK(c, model.NewRevisionListResponse(fileName, revisions))
}

// StartEditing handles the POST /files/:fileName/sessions endpoint
// @Summary Start an edit session
// @Description Snapshot the file's tax amounts and open a working copy
// @Tags sessions
// @Produce json
// @Param fileName path string true "File name"
// @Success 201 {object} model.SessionResponse
// @Failure 404 {object} model.ErrorResponse "File not found"
// @Failure 502 {object} model.ErrorResponse "Failed to load invoice data"
// @Router /v1/files/{fileName}/sessions [post]
func (h *InvoiceHandler) StartEditing(c *gin.Context) {
	fileName, err := getPathParam(c, "fileName")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	view, err := h.invoiceService.StartEditing(c.Request.Context(), fileName)
	if err != nil {
		respondServiceError(c, "failed_to_start_editing", err, ErrLoadInvoice)
		return
	}

	respondCreated(c, sessionResponse(view))
}

// GetSession handles the GET /sessions/:sessionId endpoint
// @Summary Get an edit session
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} model.SessionResponse
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Router /v1/sessions/{sessionId} [get]
func (h *InvoiceHandler) GetSession(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	view, err := h.invoiceService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, "failed_to_get_session", err, ErrInternalServer)
		return
	}

	respondOK(c, sessionResponse(view))
}

// EditItem handles the PATCH /sessions/:sessionId/items/:index endpoint
// @Summary Edit an item field
// @Description Set PrdDesc, HsnCd, Unit, Qty, UnitPrice or Discount of one item and recalculate
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param index path int true "Item index"
// @Param edit body model.EditItemRequest true "Field edit"
// @Success 200 {object} model.SessionResponse
// @Failure 400 {object} model.ErrorResponse "Invalid input or unknown field"
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Failure 422 {object} model.ErrorResponse "Field locked or item missing"
// @Router /v1/sessions/{sessionId}/items/{index} [patch]
func (h *InvoiceHandler) EditItem(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	index, err := getPathInt(c, "index")
	if err != nil {
		respondBadRequest(c, err.Error(), newErrorDetail("index", err.Error()))
		return
	}

	var req model.EditItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	view, err := h.invoiceService.EditItemField(c.Request.Context(), sessionID, index, engine.Field(req.Field), req.Value)
	if err != nil {
		respondServiceError(c, "failed_to_edit_item", err, ErrInternalServer)
		return
	}

	respondOK(c, sessionResponse(view))
}

// AddItem handles the POST /sessions/:sessionId/items endpoint
// @Summary Add an item
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 201 {object} model.SessionResponse
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Router /v1/sessions/{sessionId}/items [post]
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	view, err := h.invoiceService.AddItem(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, "failed_to_add_item", err, ErrInternalServer)
		return
	}

	respondCreated(c, sessionResponse(view))
}

// DeleteItem handles the DELETE /sessions/:sessionId/items/:index endpoint
// @Summary Delete an item
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param index path int true "Item index"
// @Success 200 {object} model.SessionResponse
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Failure 422 {object} model.ErrorResponse "Item does not exist"
// @Router /v1/sessions/{sessionId}/items/{index} [delete]
func (h *InvoiceHandler) DeleteItem(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	index, err := getPathInt(c, "index")
	if err != nil {
		respondBadRequest(c, err.Error(), newErrorDetail("index", err.Error()))
		return
	}

	view, err := h.invoiceService.DeleteItem(c.Request.Context(), sessionID, index)
	if err != nil {
		respondServiceError(c, "failed_to_delete_item", err, ErrInternalServer)
		return
	}

	respondOK(c, sessionResponse(view))
}

// SetOtherCharges handles the PUT /sessions/:sessionId/other-charges endpoint
// @Summary Set other charges manually
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param charges body model.OtherChargesRequest true "Other charges"
// @Success 200 {object} model.SessionResponse
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Router /v1/sessions/{sessionId}/other-charges [put]
func (h *InvoiceHandler) SetOtherCharges(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.OtherChargesRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	view, err := h.invoiceService.SetOtherCharges(c.Request.Context(), sessionID, req.Value)
	if err != nil {
		respondServiceError(c, "failed_to_set_other_charges", err, ErrInternalServer)
		return
	}

	respondOK(c, sessionResponse(view))
}

// Save handles the POST /sessions/:sessionId/save endpoint
// @Summary Save an edit session
// @Description Submit the edited items and totals. Without changes nothing is sent.
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} model.SaveResponse
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Failure 502 {object} model.ErrorResponse "Save failed, session kept open"
// @Router /v1/sessions/{sessionId}/save [post]
func (h *InvoiceHandler) Save(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	outcome, err := h.invoiceService.Save(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, "failed_to_save_session", err, ErrSaveFailed)
		return
	}

	message := "Changes saved successfully"
	if outcome.Result == service.SaveResultNoChange {
		message = "No changes to save"
	}

	respondOK(c, model.SaveResponse{
		Result:     string(outcome.Result),
		Message:    message,
		Revision:   model.NewRevisionDTO(outcome.Revision),
		ArchiveKey: outcome.ArchiveKey,
	})
}

// CancelEditing handles the DELETE /sessions/:sessionId endpoint
// @Summary Cancel an edit session
// @Tags sessions
// @Param sessionId path string true "Session ID"
// @Success 204 "Session discarded"
// @Failure 404 {object} model.ErrorResponse "Edit session not found"
// @Router /v1/sessions/{sessionId} [delete]
func (h *InvoiceHandler) CancelEditing(c *gin.Context) {
	sessionID, err := getPathParam(c, "sessionId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.invoiceService.CancelEditing(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, "failed_to_cancel_editing", err, ErrInternalServer)
		return
	}

	respondNoContent(c)
}
