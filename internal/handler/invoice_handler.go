package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billforge/internal/service"
)

// InvoiceHandler handles invoice editing and export endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	exportService  service.ExportService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, exportService service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, exportService: exportService}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Create a new invoice seeded with one default line item
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.CreateInvoiceInput true "Invoice details"
// @Success 201 {object} APIResponse{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} APIResponse "Invalid request"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} APIResponse{data=[]domain.Invoice} "Invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.invoiceService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list.Invoices, PagMeta{
		Total:  list.Total,
		Offset: list.Offset,
		Limit:  list.Limit,
	})
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Update invoice header and context
// @Description Partially update the invoice header, parties, or tax context
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.UpdateInvoiceInput true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Updated invoice"
// @Failure 400 {object} APIResponse "Invalid customer type or item kind"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Tags invoices
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse "Invoice deleted"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// AddLine handles POST /api/v1/invoices/:id/items
// @Summary Add a line item
// @Description Append a line item; omitted rates default from the HSN/SAC code or the configured rate
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.LineItemInput true "Line item details"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice with the new line"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/items [post]
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input service.LineItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.AddLine(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// UpdateLine handles PUT /api/v1/invoices/:id/items/:itemID
// @Summary Update a line item
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param itemID path string true "Line item ID (UUID)"
// @Param request body service.LineItemInput true "Line item details"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice with the updated line"
// @Failure 404 {object} APIResponse "Invoice or line item not found"
// @Security BearerAuth
// @Router /invoices/{id}/items/{itemID} [put]
func (h *InvoiceHandler) UpdateLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		return
	}

	var input service.LineItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.UpdateLine(c.Request.Context(), id, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// RemoveLine handles DELETE /api/v1/invoices/:id/items/:itemID
// @Summary Remove a line item
// @Description Remove a line item; removing the last remaining line leaves the invoice unchanged
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param itemID path string true "Line item ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice after removal"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/items/{itemID} [delete]
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		return
	}

	inv, err := h.invoiceService.RemoveLine(c.Request.Context(), id, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Snapshot handles GET /api/v1/invoices/:id/snapshot
// @Summary Get the fully resolved invoice snapshot
// @Description All totals, the amount in words, and presentation flags resolved at read time
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.InvoiceSnapshot} "Snapshot"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/snapshot [get]
func (h *InvoiceHandler) Snapshot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	snap, err := h.invoiceService.Snapshot(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, snap)
}

// ExportCSV handles GET /api/v1/invoices/:id/export/csv
// @Summary Download the invoice as CSV
// @Tags exports
// @Produce text/csv
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/export/csv [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	export, err := h.exportService.ExportCSV(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// ExportXLSX handles GET /api/v1/invoices/:id/export/xlsx
// @Summary Download the invoice as an Excel workbook
// @Tags exports
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {file} file "XLSX file"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/export/xlsx [get]
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	export, err := h.exportService.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// Upload handles POST /api/v1/invoices/:id/export/upload
// @Summary Upload the invoice export to object storage
// @Description Renders the workbook, uploads it, and returns a presigned download URL
// @Tags exports
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=service.UploadResult} "Upload result"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /invoices/{id}/export/upload [post]
func (h *InvoiceHandler) Upload(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.exportService.UploadSnapshot(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Send handles POST /api/v1/invoices/:id/send
// @Summary Email the invoice to the billing party
// @Tags exports
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse "Invoice sent"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.exportService.SendInvoice(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"sent": true})
}

// SuggestRates handles GET /api/v1/rates/:code
// @Summary Look up GST rates for an HSN/SAC code
// @Description Returns rate suggestions for the classification code; the editor never enforces them
// @Tags rates
// @Produce json
// @Param code path string true "HSN or SAC code"
// @Success 200 {object} APIResponse{data=[]port.HSNEntry} "Matching rates"
// @Failure 404 {object} APIResponse "No rate found"
// @Security BearerAuth
// @Router /rates/{code} [get]
func (h *InvoiceHandler) SuggestRates(c *gin.Context) {
	code := c.Param("code")

	entries, err := h.invoiceService.SuggestRates(c.Request.Context(), code)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}
