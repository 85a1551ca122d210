package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billforge/internal/domain"
	"billforge/internal/handler"
	"billforge/internal/service"
	"billforge/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-001",
		Items: []domain.LineItem{
			domain.NewDefaultLineItem(domain.InvoiceContext{}, 18),
		},
	}
}

func TestInvoiceHandler_Create(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc, new(mocks.MockExportService))

	inv := sampleInvoice()
	invoiceSvc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(inv, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/invoices", map[string]string{
		"invoice_number": "INV-001",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	invoiceSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MissingNumber(t *testing.T) {
	h := handler.NewInvoiceHandler(new(mocks.MockInvoiceService), new(mocks.MockExportService))

	c, w := newTestContext(t, http.MethodPost, "/api/v1/invoices", map[string]string{})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc, new(mocks.MockExportService))

	id := uuid.New()
	invoiceSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/invoices/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVOICE_NOT_FOUND", resp.Error.Code)
}

func TestInvoiceHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewInvoiceHandler(new(mocks.MockInvoiceService), new(mocks.MockExportService))

	c, w := newTestContext(t, http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_Update_InvalidCustomerType(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc, new(mocks.MockExportService))

	id := uuid.New()
	invoiceSvc.On("Update", mock.Anything, id, mock.AnythingOfType("service.UpdateInvoiceInput")).
		Return(nil, domain.ErrInvalidCustomerType)

	c, w := newTestContext(t, http.MethodPut, "/api/v1/invoices/"+id.String(), map[string]interface{}{
		"context": map[string]string{"customer_type": "wholesale"},
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CUSTOMER_TYPE", resp.Error.Code)
}

func TestInvoiceHandler_RemoveLine(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc, new(mocks.MockExportService))

	inv := sampleInvoice()
	itemID := inv.Items[0].ID
	invoiceSvc.On("RemoveLine", mock.Anything, inv.ID, itemID).Return(inv, nil)

	c, w := newTestContext(t, http.MethodDelete,
		"/api/v1/invoices/"+inv.ID.String()+"/items/"+itemID.String(), nil)
	c.Params = gin.Params{
		{Key: "id", Value: inv.ID.String()},
		{Key: "itemID", Value: itemID.String()},
	}

	h.RemoveLine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	invoiceSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Snapshot(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc, new(mocks.MockExportService))

	id := uuid.New()
	snap := &domain.InvoiceSnapshot{
		InvoiceNumber: "INV-001",
		GrandTotal:    1180,
		AmountInWords: "One Thousand One Hundred and Eighty Rupees Only",
	}
	invoiceSvc.On("Snapshot", mock.Anything, id).Return(snap, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/invoices/"+id.String()+"/snapshot", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Snapshot(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "One Thousand One Hundred and Eighty Rupees Only")
}

func TestInvoiceHandler_ExportCSV_SetsDisposition(t *testing.T) {
	exportSvc := new(mocks.MockExportService)
	h := handler.NewInvoiceHandler(new(mocks.MockInvoiceService), exportSvc)

	id := uuid.New()
	exportSvc.On("ExportCSV", mock.Anything, id).Return(&service.Export{
		Filename:    "INV-001_2026-08-31.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Invoice Number\n"),
	}, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/invoices/"+id.String()+"/export/csv", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "INV-001_2026-08-31.csv")
}

func TestInvoiceHandler_SuggestRates(t *testing.T) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc, new(mocks.MockExportService))

	invoiceSvc.On("SuggestRates", mock.Anything, "8471").Return(nil, domain.ErrRateNotFound)

	c, w := newTestContext(t, http.MethodGet, "/api/v1/rates/8471", nil)
	c.Params = gin.Params{{Key: "code", Value: "8471"}}

	h.SuggestRates(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
