package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-explorer-service/internal/apiclient"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
	"github.com/ridwanfathin/invoice-explorer-service/internal/handler"
	"github.com/ridwanfathin/invoice-explorer-service/internal/model"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupInvoiceRouter(invoiceService service.InvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewInvoiceHandler(invoiceService)
	r := gin.New()
	v1 := r.Group("/v1")
	v1.GET("/files/:fileName", h.GetInvoice)
	v1.GET("/files/:fileName/download", h.DownloadOriginal)
	v1.GET("/files/:fileName/export", h.ExportCurrent)
	v1.GET("/files/:fileName/revisions", h.ListRevisions)
	v1.POST("/files/:fileName/sessions", h.StartEditing)
	v1.GET("/sessions/:sessionId", h.GetSession)
	v1.DELETE("/sessions/:sessionId", h.CancelEditing)
	v1.POST("/sessions/:sessionId/items", h.AddItem)
	v1.PATCH("/sessions/:sessionId/items/:index", h.EditItem)
	v1.DELETE("/sessions/:sessionId/items/:index", h.DeleteItem)
	v1.PUT("/sessions/:sessionId/other-charges", h.SetOtherCharges)
	v1.POST("/sessions/:sessionId/save", h.Save)
	return r
}

func testSessionView(t *testing.T) *service.SessionView {
	t.Helper()
	doc := &domain.Document{Data: []domain.Invoice{{
		SellerDtls: &domain.PartyDetails{Stcd: "29"},
		BuyerDtls:  &domain.PartyDetails{Stcd: "29"},
		ItemList: []domain.LineItem{
			{SlNo: "1", PrdDesc: "Rice", Qty: 10, UnitPrice: 100, AssAmt: 1000, TotAmt: 1000, CgstAmt: 25, SgstAmt: 25, TotItemVal: 1050},
		},
		ValDtls: &domain.ValueDetails{AssVal: 1000, CgstVal: 25, SgstVal: 25, TotInvVal: 1050},
	}}}
	session, err := engine.StartSession("sess-1", "a.json", doc)
	require.NoError(t, err)
	return &service.SessionView{Session: session, Totals: engine.SumItems(session.Invoice().ItemList)}
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = &bytes.Buffer{}
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestInvoiceHandler_GetInvoice(t *testing.T) {
	svc := new(MockInvoiceService)
	inv := &domain.Invoice{DocDtls: &domain.DocumentDetails{No: "INV-1"}}
	svc.On("GetInvoice", mock.Anything, "march invoice.json").Return(&service.InvoiceView{
		FileName: "march invoice.json",
		TaxMode:  domain.TaxModeIntraState,
		Invoice:  inv,
		Totals:   engine.ItemTotals{ItemValue: 1050},
	}, nil)

	router := setupInvoiceRouter(svc)
	w := doRequest(router, http.MethodGet, "/v1/files/march%20invoice.json", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.TaxModeIntraState, resp.TaxMode)
	assert.Equal(t, []string{"CGST", "SGST"}, resp.TaxColumns)
	assert.Equal(t, "INV-1", resp.Invoice.DocDtls.No)
	assert.Equal(t, 1050.0, resp.Totals.ItemValue)
}

func TestInvoiceHandler_GetInvoice_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        &service.ServiceError{Op: "get_invoice", Err: fmt.Errorf("%w: a.json", service.ErrInvoiceNotFound)},
			wantStatus: http.StatusNotFound,
			wantMsg:    "File not found",
		},
		{
			name:       "remote failure",
			err:        &service.ServiceError{Op: "get_invoice", Err: &apiclient.APIError{Op: "get_document", StatusCode: 500}},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Failed to load invoice data",
		},
		{
			name:       "unexpected failure",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockInvoiceService)
			svc.On("GetInvoice", mock.Anything, "a.json").Return(nil, tt.err)

			w := doRequest(setupInvoiceRouter(svc), http.MethodGet, "/v1/files/a.json", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestInvoiceHandler_DownloadOriginal(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("DownloadOriginal", mock.Anything, "a.json").Return(&service.FileDownload{
		FileName:    "a.json",
		ContentType: "application/json",
		Data:        []byte(`{"data":[]}`),
	}, nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodGet, "/v1/files/a.json/download", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename=a.json`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, `{"data":[]}`, w.Body.String())
}

func TestInvoiceHandler_DownloadOriginal_Failure(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("DownloadOriginal", mock.Anything, "a.json").
		Return(nil, &service.ServiceError{Op: "download_original", Err: &apiclient.APIError{Op: "download_file"}})

	w := doRequest(setupInvoiceRouter(svc), http.MethodGet, "/v1/files/a.json/download", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Could not download original file", resp.Message)
}

func TestInvoiceHandler_ExportCurrent(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("ExportCurrent", mock.Anything, "a.json").Return(&service.FileDownload{
		FileName:    "a_edited_2024-04-01.json",
		ContentType: "application/json",
		Data:        []byte("{}"),
	}, nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodGet, "/v1/files/a.json/export", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "a_edited_2024-04-01.json")
}

func TestInvoiceHandler_ListRevisions(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("ListRevisions", mock.Anything, "a.json").Return([]domain.Revision{{ID: "r1", NewTotal: 10}}, nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodGet, "/v1/files/a.json/revisions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.RevisionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a.json", resp.FileName)
	require.Len(t, resp.Revisions, 1)
	assert.Equal(t, "r1", resp.Revisions[0].ID)
}

func TestInvoiceHandler_StartEditing(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("StartEditing", mock.Anything, "a.json").Return(testSessionView(t), nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodPost, "/v1/files/a.json/sessions", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, domain.TaxModeIntraState, resp.TaxMode)
	assert.False(t, resp.HasChanges)
}

func TestInvoiceHandler_EditItem(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("EditItemField", mock.Anything, "sess-1", 0, engine.FieldQuantity, "4").Return(testSessionView(t), nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodPatch, "/v1/sessions/sess-1/items/0",
		model.EditItemRequest{Field: "Qty", Value: "4"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_EditItem_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       interface{}
		err        error
		wantStatus int
	}{
		{
			name:       "bad index",
			path:       "/v1/sessions/sess-1/items/x",
			body:       model.EditItemRequest{Field: "Qty", Value: "1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing field",
			path:       "/v1/sessions/sess-1/items/0",
			body:       map[string]string{"value": "1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "locked field",
			path:       "/v1/sessions/sess-1/items/0",
			body:       model.EditItemRequest{Field: "GstRt", Value: "12"},
			err:        fmt.Errorf("%w: GstRt", engine.ErrFieldLocked),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown field",
			path:       "/v1/sessions/sess-1/items/0",
			body:       model.EditItemRequest{Field: "Colour", Value: "red"},
			err:        fmt.Errorf("%w: Colour", engine.ErrUnknownField),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "item out of range",
			path:       "/v1/sessions/sess-1/items/7",
			body:       model.EditItemRequest{Field: "Qty", Value: "1"},
			err:        fmt.Errorf("%w: 7", engine.ErrItemIndexOutOfRange),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "expired session",
			path:       "/v1/sessions/sess-1/items/0",
			body:       model.EditItemRequest{Field: "Qty", Value: "1"},
			err:        &service.ServiceError{Op: "edit_item_field", Err: service.ErrSessionNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockInvoiceService)
			if tt.err != nil {
				svc.On("EditItemField", mock.Anything, "sess-1", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := doRequest(setupInvoiceRouter(svc), http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestInvoiceHandler_AddAndDeleteItem(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("AddItem", mock.Anything, "sess-1").Return(testSessionView(t), nil)
	svc.On("DeleteItem", mock.Anything, "sess-1", 2).Return(testSessionView(t), nil)
	router := setupInvoiceRouter(svc)

	w := doRequest(router, http.MethodPost, "/v1/sessions/sess-1/items", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodDelete, "/v1/sessions/sess-1/items/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_SetOtherCharges(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("SetOtherCharges", mock.Anything, "sess-1", "55.555").Return(testSessionView(t), nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodPut, "/v1/sessions/sess-1/other-charges",
		model.OtherChargesRequest{Value: "55.555"})

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_Save(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("Save", mock.Anything, "changed").Return(&service.SaveOutcome{
		Result:   service.SaveResultSuccess,
		Revision: &domain.Revision{ID: "r1", NewTotal: 99},
	}, nil)
	svc.On("Save", mock.Anything, "same").Return(&service.SaveOutcome{Result: service.SaveResultNoChange}, nil)
	router := setupInvoiceRouter(svc)

	w := doRequest(router, http.MethodPost, "/v1/sessions/changed/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Result)
	require.NotNil(t, resp.Revision)
	assert.Equal(t, "r1", resp.Revision.ID)

	w = doRequest(router, http.MethodPost, "/v1/sessions/same/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = model.SaveResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "nochange", resp.Result)
	assert.Equal(t, "No changes to save", resp.Message)
	assert.Nil(t, resp.Revision)
}

func TestInvoiceHandler_Save_Failure(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("Save", mock.Anything, "sess-1").
		Return(nil, &service.ServiceError{Op: "save", Err: &apiclient.APIError{Op: "update_items", StatusCode: 500}})

	w := doRequest(setupInvoiceRouter(svc), http.MethodPost, "/v1/sessions/sess-1/save", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to save changes. Please try again.", resp.Message)
}

func TestInvoiceHandler_CancelEditing(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("CancelEditing", mock.Anything, "sess-1").Return(nil)
	svc.On("CancelEditing", mock.Anything, "gone").Return(&service.ServiceError{Op: "cancel_editing", Err: service.ErrSessionNotFound})
	router := setupInvoiceRouter(svc)

	w := doRequest(router, http.MethodDelete, "/v1/sessions/sess-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, "/v1/sessions/gone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceHandler_GetSession(t *testing.T) {
	svc := new(MockInvoiceService)
	svc.On("GetSession", mock.Anything, "sess-1").Return(testSessionView(t), nil)

	w := doRequest(setupInvoiceRouter(svc), http.MethodGet, "/v1/sessions/sess-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a.json", resp.FileName)
	assert.Equal(t, 1050.0, resp.Invoice.ValDtls.TotInvVal)
}
