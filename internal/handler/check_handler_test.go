package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invcheck/internal/handler"
	"invcheck/internal/router"
	"invcheck/internal/service"
)

const ledgerPageFixture = `InvoiceDate: 15.01.2025
PaymentDueDate: 14.02.2025
SalesOrder: 12345
Account#: 1001
BillTo:
Acme Corp Acme Corp
TotalDue: 1,000.00 EUR`

const taxDocFixture = `Fatura FT OM.2025/12
Order/Quote
OM.2025 1001 J. Silva Net-30 12345 EUR
Date Due Date
2025-01-15 2025-02-14
Total (EUR) 1.000,00`

// nameExtractor serves canned pages keyed by base filename, since uploads
// land in a request-scoped temp dir.
type nameExtractor struct {
	pages map[string][]string
}

func (n *nameExtractor) ExtractPages(_ context.Context, path string) ([]string, error) {
	return n.pages[filepath.Base(path)], nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewCheckService(&nameExtractor{pages: map[string][]string{
		"Finance invoice.pdf":                  {ledgerPageFixture},
		"15.01_Acme_Corp_12345_OM.2025_12.pdf": {taxDocFixture},
	}}, "")
	return router.Setup(handler.NewCheckHandler(svc, 50), handler.NewHealthHandler())
}

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCheck_JSON(t *testing.T) {
	r := newTestRouter()
	body, contentType := multipartBody(t, "Finance invoice.pdf", "15.01_Acme_Corp_12345_OM.2025_12.pdf")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Rows []struct {
				SalesOrderNumber string `json:"sales_order_number"`
				CheckStatus      string `json:"check_status"`
			} `json:"rows"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Rows, 1)
	assert.Equal(t, "12345", resp.Data.Rows[0].SalesOrderNumber)
	assert.Equal(t, "OK", resp.Data.Rows[0].CheckStatus)
}

func TestCheck_CSVDownload(t *testing.T) {
	r := newTestRouter()
	body, contentType := multipartBody(t, "Finance invoice.pdf", "15.01_Acme_Corp_12345_OM.2025_12.pdf")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check?format=csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, rec.Body.String(), "sales_order_number")
}

func TestCheck_MissingLedger(t *testing.T) {
	r := newTestRouter()
	body, contentType := multipartBody(t, "15.01_Acme_Corp_12345_OM.2025_12.pdf")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "LEDGER_MISSING")
}

func TestCheck_RejectsNonPDF(t *testing.T) {
	r := newTestRouter()
	body, contentType := multipartBody(t, "Finance invoice.pdf", "notes.txt")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestCheck_NoFiles(t *testing.T) {
	r := newTestRouter()
	body, contentType := multipartBody(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/check", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_FILES")
}

func TestHealthz(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
