package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"invcheck/internal/csvexport"
	"invcheck/internal/domain"
	"invcheck/internal/recon"
	"invcheck/internal/service"
	"invcheck/internal/xlsxexport"
)

// CheckHandler handles reconciliation requests over HTTP.
type CheckHandler struct {
	svc         *service.CheckService
	maxUploadMB int64
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(svc *service.CheckService, maxUploadMB int64) *CheckHandler {
	return &CheckHandler{svc: svc, maxUploadMB: maxUploadMB}
}

// Check handles POST /api/v1/check.
//
// The request is a multipart form whose "files" field carries the finance
// ledger PDF plus the tax invoice PDFs. The ?format query selects the
// response body: json (default), csv, or xlsx.
func (h *CheckHandler) Check(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadMB<<20)

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_UPLOAD", "could not parse multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "no files uploaded")
		return
	}

	dir, err := os.MkdirTemp("", "invcheck-*")
	if err != nil {
		HandleError(c, err)
		return
	}
	defer os.RemoveAll(dir)

	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			HandleError(c, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, name))
			return
		}
		if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
			HandleError(c, err)
			return
		}
	}

	opts := recon.Options{Duplicates: recon.DuplicatePolicy(c.Query("duplicates"))}
	res, err := h.svc.RunDir(c.Request.Context(), dir, opts)
	if err != nil {
		HandleError(c, err)
		return
	}

	switch c.Query("format") {
	case "csv":
		h.respondCSV(c, res)
	case "xlsx":
		h.respondXLSX(c, res)
	default:
		RespondOK(c, gin.H{
			"rows":                  res.Rows,
			"duplicate_ledger_keys": res.DuplicateLedgerKeys,
		})
	}
}

func (h *CheckHandler) respondCSV(c *gin.Context, res *recon.Result) {
	filename := csvexport.BuildFilename("check_results")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRows(res.Rows); err != nil {
		return
	}
	w.Flush()
}

func (h *CheckHandler) respondXLSX(c *gin.Context, res *recon.Result) {
	filename := strings.TrimSuffix(csvexport.BuildFilename("check_results"), ".csv") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := xlsxexport.Write(c.Writer, res.Rows); err != nil {
		_ = c.Error(err)
	}
}
