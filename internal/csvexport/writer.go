package csvexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"invcheck/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (13 columns).
var columns = []string{
	"sales_order_number",
	"customer_code",
	"customer_name",
	"invoice_date",
	"invoice_amount",
	"currency",
	"finance_invoice_amount",
	"finance_invoice_currency",
	"amount_difference",
	"tax_invoice_number",
	"check_status",
	"mismatch_fields",
	"source_file",
}

// Writer wraps csv.Writer for exporting reconciliation rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 13-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of reconciliation rows to CSV and writes them.
func (w *Writer) WriteRows(rows []domain.ReconciliationRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// rowToRecord converts a single reconciliation row to a 13-element slice in
// header order.
func rowToRecord(row *domain.ReconciliationRow) []string {
	return []string{
		row.SalesOrderNumber,
		row.CustomerCode,
		row.CustomerName,
		row.InvoiceDate,
		row.InvoiceAmount,
		row.Currency,
		row.FinanceInvoiceAmount,
		row.FinanceInvoiceCurrency,
		row.AmountDifference,
		row.TaxInvoiceNumber,
		string(row.CheckStatus),
		row.MismatchFields,
		row.SourceFile,
	}
}

// WriteReport writes BOM, header and rows to path. When the target is held
// open by a spreadsheet application the write fails with a permission error;
// the report then falls back to a sibling "*_v2" file so the run still
// produces output. Returns the path actually written.
func WriteReport(path string, rows []domain.ReconciliationRow) (string, error) {
	err := writeReportFile(path, rows)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, fs.ErrPermission) && !isSharingViolation(err) {
		return "", err
	}

	ext := filepath.Ext(path)
	fallback := strings.TrimSuffix(path, ext) + "_v2" + ext
	if err := writeReportFile(fallback, rows); err != nil {
		return "", err
	}
	return fallback, nil
}

func writeReportFile(path string, rows []domain.ReconciliationRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRows(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// isSharingViolation reports whether err looks like the Windows "file in use"
// condition, which os surfaces as a *PathError without fs.ErrPermission.
func isSharingViolation(err error) bool {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		return false
	}
	return strings.Contains(strings.ToLower(pathErr.Err.Error()), "used by another process")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a report name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
