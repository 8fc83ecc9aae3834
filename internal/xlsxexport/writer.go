// Package xlsxexport writes the reconciliation report as an Excel workbook
// for reviewers who annotate results in a spreadsheet.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invcheck/internal/domain"
)

const sheetName = "Check Results"

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

// WriteReport writes rows as an XLSX workbook to path.
func WriteReport(path string, rows []domain.ReconciliationRow) error {
	f, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Write streams the workbook to w, for HTTP download responses.
func Write(w io.Writer, rows []domain.ReconciliationRow) error {
	f, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

func buildWorkbook(rows []domain.ReconciliationRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := rowValues(&rows[i])
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

func rowValues(row *domain.ReconciliationRow) []interface{} {
	return []interface{}{
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
