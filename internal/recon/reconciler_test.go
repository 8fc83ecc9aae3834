package recon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invcheck/internal/domain"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func taxRecord() domain.InvoiceRecord {
	return domain.InvoiceRecord{
		SalesOrder:       "0012345",
		CustomerCode:     "1001",
		CustomerName:     "ACME",
		InvoiceDate:      "2025-01-15",
		DueDate:          "2025-02-14",
		Currency:         "EUR",
		TotalAmount:      dec("1000.00"),
		TaxInvoiceNumber: "FT OM.2025/12",
		SourceID:         "15.01_ACME_12345_OM.2025_12.pdf",
	}
}

func ledgerRecord() domain.InvoiceRecord {
	return domain.InvoiceRecord{
		SalesOrder:   "12345",
		CustomerCode: "001001",
		CustomerName: "Acme",
		InvoiceDate:  "2025-01-15",
		DueDate:      "2025-02-14",
		Currency:     "EUR",
		TotalAmount:  dec("1000.40"),
		SourceID:     "Finance invoice.pdf",
	}
}

func TestReconcile_WithinTolerance(t *testing.T) {
	res := Reconcile(
		[]domain.InvoiceRecord{ledgerRecord()},
		[]domain.InvoiceRecord{taxRecord()},
		Options{},
	)

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.Equal(t, domain.CheckStatusOK, row.CheckStatus)
	assert.Empty(t, row.MismatchFields)
	assert.Equal(t, "1000.00", row.InvoiceAmount)
	assert.Equal(t, "1000.40", row.FinanceInvoiceAmount)
	assert.Equal(t, "0.40", row.AmountDifference)
	assert.Equal(t, "FT OM.2025/12", row.TaxInvoiceNumber)
}

func TestReconcile_AmountBeyondTolerance(t *testing.T) {
	fin := ledgerRecord()
	fin.TotalAmount = dec("1001.00")

	res := Reconcile(
		[]domain.InvoiceRecord{fin},
		[]domain.InvoiceRecord{taxRecord()},
		Options{},
	)

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.Equal(t, domain.CheckStatusMismatch, row.CheckStatus)
	assert.Equal(t, "total_amount", row.MismatchFields)
	assert.Equal(t, "1.00", row.AmountDifference)
}

func TestReconcile_NilAmountIsMismatch(t *testing.T) {
	tests := []struct {
		name      string
		taxAmount *decimal.Decimal
		finAmount *decimal.Decimal
	}{
		{"tax nil", nil, dec("1000.00")},
		{"ledger nil", dec("1000.00"), nil},
		{"both nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := taxRecord()
			tax.TotalAmount = tt.taxAmount
			fin := ledgerRecord()
			fin.TotalAmount = tt.finAmount

			res := Reconcile([]domain.InvoiceRecord{fin}, []domain.InvoiceRecord{tax}, Options{})
			require.Len(t, res.Rows, 1)
			assert.Equal(t, domain.CheckStatusMismatch, res.Rows[0].CheckStatus)
			assert.Equal(t, "total_amount", res.Rows[0].MismatchFields)
			assert.Empty(t, res.Rows[0].AmountDifference)
		})
	}
}

func TestReconcile_NotFound(t *testing.T) {
	tax := taxRecord()
	tax.SalesOrder = "99999"

	res := Reconcile([]domain.InvoiceRecord{ledgerRecord()}, []domain.InvoiceRecord{tax}, Options{})

	require.Len(t, res.Rows, 2)
	row := res.Rows[0]
	assert.Equal(t, domain.CheckStatusNotFound, row.CheckStatus)
	assert.Empty(t, row.MismatchFields)
	assert.Empty(t, row.FinanceInvoiceAmount)
	assert.Empty(t, row.FinanceInvoiceCurrency)
	assert.Empty(t, row.AmountDifference)

	// The unclaimed ledger record surfaces as FINANCE_ONLY.
	only := res.Rows[1]
	assert.Equal(t, domain.CheckStatusFinanceOnly, only.CheckStatus)
	assert.Equal(t, "tax_invoice_missing", only.MismatchFields)
	assert.Equal(t, "12345", only.SalesOrderNumber)
	assert.Equal(t, "1000.40", only.FinanceInvoiceAmount)
	assert.Empty(t, only.InvoiceAmount)
	assert.Empty(t, only.TaxInvoiceNumber)
	assert.Empty(t, only.SourceFile)
}

func TestReconcile_CurrencyRules(t *testing.T) {
	t.Run("both_known_and_differ", func(t *testing.T) {
		tax := taxRecord()
		fin := ledgerRecord()
		fin.Currency = "USD"
		res := Reconcile([]domain.InvoiceRecord{fin}, []domain.InvoiceRecord{tax}, Options{})
		require.Len(t, res.Rows, 1)
		assert.Contains(t, res.Rows[0].MismatchFields, "currency")
	})

	t.Run("one_sided_unknown_is_not_a_mismatch", func(t *testing.T) {
		tax := taxRecord()
		fin := ledgerRecord()
		fin.Currency = ""
		res := Reconcile([]domain.InvoiceRecord{fin}, []domain.InvoiceRecord{tax}, Options{})
		require.Len(t, res.Rows, 1)
		assert.NotContains(t, res.Rows[0].MismatchFields, "currency")
	})
}

func TestReconcile_MismatchFieldOrder(t *testing.T) {
	tax := taxRecord()
	tax.CustomerName = "Globex"
	tax.InvoiceDate = "2025-01-16"
	tax.TotalAmount = nil

	res := Reconcile([]domain.InvoiceRecord{ledgerRecord()}, []domain.InvoiceRecord{tax}, Options{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "customer_name,invoice_date,total_amount", res.Rows[0].MismatchFields)
}

func TestReconcile_Partition(t *testing.T) {
	// Three tax records (one shared key, one unmatched, one keyless) against
	// three ledger records (two distinct keys, one duplicate). Output rows:
	// one per distinct tax key or keyless tax record, plus one per ledger key
	// not claimed by any tax record.
	taxA := taxRecord()
	taxB := taxRecord()
	taxB.SalesOrder = "77777"
	taxC := taxRecord()
	taxC.SalesOrder = ""

	finA := ledgerRecord()
	finDup := ledgerRecord()
	finDup.TotalAmount = dec("500.00")
	finB := ledgerRecord()
	finB.SalesOrder = "88888"

	res := Reconcile(
		[]domain.InvoiceRecord{finA, finDup, finB},
		[]domain.InvoiceRecord{taxA, taxB, taxC},
		Options{},
	)

	// 3 tax rows + 1 unclaimed ledger key (88888).
	require.Len(t, res.Rows, 4)
	assert.Equal(t, domain.CheckStatusNotFound, res.Rows[1].CheckStatus)
	assert.Equal(t, domain.CheckStatusNotFound, res.Rows[2].CheckStatus)
	assert.Equal(t, domain.CheckStatusFinanceOnly, res.Rows[3].CheckStatus)
	assert.Equal(t, "88888", res.Rows[3].SalesOrderNumber)
	assert.Equal(t, []string{"12345"}, res.DuplicateLedgerKeys)
}

func TestReconcile_DuplicatePolicy(t *testing.T) {
	first := ledgerRecord()
	second := ledgerRecord()
	second.TotalAmount = dec("2000.00")

	tax := taxRecord()
	tax.TotalAmount = dec("2000.00")

	t.Run("keep_last_default", func(t *testing.T) {
		res := Reconcile([]domain.InvoiceRecord{first, second}, []domain.InvoiceRecord{tax}, Options{})
		require.Len(t, res.Rows, 1)
		assert.Equal(t, domain.CheckStatusOK, res.Rows[0].CheckStatus)
		assert.Equal(t, "2000.00", res.Rows[0].FinanceInvoiceAmount)
	})

	t.Run("keep_first", func(t *testing.T) {
		res := Reconcile([]domain.InvoiceRecord{first, second}, []domain.InvoiceRecord{tax}, Options{Duplicates: KeepFirst})
		require.Len(t, res.Rows, 1)
		assert.Equal(t, domain.CheckStatusMismatch, res.Rows[0].CheckStatus)
		assert.Equal(t, "1000.40", res.Rows[0].FinanceInvoiceAmount)
	})
}

func TestReconcile_LeadingZeroKeysMatch(t *testing.T) {
	tax := taxRecord()
	tax.SalesOrder = "000012345"

	res := Reconcile([]domain.InvoiceRecord{ledgerRecord()}, []domain.InvoiceRecord{tax}, Options{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, domain.CheckStatusOK, res.Rows[0].CheckStatus)
}

func TestReconcile_EmptyPopulations(t *testing.T) {
	res := Reconcile(nil, nil, Options{})
	assert.Empty(t, res.Rows)

	res = Reconcile([]domain.InvoiceRecord{ledgerRecord()}, nil, Options{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, domain.CheckStatusFinanceOnly, res.Rows[0].CheckStatus)
}
