package domain

import (
	"github.com/shopspring/decimal"
)

// InvoiceRecord is one parsed invoice, from either the finance ledger or a
// tax invoice document. Every field is independently optional: extraction
// failures degrade a field to its empty/nil sentinel, never to an error.
// Records are immutable once produced by an extractor.
type InvoiceRecord struct {
	SalesOrder   string
	CustomerCode string
	CustomerName string
	InvoiceDate  string // ISO YYYY-MM-DD or empty
	DueDate      string // ISO YYYY-MM-DD or empty
	Currency     string // 3-letter code or empty

	// TotalAmount is the authoritative invoice total. On the ledger side it
	// is reconstructed as TotalDue + Prepayment; nil means unknown.
	TotalAmount *decimal.Decimal

	// Ledger-side only.
	TotalDue   *decimal.Decimal
	Prepayment *decimal.Decimal

	// Tax-side only.
	TaxInvoiceNumber string

	SourceID string
}

// ReconciliationRow is one output row of a cross-check run. Amounts are
// pre-formatted as fixed 2-decimal text, empty when unknown.
type ReconciliationRow struct {
	SalesOrderNumber       string      `json:"sales_order_number"`
	CustomerCode           string      `json:"customer_code"`
	CustomerName           string      `json:"customer_name"`
	InvoiceDate            string      `json:"invoice_date"`
	InvoiceAmount          string      `json:"invoice_amount"`
	Currency               string      `json:"currency"`
	FinanceInvoiceAmount   string      `json:"finance_invoice_amount"`
	FinanceInvoiceCurrency string      `json:"finance_invoice_currency"`
	AmountDifference       string      `json:"amount_difference"`
	TaxInvoiceNumber       string      `json:"tax_invoice_number"`
	CheckStatus            CheckStatus `json:"check_status"`
	MismatchFields         string      `json:"mismatch_fields"`
	SourceFile             string      `json:"source_file"`
}
