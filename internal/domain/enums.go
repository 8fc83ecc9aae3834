package domain

// CheckStatus classifies a reconciliation row.
type CheckStatus string

const (
	CheckStatusOK          CheckStatus = "OK"
	CheckStatusMismatch    CheckStatus = "MISMATCH"
	CheckStatusNotFound    CheckStatus = "NOT_FOUND"
	CheckStatusFinanceOnly CheckStatus = "FINANCE_ONLY"
)

// Mismatch field names, in the order they are evaluated and reported.
const (
	MismatchSalesOrder   = "sales_order"
	MismatchCustomerName = "customer_name"
	MismatchCustomerCode = "customer_code"
	MismatchInvoiceDate  = "invoice_date"
	MismatchDueDate      = "due_date"
	MismatchCurrency     = "currency"
	MismatchTotalAmount  = "total_amount"

	// MismatchTaxInvoiceMissing marks a FINANCE_ONLY row.
	MismatchTaxInvoiceMissing = "tax_invoice_missing"
)
