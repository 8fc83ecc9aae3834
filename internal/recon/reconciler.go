// Package recon pairs tax invoice records against the finance ledger by
// normalized sales-order key and classifies every record on both sides
// exactly once.
package recon

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"invcheck/internal/domain"
	"invcheck/internal/normalize"
)

// amountTolerance is the maximum absolute difference between the ledger and
// tax totals that still counts as equal.
var amountTolerance = decimal.RequireFromString("0.5")

// DuplicatePolicy names how a ledger key that maps to more than one record
// is resolved while building the index.
type DuplicatePolicy string

const (
	// KeepLast lets a later ledger record overwrite an earlier one. This
	// replicates the accounting export, which repeats a sales order when an
	// invoice is re-issued and the last page is the current one.
	KeepLast DuplicatePolicy = "keep_last"

	// KeepFirst keeps the earliest ledger record for a key.
	KeepFirst DuplicatePolicy = "keep_first"
)

// Options controls reconciliation behavior.
type Options struct {
	Duplicates DuplicatePolicy
}

// Result is the outcome of a reconciliation run. Rows partition the union of
// both populations: paired and NOT_FOUND rows in tax input order, then
// FINANCE_ONLY rows in ledger first-occurrence order.
type Result struct {
	Rows []domain.ReconciliationRow

	// DuplicateLedgerKeys lists keys that appeared on more than one ledger
	// page, in occurrence order. A data anomaly worth surfacing, not an error.
	DuplicateLedgerKeys []string
}

// Reconcile cross-checks tax records against ledger records.
func Reconcile(ledger, tax []domain.InvoiceRecord, opts Options) *Result {
	if opts.Duplicates == "" {
		opts.Duplicates = KeepLast
	}

	idx := buildIndex(ledger, opts.Duplicates)
	if len(idx.dupes) > 0 {
		log.Printf("recon.Reconcile: %d duplicate ledger key(s) resolved by %s: %s",
			len(idx.dupes), opts.Duplicates, strings.Join(idx.dupes, ", "))
	}

	rows := make([]domain.ReconciliationRow, 0, len(tax)+len(idx.keys))
	seen := make(map[string]bool, len(tax))

	for i := range tax {
		t := &tax[i]
		fin := idx.byKey[normalize.OrderKey(t.SalesOrder)]

		status := domain.CheckStatusNotFound
		mismatches := ""
		if fin != nil {
			ms := compareRecords(t, fin)
			if len(ms) == 0 {
				status = domain.CheckStatusOK
			} else {
				status = domain.CheckStatusMismatch
				mismatches = strings.Join(ms, ",")
			}
			seen[normalize.OrderKey(t.SalesOrder)] = true
		}

		var finAmount *decimal.Decimal
		finCurrency := ""
		if fin != nil {
			finAmount = fin.TotalAmount
			finCurrency = fin.Currency
		}
		var diff *decimal.Decimal
		if finAmount != nil && t.TotalAmount != nil {
			d := finAmount.Sub(*t.TotalAmount)
			diff = &d
		}

		rows = append(rows, domain.ReconciliationRow{
			SalesOrderNumber:       t.SalesOrder,
			CustomerCode:           t.CustomerCode,
			CustomerName:           t.CustomerName,
			InvoiceDate:            t.InvoiceDate,
			InvoiceAmount:          normalize.FormatAmount(t.TotalAmount),
			Currency:               t.Currency,
			FinanceInvoiceAmount:   normalize.FormatAmount(finAmount),
			FinanceInvoiceCurrency: finCurrency,
			AmountDifference:       normalize.FormatAmount(diff),
			TaxInvoiceNumber:       t.TaxInvoiceNumber,
			CheckStatus:            status,
			MismatchFields:         mismatches,
			SourceFile:             t.SourceID,
		})
	}

	// Every ledger key no tax record claimed becomes a FINANCE_ONLY row.
	for _, key := range idx.keys {
		if seen[key] {
			continue
		}
		fin := idx.byKey[key]
		rows = append(rows, domain.ReconciliationRow{
			SalesOrderNumber:       fin.SalesOrder,
			CustomerCode:           fin.CustomerCode,
			CustomerName:           fin.CustomerName,
			InvoiceDate:            fin.InvoiceDate,
			FinanceInvoiceAmount:   normalize.FormatAmount(fin.TotalAmount),
			FinanceInvoiceCurrency: fin.Currency,
			CheckStatus:            domain.CheckStatusFinanceOnly,
			MismatchFields:         domain.MismatchTaxInvoiceMissing,
		})
	}

	return &Result{Rows: rows, DuplicateLedgerKeys: idx.dupes}
}

// ledgerIndex maps normalized sales-order keys to ledger records, preserving
// first-occurrence key order for FINANCE_ONLY output.
type ledgerIndex struct {
	byKey map[string]*domain.InvoiceRecord
	keys  []string
	dupes []string
}

func buildIndex(records []domain.InvoiceRecord, policy DuplicatePolicy) *ledgerIndex {
	idx := &ledgerIndex{byKey: make(map[string]*domain.InvoiceRecord, len(records))}
	for i := range records {
		rec := &records[i]
		key := normalize.OrderKey(rec.SalesOrder)
		if key == "" {
			continue
		}
		if _, ok := idx.byKey[key]; ok {
			idx.dupes = append(idx.dupes, key)
			if policy == KeepLast {
				idx.byKey[key] = rec
			}
			continue
		}
		idx.byKey[key] = rec
		idx.keys = append(idx.keys, key)
	}
	return idx
}

// compareRecords runs the field-by-field comparison and returns the names of
// failing fields in evaluation order. A sentinel on either side is never
// treated as equal: missing data degrades to a mismatch, not a pass. Currency
// is the exception, where a one-sided or two-sided unknown is not a mismatch.
func compareRecords(tax, fin *domain.InvoiceRecord) []string {
	var mismatches []string

	if normalize.OrderKey(tax.SalesOrder) != normalize.OrderKey(fin.SalesOrder) {
		mismatches = append(mismatches, domain.MismatchSalesOrder)
	}
	if normalize.NameKey(tax.CustomerName) != normalize.NameKey(fin.CustomerName) {
		mismatches = append(mismatches, domain.MismatchCustomerName)
	}
	if normalize.OrderKey(tax.CustomerCode) != normalize.OrderKey(fin.CustomerCode) {
		mismatches = append(mismatches, domain.MismatchCustomerCode)
	}
	if normalize.ParseDateAny(tax.InvoiceDate) != normalize.ParseDateAny(fin.InvoiceDate) {
		mismatches = append(mismatches, domain.MismatchInvoiceDate)
	}
	if normalize.ParseDateAny(tax.DueDate) != normalize.ParseDateAny(fin.DueDate) {
		mismatches = append(mismatches, domain.MismatchDueDate)
	}
	if tax.Currency != "" && fin.Currency != "" && tax.Currency != fin.Currency {
		mismatches = append(mismatches, domain.MismatchCurrency)
	}

	switch {
	case tax.TotalAmount == nil || fin.TotalAmount == nil:
		mismatches = append(mismatches, domain.MismatchTotalAmount)
	case fin.TotalAmount.Sub(*tax.TotalAmount).Abs().GreaterThan(amountTolerance):
		mismatches = append(mismatches, domain.MismatchTotalAmount)
	}

	return mismatches
}
