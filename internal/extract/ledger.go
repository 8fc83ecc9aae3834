package extract

import (
	"regexp"
	"strings"

	"invcheck/internal/domain"
	"invcheck/internal/normalize"
)

// Ledger page patterns. Labels are matched case-insensitively and with
// optional internal spacing because different text extraction backends
// either keep or collapse the space inside "Invoice Date:".
var (
	ledgerQualifier    = regexp.MustCompile(`(?i)Invoice\s*Date`)
	ledgerInvoiceDate  = regexp.MustCompile(`(?i:Invoice\s*Date):\s*(\d{2}\.\d{2}\.\d{4})`)
	ledgerDueDate      = regexp.MustCompile(`(?i:Payment\s*Due\s*Date):\s*(\d{2}\.\d{2}\.\d{4})`)
	ledgerSalesOrder   = regexp.MustCompile(`(?i:Sales\s*Order):\s*(\d+)`)
	ledgerCustomerCode = regexp.MustCompile(`(?i:Account)#:\s*(\d+)`)
	ledgerBillTo       = regexp.MustCompile(`(?i)Bill\s*To:`)
	ledgerTotalDueCur  = regexp.MustCompile(`(?i:Total\s*Due):\s*([€$])?\s*([0-9,]+\.[0-9]{2})\s*(USD|EUR)`)
	ledgerTotalDue     = regexp.MustCompile(`(?i:Total\s*Due):\s*([€$])?\s*([0-9,]+\.[0-9]{2})`)
	ledgerPrepayment   = regexp.MustCompile(`(?i:Prepayment):\s*([€$])?\s*([0-9,]+\.[0-9]{2})`)
)

// ParseLedgerPage parses one page of the finance ledger document. Pages
// without an invoice-date label (cover pages, summaries) return nil. Every
// field is extracted best-effort; a missing field stays at its sentinel.
func ParseLedgerPage(text string) *domain.InvoiceRecord {
	if !ledgerQualifier.MatchString(text) {
		return nil
	}

	rec := &domain.InvoiceRecord{
		InvoiceDate:  normalize.ParseDateAny(group1(ledgerInvoiceDate, text)),
		DueDate:      normalize.ParseDateAny(group1(ledgerDueDate, text)),
		SalesOrder:   group1(ledgerSalesOrder, text),
		CustomerCode: group1(ledgerCustomerCode, text),
		CustomerName: billToName(text),
	}

	if m := ledgerTotalDueCur.FindStringSubmatch(text); m != nil {
		rec.TotalDue = normalize.ParseMoney(m[2])
		rec.Currency = m[3]
	} else if m := ledgerTotalDue.FindStringSubmatch(text); m != nil {
		rec.TotalDue = normalize.ParseMoney(m[2])
		rec.Currency = glyphCurrency(m[1])
	}
	if m := ledgerPrepayment.FindStringSubmatch(text); m != nil {
		rec.Prepayment = normalize.ParseMoney(m[2])
	}

	// The layout lists a prepayment-adjusted due amount, so the true
	// invoice total is total due plus any prepayment offset.
	if rec.TotalDue != nil {
		total := *rec.TotalDue
		if rec.Prepayment != nil {
			total = total.Add(*rec.Prepayment)
		}
		rec.TotalAmount = &total
	}

	return rec
}

// billToName reads the line after the "Bill To:" label. The layout renders
// the name twice on that line ("Acme Corp Acme Corp"); equal halves collapse
// to the first half, differing halves fall back to the first token.
func billToName(text string) string {
	lines := splitLines(text, false)
	nameLine, ok := lineAfter(lines, ledgerBillTo.MatchString)
	if !ok || nameLine == "" {
		return ""
	}
	words := strings.Fields(nameLine)
	if len(words) < 2 {
		return nameLine
	}
	mid := len(words) / 2
	first := strings.Join(words[:mid], " ")
	second := strings.Join(words[mid:], " ")
	if first == second {
		return first
	}
	return words[0]
}

func glyphCurrency(glyph string) string {
	switch glyph {
	case "€":
		return "EUR"
	case "$":
		return "USD"
	}
	return ""
}

func group1(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
