package extract

import (
	"regexp"
	"strings"

	"invcheck/internal/domain"
	"invcheck/internal/normalize"
)

// Tax invoice patterns. The document is bilingual; the date header appears
// in either language variant.
var (
	taxNumber     = regexp.MustCompile(`Fatura\s+(FT\s+[A-Z]+\.\d{4}/\d+)`)
	taxOrderQuote = regexp.MustCompile(`Order\s*/\s*Quote`)
	taxOrderTail  = regexp.MustCompile(`(\d{5,})\s+(USD|EUR)$`)
	taxISODate    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	taxTotal      = regexp.MustCompile(`Total\s*\(\s*(USD|EUR)\s*\)\s*([0-9.,]+)`)
)

// ParseTaxInvoice parses a whole tax invoice document (all pages joined).
// The customer name comes from the filename, not the body: the renamer has
// already stamped it there, and the body renders names inconsistently.
func ParseTaxInvoice(text, filename string) domain.InvoiceRecord {
	rec := domain.InvoiceRecord{
		SourceID:     filename,
		CustomerName: normalize.NameFromFilename(filename),
	}

	if m := taxNumber.FindStringSubmatch(text); m != nil {
		rec.TaxInvoiceNumber = m[1]
	}

	lines := splitLines(text, true)

	// The line after the "Order/Quote" marker carries the order number and
	// currency as a trailing "<digits> <CUR>" pair, with the customer code
	// as its second token.
	if dataLine, ok := lineAfter(lines, taxOrderQuote.MatchString); ok {
		if m := taxOrderTail.FindStringSubmatch(dataLine); m != nil {
			rec.SalesOrder = m[1]
			rec.Currency = m[2]
		}
		if tokens := strings.Fields(dataLine); len(tokens) >= 2 {
			rec.CustomerCode = tokens[1]
		}
	}

	// The line after the date header holds invoice date then due date; fewer
	// than two ISO dates leaves both unknown.
	dateLine, ok := lineAfter(lines, func(l string) bool {
		return strings.HasPrefix(l, "Date Due Date") || strings.HasPrefix(l, "Data Vencimento")
	})
	if ok {
		if dates := taxISODate.FindAllString(dateLine, -1); len(dates) >= 2 {
			rec.InvoiceDate = dates[0]
			rec.DueDate = dates[1]
		}
	}

	// Prefer the total whose currency matches the one already determined;
	// otherwise take the first total and adopt its currency.
	totals := taxTotal.FindAllStringSubmatch(text, -1)
	if len(totals) > 0 {
		if rec.Currency != "" {
			for _, m := range totals {
				if m[1] == rec.Currency {
					rec.TotalAmount = normalize.ParseMoney(m[2])
					break
				}
			}
		}
		if rec.TotalAmount == nil {
			rec.TotalAmount = normalize.ParseMoney(totals[0][2])
			if rec.Currency == "" {
				rec.Currency = totals[0][1]
			}
		}
	}

	return rec
}
