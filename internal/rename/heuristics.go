package rename

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Naming heuristics for incoming invoice PDFs. The goal filename is
// "<dd.mm>_<Customer_Name>_<order>_<code>.pdf", which downstream extraction
// relies on for the customer name.
var (
	invoiceCode   = regexp.MustCompile(`(?i)(OM\.\d{4}_\d+|PTR\.\d{4}_\d+)`)
	labeledDate   = regexp.MustCompile(`(?i)\b(?:Date|Data)\s+(\d{4}-\d{2}-\d{2})`)
	bareDate      = regexp.MustCompile(`\b(20\d{2}-\d{2}-\d{2})\b`)
	orderLabeled  = regexp.MustCompile(`(?i)Order/Quote\s+([A-Za-z0-9_.-]+)`)
	orderGeneric  = regexp.MustCompile(`(?i)Order\s*[:#]?\s*([A-Za-z0-9_.-]+)`)
	longDigits    = regexp.MustCompile(`\b(\d{6,})\b`)
	digitChunk    = regexp.MustCompile(`\d+`)
	addressNoise  = regexp.MustCompile(`(?i)\b(Tax ID|Capital Social|Contribuinte|Rua|Lisboa|Lisbon|Morada|Payment|Date)\b`)
	contactNoise  = regexp.MustCompile(`@|https?://`)
	sixDigitRun   = regexp.MustCompile(`\d{6,}`)
	fiveDigitRun  = regexp.MustCompile(`\d{5,}`)
	anyLetter     = regexp.MustCompile(`[A-Za-z]`)
	salutation    = regexp.MustCompile(`(?i)Exmo.*Sr`)
	companySuffix = regexp.MustCompile(`(?i)\b(LLC|UAB|LDA|LDA\.|S\.A|S\.A\.|Ltda|SIA)\b`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9._ -]+`)
)

// ParseInvoiceCode pulls the issuing-system code (OM.2025_12 style) out of
// the original filename. Files without one are not invoices and are skipped.
func ParseInvoiceCode(filename string) string {
	if m := invoiceCode.FindStringSubmatch(filepath.Base(filename)); m != nil {
		return m[1]
	}
	return ""
}

// FindDate returns the first labeled ISO date in the text, falling back to
// any bare 20xx ISO date.
func FindDate(text string) string {
	if m := labeledDate.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := bareDate.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// FormatDate converts an ISO date to the dd.mm filename prefix. Unparseable
// input yields "".
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return ""
	}
	return t.Format("02.01")
}

// LooksLikeName filters out address lines, contact lines and tax boilerplate
// when hunting for the customer name.
func LooksLikeName(line string) bool {
	if line == "" {
		return false
	}
	if contactNoise.MatchString(line) {
		return false
	}
	if addressNoise.MatchString(line) {
		return false
	}
	if sixDigitRun.MatchString(line) {
		return false
	}
	return anyLetter.MatchString(line)
}

// FindCustomer locates the customer name in the document lines. Salutation
// neighbors win, then the line above the last "Dear Sir/Madam", then the
// first short line carrying a company suffix.
func FindCustomer(lines []string) string {
	for i, line := range lines {
		if !salutation.MatchString(line) {
			continue
		}
		var candidates []string
		if i > 0 {
			candidates = append(candidates, lines[i-1])
		}
		if i+1 < len(lines) {
			candidates = append(candidates, lines[i+1])
		}
		for _, cand := range candidates {
			if LooksLikeName(cand) {
				return cand
			}
		}
	}

	lastDear := ""
	for i, line := range lines {
		if strings.Contains(line, "Dear Sir") || strings.Contains(line, "Dear Madam") {
			if i > 0 && LooksLikeName(lines[i-1]) {
				lastDear = lines[i-1]
			}
		}
	}
	if lastDear != "" {
		return lastDear
	}

	for _, line := range lines {
		if len(line) <= 60 && !fiveDigitRun.MatchString(line) && companySuffix.MatchString(line) {
			return line
		}
	}
	return ""
}

// FindOrder extracts the order number: labeled forms first, then the first
// long digit run anywhere in the text. The result is normalized to its
// longest digit chunk, trimmed to 8 digits.
func FindOrder(text string) string {
	raw := ""
	if m := orderLabeled.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := orderGeneric.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := longDigits.FindStringSubmatch(text); m != nil {
		raw = m[1]
	}
	if raw == "" {
		return ""
	}

	chunks := digitChunk.FindAllString(raw, -1)
	if len(chunks) == 0 {
		return raw
	}
	best := chunks[0]
	for _, c := range chunks[1:] {
		if len(c) > len(best) {
			best = c
		}
	}
	if len(best) > 8 {
		best = best[:8]
	}
	return best
}

// SafePart makes a filename-safe token: strips unsafe characters, collapses
// whitespace and joins words with underscores.
func SafePart(part string) string {
	cleaned := unsafeChars.ReplaceAllString(strings.TrimSpace(part), " ")
	return strings.Join(strings.Fields(cleaned), "_")
}

// BuildName assembles the target filename from its parts.
func BuildName(code, dateDDMM, customer, order, suffix string) string {
	return SafePart(dateDDMM) + "_" + SafePart(customer) + "_" + SafePart(order) + "_" + code + suffix
}
