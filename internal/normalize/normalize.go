// Package normalize holds the canonicalizers that turn raw extracted text
// fragments into comparable normal forms. Every function here is total:
// unparseable input maps to an empty-string or nil sentinel, never an error.
package normalize

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	nonDigit = regexp.MustCompile(`\D`)
	nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

	// moneyJunk matches everything that is not a digit or separator,
	// including currency glyphs and whitespace.
	moneyJunk = regexp.MustCompile(`[^0-9,.]`)

	dottedDate = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	isoDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// filenameName captures the customer name segment of a renamed tax
	// invoice filename: DD.MM_<name>_<digits>_...
	filenameName = regexp.MustCompile(`^\d{2}\.\d{2}_(.+)_\d+_`)
)

// OrderKey canonicalizes a sales order (or customer code) for matching:
// digits only, leading zeros stripped. An all-zero or empty digit run is
// returned unstripped so true zero keys stay usable. Idempotent.
func OrderKey(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	stripped := strings.TrimLeft(digits, "0")
	if stripped == "" {
		return digits
	}
	return stripped
}

// NameKey canonicalizes a customer name for equality testing only: letters
// and digits, lowercased. Never displayed.
func NameKey(raw string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(raw, ""))
}

// ParseMoney parses an amount in either decimal convention. When both "."
// and "," appear, the rightmost of the two is the decimal separator; a lone
// comma is a decimal separator. Returns nil when nothing parseable remains.
func ParseMoney(raw string) *decimal.Decimal {
	s := moneyJunk.ReplaceAllString(raw, "")
	if s == "" {
		return nil
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if dot > comma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// ParseDateAny accepts DD.MM.YYYY or YYYY-MM-DD and returns the ISO form.
// Wrong formats and invalid calendar dates return "".
func ParseDateAny(raw string) string {
	s := strings.TrimSpace(raw)
	layout := ""
	switch {
	case dottedDate.MatchString(s):
		layout = "02.01.2006"
	case isoDate.MatchString(s):
		layout = "2006-01-02"
	default:
		return ""
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// NameFromFilename derives the customer name from a renamed tax invoice
// filename (DD.MM_<name>_<digits>_...), underscores restored to spaces.
// Returns "" when the filename does not follow the pattern.
func NameFromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	m := filenameName.FindStringSubmatch(stem)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(m[1], "_", " "))
}

// FormatAmount renders an amount as fixed 2-decimal text, or "" for nil.
func FormatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
