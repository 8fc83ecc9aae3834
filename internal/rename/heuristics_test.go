package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInvoiceCode(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"Invoice OM.2025_12.pdf", "OM.2025_12"},
		{"ptr.2024_7 export.pdf", "ptr.2024_7"},
		{"statement.pdf", ""},
		{"OM.25_1.pdf", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseInvoiceCode(tt.filename), tt.filename)
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"labeled english", "Invoice\nDate 2025-01-15\nTotal", "2025-01-15"},
		{"labeled portuguese", "Data 2025-03-01", "2025-03-01"},
		{"bare fallback", "issued on 2025-06-30 in Lisbon", "2025-06-30"},
		{"labeled wins over earlier bare", "2024-12-31 Date 2025-01-15", "2025-01-15"},
		{"none", "no dates here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindDate(tt.text))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15.01", FormatDate("2025-01-15"))
	assert.Equal(t, "", FormatDate("2025-13-40"))
	assert.Equal(t, "", FormatDate(""))
}

func TestLooksLikeName(t *testing.T) {
	assert.True(t, LooksLikeName("Acme Corp LDA"))
	assert.False(t, LooksLikeName(""))
	assert.False(t, LooksLikeName("billing@acme.example"))
	assert.False(t, LooksLikeName("Rua das Flores 12"))
	assert.False(t, LooksLikeName("Contribuinte 501234567"))
	assert.False(t, LooksLikeName("NIF 1234567"))
	assert.False(t, LooksLikeName("12 34"), "needs at least one letter")
}

func TestFindCustomer(t *testing.T) {
	t.Run("salutation neighbor", func(t *testing.T) {
		lines := []string{"Acme Corp LDA", "Exmo. Sr.", "Rua das Flores 12"}
		assert.Equal(t, "Acme Corp LDA", FindCustomer(lines))
	})

	t.Run("salutation prefers previous then next", func(t *testing.T) {
		lines := []string{"Rua das Flores 12", "Exmo. Sr.", "Globex UAB"}
		assert.Equal(t, "Globex UAB", FindCustomer(lines))
	})

	t.Run("last dear sir wins", func(t *testing.T) {
		lines := []string{"First Co", "Dear Sir,", "body", "Second Co", "Dear Madam,"}
		assert.Equal(t, "Second Co", FindCustomer(lines))
	})

	t.Run("company suffix fallback", func(t *testing.T) {
		lines := []string{"Invoice 12345678", "Initech SIA", "Total 100.00"}
		assert.Equal(t, "Initech SIA", FindCustomer(lines))
	})

	t.Run("nothing found", func(t *testing.T) {
		assert.Equal(t, "", FindCustomer([]string{"Total 100.00"}))
	})
}

func TestFindOrder(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"order quote label", "Order/Quote SO-00123456 issued", "00123456"},
		{"generic order label", "Order: 445566", "445566"},
		{"bare long digits fallback", "ref 12345678 attached", "12345678"},
		{"longest chunk wins", "Order/Quote A1-99887766", "99887766"},
		{"trimmed to eight digits", "Order: 1234567890", "12345678"},
		{"none", "no order here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindOrder(tt.text))
		})
	}
}

func TestSafePart(t *testing.T) {
	assert.Equal(t, "Acme_Corp", SafePart("  Acme   Corp "))
	assert.Equal(t, "Acme_Co", SafePart("Acme & Co!"))
	assert.Equal(t, "a.b-c_d", SafePart("a.b-c d"))
	assert.Equal(t, "", SafePart(""))
}

func TestBuildName(t *testing.T) {
	got := BuildName("OM.2025_12", "15.01", "Acme Corp", "12345", ".pdf")
	assert.Equal(t, "15.01_Acme_Corp_12345_OM.2025_12.pdf", got)
}
