package extract

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"invcheck/internal/domain"
	"invcheck/internal/port"
)

// Loader turns documents into invoice records via the text-extraction
// collaborator.
type Loader struct {
	extractor port.TextExtractor
}

// NewLoader creates a Loader backed by the given text extractor.
func NewLoader(extractor port.TextExtractor) *Loader {
	return &Loader{extractor: extractor}
}

// LoadLedger extracts one record per qualifying page of the finance ledger
// document. A ledger with zero qualifying pages yields zero records, not an
// error.
func (l *Loader) LoadLedger(ctx context.Context, path string) ([]domain.InvoiceRecord, error) {
	pages, err := l.extractor.ExtractPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting ledger %s: %w", filepath.Base(path), err)
	}

	var records []domain.InvoiceRecord
	for _, page := range pages {
		if rec := ParseLedgerPage(page); rec != nil {
			rec.SourceID = sourceID(path)
			records = append(records, *rec)
		}
	}
	if len(records) == 0 {
		log.Printf("extract.Loader: no qualifying invoice pages in %s", filepath.Base(path))
	}
	return records, nil
}

// LoadTaxInvoices extracts one record per tax document, in input order. A
// document whose text cannot be extracted degrades to a record carrying only
// its source id; the rest of the batch is unaffected.
func (l *Loader) LoadTaxInvoices(ctx context.Context, paths []string) []domain.InvoiceRecord {
	records := make([]domain.InvoiceRecord, 0, len(paths))
	for _, path := range paths {
		id := sourceID(path)
		pages, err := l.extractor.ExtractPages(ctx, path)
		if err != nil {
			log.Printf("extract.Loader: failed to extract %s: %v", id, err)
			records = append(records, domain.InvoiceRecord{SourceID: id})
			continue
		}
		records = append(records, ParseTaxInvoice(strings.Join(pages, "\n"), id))
	}
	return records
}

// sourceID is the document identifier attached to every record: the base
// filename, or a synthetic id when there is none.
func sourceID(path string) string {
	base := filepath.Base(path)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "doc-" + uuid.NewString()
	}
	return base
}
