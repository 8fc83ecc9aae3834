package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"invcheck/internal/domain"
	"invcheck/internal/extract"
	"invcheck/internal/port"
	"invcheck/internal/recon"
)

// defaultLedgerName identifies the finance ledger export among the input
// PDFs when no filename is configured. Spacing variants are tolerated
// because text extraction backends differ on the space.
var defaultLedgerName = regexp.MustCompile(`(?i)^finance\s*invoice\.pdf$`)

// CheckService runs the full reconciliation pipeline: load both populations,
// cross-check, and hand back the classified rows.
type CheckService struct {
	loader   *extract.Loader
	isLedger func(name string) bool
}

// NewCheckService creates a CheckService backed by the given text extractor.
// A non-empty ledgerFilename overrides the default finance export name; the
// configured name is matched case-insensitively.
func NewCheckService(extractor port.TextExtractor, ledgerFilename string) *CheckService {
	isLedger := defaultLedgerName.MatchString
	if ledgerFilename != "" {
		isLedger = func(name string) bool { return strings.EqualFold(name, ledgerFilename) }
	}
	return &CheckService{loader: extract.NewLoader(extractor), isLedger: isLedger}
}

// RunDir reconciles every PDF in dir. The ledger is the file matching the
// finance export name; all other PDFs are treated as tax invoices, processed
// in filename order.
func (s *CheckService) RunDir(ctx context.Context, dir string, opts recon.Options) (*recon.Result, error) {
	ledgerPath, taxPaths, err := s.partitionInputs(dir)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, ledgerPath, taxPaths, opts)
}

// Run reconciles the given ledger document against the given tax documents.
func (s *CheckService) Run(ctx context.Context, ledgerPath string, taxPaths []string, opts recon.Options) (*recon.Result, error) {
	ledger, err := s.loader.LoadLedger(ctx, ledgerPath)
	if err != nil {
		return nil, err
	}
	tax := s.loader.LoadTaxInvoices(ctx, taxPaths)

	log.Printf("service.CheckService: reconciling %d tax invoice(s) against %d ledger record(s)",
		len(tax), len(ledger))
	return recon.Reconcile(ledger, tax, opts), nil
}

// partitionInputs splits the PDFs in dir into the single ledger file and the
// sorted tax invoice files.
func (s *CheckService) partitionInputs(dir string) (string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("reading input dir %s: %w", dir, err)
	}

	ledgerPath := ""
	var taxPaths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if s.isLedger(e.Name()) {
			ledgerPath = path
			continue
		}
		taxPaths = append(taxPaths, path)
	}

	if ledgerPath == "" {
		return "", nil, domain.ErrLedgerMissing
	}
	if len(taxPaths) == 0 {
		return "", nil, domain.ErrNoDocuments
	}
	sort.Strings(taxPaths)
	return ledgerPath, taxPaths, nil
}
