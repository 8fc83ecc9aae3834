// Command check reconciles tax invoices against the finance ledger export in
// a directory and writes the report next to the inputs.
// Usage: check [-dir PATH]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"invcheck/internal/config"
	"invcheck/internal/csvexport"
	"invcheck/internal/pdftext"
	"invcheck/internal/recon"
	"invcheck/internal/service"
	"invcheck/internal/xlsxexport"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := flag.String("dir", cfg.Check.InputDir, "directory holding the ledger and tax invoice PDFs")
	xlsx := flag.Bool("xlsx", cfg.Export.XLSX, "also write an XLSX copy of the report")
	flag.Parse()

	svc := service.NewCheckService(pdftext.New(), cfg.Check.LedgerFilename)
	res, err := svc.RunDir(context.Background(), *dir, recon.Options{
		Duplicates: recon.DuplicatePolicy(cfg.Check.DuplicatePolicy),
	})
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.Export.OutputDir, cfg.Export.BaseName+".csv")
	written, err := csvexport.WriteReport(outPath, res.Rows)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Printf("Wrote %d row(s) to %s", len(res.Rows), written)

	if *xlsx {
		xlsxPath := filepath.Join(cfg.Export.OutputDir, cfg.Export.BaseName+".xlsx")
		if err := xlsxexport.WriteReport(xlsxPath, res.Rows); err != nil {
			return fmt.Errorf("writing xlsx report: %w", err)
		}
		log.Printf("Wrote %s", xlsxPath)
	}

	return nil
}
