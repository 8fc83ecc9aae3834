// Command server exposes the invoice cross-check over HTTP: upload the
// finance ledger plus tax invoice PDFs, download the reconciliation report.
package main

import (
	"fmt"
	"log"

	"invcheck/internal/config"
	"invcheck/internal/handler"
	"invcheck/internal/pdftext"
	"invcheck/internal/router"
	"invcheck/internal/service"
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

	svc := service.NewCheckService(pdftext.New(), cfg.Check.LedgerFilename)

	checkH := handler.NewCheckHandler(svc, cfg.Server.MaxUploadMB)
	healthH := handler.NewHealthHandler()

	r := router.Setup(checkH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
