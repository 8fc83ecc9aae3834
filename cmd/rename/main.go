// Command rename stamps incoming invoice PDFs with the structured filename
// the checker expects.
// Usage: rename [-dir PATH] [-watch]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"invcheck/internal/config"
	"invcheck/internal/pdftext"
	"invcheck/internal/rename"
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

	dir := flag.String("dir", cfg.Rename.WatchDir, "directory holding incoming invoice PDFs")
	watch := flag.Bool("watch", false, "keep watching the directory for new PDFs")
	flag.Parse()

	renamer := rename.NewRenamer(pdftext.New())
	if !*watch {
		return renamer.ProcessDir(context.Background(), *dir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = rename.NewWatcher(renamer).Watch(ctx, *dir)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
