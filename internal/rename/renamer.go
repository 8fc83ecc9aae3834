// Package rename stamps incoming invoice PDFs with the structured filename
// the extraction stage expects.
package rename

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"invcheck/internal/port"
)

const (
	renameAttempts = 5
	renameBackoff  = 500 * time.Millisecond
)

// Renamer derives target filenames from PDF content and renames files in
// place.
type Renamer struct {
	extractor port.TextExtractor
}

// NewRenamer creates a Renamer backed by the given text extractor.
func NewRenamer(extractor port.TextExtractor) *Renamer {
	return &Renamer{extractor: extractor}
}

// ProcessFile renames a single PDF when all naming pieces can be derived.
// It returns the new path, or "" when the file was skipped. Skips are not
// errors: files without an invoice code, with missing pieces, or already
// named correctly are logged and left alone.
func (r *Renamer) ProcessFile(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)

	code := ParseInvoiceCode(name)
	if code == "" {
		log.Printf("rename.Renamer: no invoice code in %s, skipping", name)
		return "", nil
	}

	pages, err := r.extractor.ExtractPages(ctx, path)
	if err != nil {
		return "", err
	}
	text := strings.Join(pages, "\n")
	lines := nonEmptyLines(text)

	dateDDMM := FormatDate(FindDate(text))
	customer := FindCustomer(lines)
	order := FindOrder(text)
	if dateDDMM == "" || customer == "" || order == "" {
		log.Printf("rename.Renamer: missing pieces for %s: date=%q customer=%q order=%q",
			name, dateDDMM, customer, order)
		return "", nil
	}

	target := filepath.Join(filepath.Dir(path), BuildName(code, dateDDMM, customer, order, filepath.Ext(path)))
	if target == path {
		log.Printf("rename.Renamer: already named correctly: %s", name)
		return path, nil
	}
	if _, err := os.Stat(target); err == nil {
		log.Printf("rename.Renamer: target exists, skipping: %s", filepath.Base(target))
		return "", nil
	}

	if err := renameWithRetry(path, target); err != nil {
		return "", err
	}
	log.Printf("rename.Renamer: %s -> %s", name, filepath.Base(target))
	return target, nil
}

// ProcessDir renames every PDF in dir once.
func (r *Renamer) ProcessDir(ctx context.Context, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.ProcessFile(ctx, path); err != nil {
			log.Printf("rename.Renamer: %s: %v", filepath.Base(path), err)
		}
	}
	return nil
}

// renameWithRetry retries permission failures, which happen while the
// download manager or a virus scanner still holds the file open.
func renameWithRetry(oldPath, newPath string) error {
	var err error
	for attempt := 0; attempt < renameAttempts; attempt++ {
		err = os.Rename(oldPath, newPath)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrPermission) {
			return err
		}
		time.Sleep(renameBackoff)
	}
	return err
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
