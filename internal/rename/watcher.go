package rename

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	settleAttempts = 30
	settleInterval = 200 * time.Millisecond
)

// Watcher renames PDFs as they arrive in a directory.
type Watcher struct {
	renamer *Renamer
}

// NewWatcher creates a Watcher that delegates to renamer.
func NewWatcher(renamer *Renamer) *Watcher {
	return &Watcher{renamer: renamer}
}

// Watch processes existing PDFs in dir, then blocks renaming new arrivals
// until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	if err := w.renamer.ProcessDir(ctx, dir); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		return err
	}
	log.Printf("rename.Watcher: watching %s for new PDFs", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			waitUntilReadable(event.Name)
			if _, err := w.renamer.ProcessFile(ctx, event.Name); err != nil {
				log.Printf("rename.Watcher: %s: %v", filepath.Base(event.Name), err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("rename.Watcher: watch error: %v", err)
		}
	}
}

// waitUntilReadable gives the writer time to finish placing the file before
// it is opened for extraction.
func waitUntilReadable(path string) {
	for i := 0; i < settleAttempts; i++ {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(settleInterval)
	}
}
