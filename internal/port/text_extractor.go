package port

import "context"

// TextExtractor abstracts per-document page text extraction. Implementations
// return one string per page, in page order; a page with no extractable text
// yields an empty string, not an error.
type TextExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}
