package domain

import "errors"

var (
	// ErrLedgerMissing indicates the finance ledger document was not found
	// in the input set.
	ErrLedgerMissing = errors.New("finance ledger document not found")

	// ErrNoDocuments indicates the input set contained no usable documents.
	ErrNoDocuments = errors.New("no documents to process")

	// ErrUnsupportedFileType indicates an uploaded file is not a PDF.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
