// ABOUTME: Sentinel errors for document resolution and ingestion
// ABOUTME: Surfaces match with errors.Is to choose status codes
package rag

import "errors"

var (
	// ErrDocumentNotFound marks an unknown document identity or a short
	// name with no match under the document root
	ErrDocumentNotFound = errors.New("document not found")

	// ErrAmbiguousDocument marks a short name matching more than one file
	ErrAmbiguousDocument = errors.New("ambiguous document name")

	// ErrInvalidDocument marks unreadable or unsupported document content
	ErrInvalidDocument = errors.New("invalid document")
)
