package placard

// Failures are per-shipment result values: one bad key never aborts the
// rest of a batch.

import "fmt"

// TemplateUnavailableError reports that a template could not be loaded
// or cloned. It is fatal for that shipment's render; no partial output
// is produced.
type TemplateUnavailableError struct {
	Path  string
	Cause error
}

func (e *TemplateUnavailableError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("template unavailable: %s: %v", e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("template unavailable: %s", e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("template unavailable: %v", e.Cause)
	}
	return "template unavailable"
}

func (e *TemplateUnavailableError) Unwrap() error {
	return e.Cause
}

// EmptyGroupSetError reports that a shipment produced zero groups, so
// there is nothing to render.
type EmptyGroupSetError struct {
	Shipment string
}

func (e *EmptyGroupSetError) Error() string {
	if e.Shipment != "" {
		return fmt.Sprintf("no groups to render for shipment %s", e.Shipment)
	}
	return "no groups to render"
}

// StructuralCopyError reports that a formatting-preserving structural
// copy could not be performed. The assembler recovers from it with a
// plain-text fallback and flags the result as degraded.
type StructuralCopyError struct {
	Op     string
	Reason string
}

func (e *StructuralCopyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("structural copy failed during %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("structural copy failed during %s", e.Op)
}

// DocumentError reports a failure while reading or writing a document
// artifact (the template package or an output file).
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document error during %s of %q: %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError wraps a failure of a document read/write operation.
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{Operation: operation, Path: path, Cause: cause}
}

// IsTemplateUnavailable checks if an error is a TemplateUnavailableError.
func IsTemplateUnavailable(err error) bool {
	_, ok := err.(*TemplateUnavailableError)
	return ok
}

// IsEmptyGroupSet checks if an error is an EmptyGroupSetError.
func IsEmptyGroupSet(err error) bool {
	_, ok := err.(*EmptyGroupSetError)
	return ok
}

// IsStructuralCopy checks if an error is a StructuralCopyError.
func IsStructuralCopy(err error) bool {
	_, ok := err.(*StructuralCopyError)
	return ok
}
