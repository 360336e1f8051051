// Package export turns a rendered resume preview into a downloadable PDF,
// with staged fallbacks down to a print-ready HTML document.
package export

import (
	"errors"
	"fmt"
)

// ErrExportInFlight is returned when an export for the same resume is already
// running.
var ErrExportInFlight = errors.New("export already in progress for this resume")

// CaptureError represents a failure to rasterize the preview.
type CaptureError struct {
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("capture error: %s", e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// AssemblyError represents a failure to build the PDF from a capture.
type AssemblyError struct {
	Message string
	Cause   error
}

func (e *AssemblyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assembly error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assembly error: %s", e.Message)
}

func (e *AssemblyError) Unwrap() error {
	return e.Cause
}
