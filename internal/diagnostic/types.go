package diagnostic

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Codes of the notes raised by the document loader.
const (
	CodeInferredShape = "inferred_shape"
	CodeDuplicateKey  = "duplicate_key"
	CodeSharedScalar  = "shared_scalar"
)

// Diagnostics holds the notes of one load, in the order they were raised.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single note.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Line is the input line the note refers to, 0 when unknown.
	Line int
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// AddWarning adds a warning.
func (d *Diagnostics) AddWarning(code string, line int, format string, args ...any) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// AddInfo adds an info note.
func (d *Diagnostics) AddInfo(code string, line int, format string, args ...any) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// Len returns the number of notes.
func (d Diagnostics) Len() int {
	return len(d.Warnings) + len(d.Infos)
}

// Log writes warnings at warn level and infos at debug level.
func (d *Diagnostics) Log(logger *log.Logger) {
	for _, w := range d.Warnings {
		logger.Warn(w.Message, "code", w.Code, "line", w.Line)
	}

	for _, i := range d.Infos {
		logger.Debug(i.Message, "code", i.Code, "line", i.Line)
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, msg)
	}

	return msg
}
