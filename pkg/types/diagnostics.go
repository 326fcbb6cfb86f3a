package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Diagnostic System
// -----------------------------------------------------------------------------
//
// Real map files contain linker artifacts that disagree with the textual
// model (relaxed sections, overlapping fills, wrapped names). The parser never
// fails on these; it reports them as Diagnostics to an injected Sink:
//   - Nothing is process-wide; each parse gets its own Sink.
//   - DiagnosticReport collects everything and keeps a summary for tests and
//     the diagnose command.

// Severity classifies how serious a diagnostic issue is
type Severity int

const (
	SevInfo    Severity = iota // Informational (skipped lines, linker directives)
	SevWarning                 // Linker anomaly, the model may disagree with the header
	SevError                   // A block could not be decoded and was skipped
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity accepts the names produced by String, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return SevInfo, nil
	case "WARN", "WARNING":
		return SevWarning, nil
	case "ERROR":
		return SevError, nil
	default:
		return SevInfo, fmt.Errorf("unknown severity %q", s)
	}
}

// DiagCategory classifies the type of issue found
type DiagCategory int

const (
	DiagSizeMismatch  DiagCategory = iota // record sizes do not add up to the header size
	DiagFillAddress                       // fill is not contiguous with its record
	DiagFillSize                          // fill is larger than its record
	DiagSkippedLine                       // unrecognized line inside a record or header
	DiagSkippedBlock                      // block failed to assemble and was dropped
	DiagDirective                         // linker directive block (LOAD, OUTPUT, ...) ignored
	DiagMissingMemoryMap                  // document has no memory map section
)

func (c DiagCategory) String() string {
	switch c {
	case DiagSizeMismatch:
		return "SIZE_MISMATCH"
	case DiagFillAddress:
		return "FILL_ADDRESS"
	case DiagFillSize:
		return "FILL_SIZE"
	case DiagSkippedLine:
		return "SKIPPED_LINE"
	case DiagSkippedBlock:
		return "SKIPPED_BLOCK"
	case DiagDirective:
		return "DIRECTIVE"
	case DiagMissingMemoryMap:
		return "MISSING_MEMORY_MAP"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets categories appear by name in JSON output.
func (c DiagCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText lets severities appear by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Diagnostic represents a single non-fatal condition found while parsing.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Category DiagCategory `json:"category"`
	Segment  string       `json:"segment,omitempty"` // enclosing segment, when known
	Record   string       `json:"record,omitempty"`  // enclosing record, when known
	Message  string       `json:"message"`
	Line     string       `json:"line,omitempty"` // offending source line
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s/%s] %s", d.Severity, d.Category, d.Message)
	if d.Segment != "" {
		fmt.Fprintf(&b, " (segment %s", d.Segment)
		if d.Record != "" {
			fmt.Fprintf(&b, ", record %s", d.Record)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Sink receives diagnostics emitted during a parse.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// DiagnosticReport collects all diagnostics emitted during a parse
type DiagnosticReport struct {
	Source string `json:"source,omitempty"`

	Diagnostics []Diagnostic `json:"diagnostics"`

	Summary DiagSummary `json:"summary"`

	BySeverity map[Severity][]Diagnostic `json:"-"`
}

// DiagSummary provides quick statistics
type DiagSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// NewDiagnosticReport creates an empty report
func NewDiagnosticReport() *DiagnosticReport {
	return &DiagnosticReport{
		BySeverity: make(map[Severity][]Diagnostic),
	}
}

// Add adds a diagnostic to the report and updates indices
func (r *DiagnosticReport) Add(d Diagnostic) {
	if r.BySeverity == nil {
		r.BySeverity = make(map[Severity][]Diagnostic)
	}
	r.Diagnostics = append(r.Diagnostics, d)

	switch d.Severity {
	case SevError:
		r.Summary.Errors++
	case SevWarning:
		r.Summary.Warnings++
	case SevInfo:
		r.Summary.Info++
	}

	r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
}

// Report implements Sink.
func (r *DiagnosticReport) Report(d Diagnostic) { r.Add(d) }

// Replay forwards every collected diagnostic, in order, to s.
func (r *DiagnosticReport) Replay(s Sink) {
	for _, d := range r.Diagnostics {
		s.Report(d)
	}
}

// ByCategory returns all diagnostics of category c in emission order.
func (r *DiagnosticReport) ByCategory(c DiagCategory) []Diagnostic {
	var result []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Category == c {
			result = append(result, d)
		}
	}
	return result
}

// AtLeast returns all diagnostics at or above the given severity.
func (r *DiagnosticReport) AtLeast(min Severity) []Diagnostic {
	var result []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity >= min {
			result = append(result, d)
		}
	}
	return result
}

// HasErrors returns true if any block was dropped
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasAnyIssues returns true if any issues were found (including warnings and info)
func (r *DiagnosticReport) HasAnyIssues() bool {
	return len(r.Diagnostics) > 0
}

// -----------------------------------------------------------------------------
// Output Formatters
// -----------------------------------------------------------------------------

// FormatJSON returns the report as formatted JSON (2-space indentation)
func (r *DiagnosticReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable text report
func (r *DiagnosticReport) FormatText(min Severity) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 79) + "\n")
	b.WriteString("Linker Map Diagnostic Report\n")
	b.WriteString(strings.Repeat("=", 79) + "\n\n")

	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File:      %s\n\n", r.Source))
	}

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 79) + "\n")
	b.WriteString(fmt.Sprintf("  Errors:   %d\n", r.Summary.Errors))
	b.WriteString(fmt.Sprintf("  Warnings: %d\n", r.Summary.Warnings))
	b.WriteString(fmt.Sprintf("  Info:     %d\n\n", r.Summary.Info))

	if len(r.AtLeast(min)) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	b.WriteString("DIAGNOSTICS\n")
	b.WriteString(strings.Repeat("-", 79) + "\n\n")

	for _, severity := range []Severity{SevError, SevWarning, SevInfo} {
		if severity < min {
			continue
		}
		diags := r.BySeverity[severity]
		if len(diags) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("%s (%d)\n", severity, len(diags)))
		b.WriteString(strings.Repeat("~", 79) + "\n")

		for i, d := range diags {
			b.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, d.Category, d.Message))
			if d.Segment != "" {
				b.WriteString(fmt.Sprintf("   Segment: %s\n", d.Segment))
			}
			if d.Record != "" {
				b.WriteString(fmt.Sprintf("   Record:  %s\n", d.Record))
			}
			if d.Line != "" {
				b.WriteString(fmt.Sprintf("   Line:    %q\n", d.Line))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
