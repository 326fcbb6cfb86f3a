package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalidHeader   ErrKind = iota // segment/section header could not be decoded
	ErrKindInvalidRecord                  // entry/sub-section record could not be decoded
	ErrKindInvalidDocument                // empty or unusable span handed to a constructor
	ErrKindEncoding                       // input bytes could not be decoded to text
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidHeader:
		return "invalid header"
	case ErrKindInvalidRecord:
		return "invalid record"
	case ErrKindInvalidDocument:
		return "invalid document"
	case ErrKindEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrInvalidRecord) matches every record failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels used with errors.Is.
var (
	// ErrInvalidHeader indicates a segment header span could not be decoded.
	ErrInvalidHeader = &Error{Kind: ErrKindInvalidHeader, Msg: "invalid segment header"}
	// ErrInvalidRecord indicates a record span could not be decoded.
	ErrInvalidRecord = &Error{Kind: ErrKindInvalidRecord, Msg: "invalid record"}
	// ErrInvalidDocument indicates an empty span was handed to a constructor.
	ErrInvalidDocument = &Error{Kind: ErrKindInvalidDocument, Msg: "nothing to parse"}
	// ErrEncoding indicates the input bytes could not be decoded.
	ErrEncoding = &Error{Kind: ErrKindEncoding, Msg: "unsupported input encoding"}
)

// -----------------------------------------------------------------------------
// Parse Options
// -----------------------------------------------------------------------------

// Granularity selects how the memory map block is cut into containers.
type Granularity int

const (
	// GranularitySegment splits the memory map on blank lines. Every record
	// must name the object (and optionally the library) that produced it.
	GranularitySegment Granularity = iota

	// GranularitySection starts a new section at every column-0 line and
	// accepts sub-section records without provenance.
	GranularitySection
)

func (g Granularity) String() string {
	switch g {
	case GranularitySegment:
		return "segment"
	case GranularitySection:
		return "section"
	default:
		return "unknown"
	}
}

// ParseOptions controls how a map document is decoded.
type ParseOptions struct {
	// Granularity is selected once per document.
	// Default: GranularitySegment
	Granularity Granularity

	// Sink receives diagnostics (size mismatches, fill anomalies, skipped
	// lines and skipped blocks). Nil discards them.
	Sink Sink

	// Strict aborts the parse on the first block that fails to assemble.
	// When false the block is reported to Sink and skipped.
	Strict bool

	// Workers assembles blocks concurrently when greater than 1. Segment
	// order and diagnostic order are the same as a sequential parse.
	Workers int

	// InputEncoding forces the input encoding: "UTF-8", "UTF-16LE" or
	// "WINDOWS-1252". Empty detects BOMs and falls back to Windows-1252 for
	// bytes that are not valid UTF-8.
	InputEncoding string
}

// SinkOrDiscard returns the configured sink, or Discard when none is set.
func (o ParseOptions) SinkOrDiscard() Sink {
	if o.Sink == nil {
		return Discard
	}
	return o.Sink
}
