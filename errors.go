package vmetrics

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors of a metrics editing run.
type ErrorKind int

const (
	// InputNotFound: the input file does not exist. Fatal, raised before any work.
	InputNotFound ErrorKind = iota + 1
	// UnsupportedFormat: the compressor has been handed a file it cannot compress.
	UnsupportedFormat
	// ContainerMalformed: the SFNT table directory or a required table is broken.
	ContainerMalformed
	// TranscodeFailed: the WOFF2 codec failed in either direction.
	TranscodeFailed
	// MetricOutOfRange: a computed metric does not fit into a signed 16-bit field.
	MetricOutOfRange
	// SerializationFailed: the font container could not be serialized or written out.
	SerializationFailed
	// PatchTargetNotFound: the binary patcher could not locate table 'hhea'. Non-fatal.
	PatchTargetNotFound
	// VerificationFailed: the read-back check of the output differs. Non-fatal.
	VerificationFailed
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case InputNotFound:
		return "InputNotFound"
	case UnsupportedFormat:
		return "UnsupportedFormat"
	case ContainerMalformed:
		return "ContainerMalformed"
	case TranscodeFailed:
		return "TranscodeFailed"
	case MetricOutOfRange:
		return "MetricOutOfRange"
	case SerializationFailed:
		return "SerializationFailed"
	case PatchTargetNotFound:
		return "PatchTargetNotFound"
	case VerificationFailed:
		return "VerificationFailed"
	default:
		return "UnknownError"
	}
}

// Fatal reports whether an error of this kind terminates a run.
// ContainerMalformed is fatal when raised by loading; table-specific
// operations downgrade it to a warning themselves.
func (k ErrorKind) Fatal() bool {
	switch k {
	case PatchTargetNotFound, VerificationFailed:
		return false
	}
	return true
}

// Error is an error of a specific kind, optionally tied to a font table.
type Error struct {
	Kind  ErrorKind // classification of the error
	Table string    // the OpenType table concerned, e.g. "hhea" (empty if none)
	Issue string    // human-readable description of the issue
	Err   error     // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Issue
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Table != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Table, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind, so that
//
//	errors.Is(err, &vmetrics.Error{Kind: vmetrics.TranscodeFailed})
//
// holds for every transcoding error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Table == "" || t.Table == e.Table)
}

// Errorf creates an error of kind k for table tag (may be empty).
func Errorf(k ErrorKind, tag string, format string, args ...interface{}) error {
	return &Error{Kind: k, Table: tag, Issue: fmt.Sprintf(format, args...)}
}

// Wrap wraps err as an error of kind k. A nil err yields nil.
func Wrap(k ErrorKind, tag string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Table: tag, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind is true if err or any error wrapped by it is of kind k.
func IsKind(err error, k ErrorKind) bool {
	return errors.Is(err, &Error{Kind: k})
}

// --- Warnings --------------------------------------------------------------

// Warning is a non-fatal issue encountered during a run. Runs complete in
// spite of warnings, using whichever tables are present.
type Warning struct {
	Kind  ErrorKind // kind of a downgraded error, 0 for plain warnings
	Table string    // the OpenType table concerned
	Issue string    // human-readable description of the warning
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	prefix := "[WARNING]"
	if w.Kind != 0 {
		prefix = fmt.Sprintf("[WARNING:%s]", w.Kind)
	}
	if w.Table != "" {
		return fmt.Sprintf("%s %s: %s", prefix, w.Table, w.Issue)
	}
	return fmt.Sprintf("%s %s", prefix, w.Issue)
}

// Warnings accumulates warnings during a run. The zero value is ready to use.
type Warnings struct {
	list []Warning
}

// Addf records a plain warning for a table.
func (ws *Warnings) Addf(tag string, format string, args ...interface{}) {
	w := Warning{Table: tag, Issue: fmt.Sprintf(format, args...)}
	tracer().Infof(w.String())
	ws.list = append(ws.list, w)
}

// AddError records a non-fatal error as a warning.
func (ws *Warnings) AddError(err error) {
	if err == nil {
		return
	}
	w := Warning{Issue: err.Error()}
	var e *Error
	if errors.As(err, &e) {
		w.Kind, w.Table, w.Issue = e.Kind, e.Table, e.Issue
		if e.Err != nil {
			if w.Issue == "" {
				w.Issue = e.Err.Error()
			} else {
				w.Issue += ": " + e.Err.Error()
			}
		}
	}
	tracer().Infof(w.String())
	ws.list = append(ws.list, w)
}

// Merge appends all warnings of other.
func (ws *Warnings) Merge(other []Warning) {
	ws.list = append(ws.list, other...)
}

// List returns all recorded warnings.
func (ws *Warnings) List() []Warning {
	if ws == nil || ws.list == nil {
		return []Warning{}
	}
	return ws.list
}

// Has is true if a warning of kind k has been recorded.
func (ws *Warnings) Has(k ErrorKind) bool {
	for _, w := range ws.List() {
		if w.Kind == k {
			return true
		}
	}
	return false
}

// Len returns the number of recorded warnings.
func (ws *Warnings) Len() int {
	return len(ws.List())
}
