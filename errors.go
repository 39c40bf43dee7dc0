package jsonadapt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonadapt/value"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeReadOnly     = "read_only"
	CodeUnknownKey   = "unknown_key"
	CodeDuplicateKey = "duplicate_key"
	CodeTooSmall     = "too_small"
	CodeTooBig       = "too_big"
	CodeTooShort     = "too_short"
	CodeTooLong      = "too_long"
	CodeInvalidEnum  = "invalid_enum"
	CodeOneOf        = "one_of"
	CodeInvalidValue = "invalid_value"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue represents a single validation, serialization or deserialization
// failure.
type Issue struct {
	Path    string // Dotted path (for example: items[2].price); "" is the root.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "value":42})
	// for i18n and observability.
	Params map[string]any
}

// ValidationError is the element type returned by Validate.
type ValidationError = Issue

func (it Issue) Error() string {
	if it.Path == "" {
		return it.Message
	}
	return it.Path + ": " + it.Message
}

func (it Issue) Unwrap() error { return it.Cause }

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes of the individual issues to errors.Is/As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// ToValue renders the issue as {"path", "code", "message"}.
func (it Issue) ToValue() value.Value {
	o := value.NewObject()
	o.Set("path", value.String(it.Path))
	o.Set("code", value.String(it.Code))
	o.Set("message", value.String(it.Message))
	return value.ObjectOf(o)
}

// ToValue renders the issues as an array; nil renders as [].
func (iss Issues) ToValue() value.Value {
	out := make([]value.Value, len(iss))
	for i, it := range iss {
		out[i] = it.ToValue()
	}
	return value.Array(out...)
}

// Messages returns the issue messages in order.
func (iss Issues) Messages() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Message
	}
	return out
}

// Err returns iss as an error, or nil when it is empty.
func (iss Issues) Err() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally. A lone
// Issue or a *ParseError is returned as a one-element list.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var it Issue
	if errors.As(err, &it) {
		return Issues{it}, true
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return Issues{pe.Issue()}, true
	}
	return nil, false
}

// issuesUnder re-roots the issues carried by err below p. Errors that are not
// issues become a single invalid_value issue at p.
func issuesUnder(p PathRef, err error) Issues {
	if iss, ok := AsIssues(err); ok {
		out := make(Issues, len(iss))
		for i, it := range iss {
			it.Path = p.Join(it.Path).String()
			out[i] = it
		}
		return out
	}
	return Issues{p.Invalid(err)}
}

// IssuesUnder is issuesUnder for adapter packages that nest values.
func IssuesUnder(p PathRef, err error) Issues { return issuesUnder(p, err) }
