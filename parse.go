package jsonadapt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonadapt/i18n"
	eng "github.com/reoring/jsonadapt/internal/engine"
	"github.com/reoring/jsonadapt/value"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("jsonadapt: parse error")

// ErrSyntax is the cause of a parse error raised by the grammar check that
// follows token decoding (misplaced commas or colons).
var ErrSyntax = errors.New("invalid JSON syntax")

// ParseError reports malformed or rejected input text.
type ParseError struct {
	Code    string // parse_error, duplicate_key or truncated
	Path    string // Position in the document when known.
	Offset  int64  // Bytes consumed when the error was detected (-1 when unknown).
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Message + " at " + e.Path
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Issue converts e into the common Issue shape.
func (e *ParseError) Issue() Issue {
	return Issue{Path: e.Path, Code: e.Code, Message: e.Message, Cause: e.Err}
}

// Parse reads a single JSON document.
func Parse(s string, opts ...ParseOpt) (value.Value, error) {
	return ParseBytes([]byte(s), opts...)
}

// ParseBytes reads a single JSON document from b.
func ParseBytes(b []byte, opts ...ParseOpt) (value.Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return value.Value{}, truncated(int64(len(b)))
	}
	v, err := decodeFromSource(eng.NewBytes(b), opt)
	if err != nil {
		return value.Value{}, err
	}
	return checkSyntax(v, b)
}

// ParseReader streams tokens from r. When MaxBytes is set, at most MaxBytes+1
// bytes are read before the input is rejected.
func ParseReader(r io.Reader, opts ...ParseOpt) (value.Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	var buf bytes.Buffer
	v, err := decodeFromSource(eng.NewReader(io.TeeReader(r, &buf)), opt)
	if err != nil {
		return value.Value{}, err
	}
	return checkSyntax(v, buf.Bytes())
}

// checkSyntax rejects documents the token stream accepts but the grammar
// does not. The token reader skips separators without checking them.
func checkSyntax(v value.Value, b []byte) (value.Value, error) {
	if !j.Valid(b) {
		return value.Value{}, newParseError(CodeParseError, "", int64(len(b)), ErrSyntax)
	}
	return v, nil
}

// ParseYAML reads a YAML document. Only MaxBytes applies.
func ParseYAML(b []byte, opts ...ParseOpt) (value.Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return value.Value{}, truncated(int64(len(b)))
	}
	v, err := value.FromYAML(b)
	if err != nil {
		return value.Value{}, newParseError(CodeParseError, "", -1, err)
	}
	return v, nil
}

// ParseAuto reads JSON, or YAML when the input is not a JSON document.
// Input that starts like a JSON object, array or string is always read as
// JSON; anything else falls back to YAML when JSON decoding fails with a
// syntax error.
func ParseAuto(b []byte, opts ...ParseOpt) (value.Value, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || isJSONOpener(trimmed[0]) {
		return ParseBytes(b, opts...)
	}
	v, err := ParseBytes(b, opts...)
	if err == nil {
		return v, nil
	}
	var pe *ParseError
	if errors.As(err, &pe) && pe.Code != CodeParseError {
		return value.Value{}, err
	}
	return ParseYAML(b, opts...)
}

func isJSONOpener(c byte) bool { return c == '{' || c == '[' || c == '"' }

func decodeFromSource(src eng.TokenSource, opt ParseOpt) (value.Value, error) {
	var sink func(eng.SimpleIssue)
	if opt.OnWarning != nil {
		sink = func(si eng.SimpleIssue) {
			opt.OnWarning(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	v, err := value.Decode(enforced)
	if err != nil {
		if off := enforced.Location(); opt.MaxBytes > 0 && off > opt.MaxBytes {
			return value.Value{}, truncated(off)
		}
		return value.Value{}, toParseError(err, enforced.Location())
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toParseError(err error, off int64) *ParseError {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		pe := newParseError(ie.Code, ie.Path, off, err)
		if ie.Code == CodeDuplicateKey {
			pe.Message = ie.Message
		} else {
			pe.Message = i18n.T(ie.Code, map[string]string{"reason": ie.Message})
		}
		return pe
	}
	return newParseError(CodeParseError, "", off, err)
}

func newParseError(code, path string, off int64, err error) *ParseError {
	return &ParseError{
		Code:    code,
		Path:    path,
		Offset:  off,
		Message: i18n.T(code, map[string]string{"reason": err.Error()}),
		Err:     err,
	}
}

func truncated(n int64) *ParseError {
	err := fmt.Errorf("max bytes exceeded (%d bytes)", n)
	return newParseError(CodeTruncated, "", n, err)
}
