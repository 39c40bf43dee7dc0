package jsonadapt

import (
	"fmt"
	"strings"

	eng "github.com/reoring/jsonadapt/internal/engine"
	"github.com/reoring/jsonadapt/i18n"
)

// PathRef builds dotted paths (a.b[2]) in a chain-safe way and creates Issues.
// The zero PathRef is the root.
type PathRef struct{ s string }

// Root returns the root path.
func Root() PathRef { return PathRef{} }

// Field descends into an object member.
func (p PathRef) Field(name string) PathRef { return PathRef{s: eng.JoinKey(p.s, name)} }

// Index descends into an array element.
func (p PathRef) Index(i int) PathRef { return PathRef{s: eng.JoinIndex(p.s, i)} }

// Join appends an already rendered relative path.
func (p PathRef) Join(rel string) PathRef {
	switch {
	case rel == "":
		return p
	case p.s == "":
		return PathRef{s: rel}
	case strings.HasPrefix(rel, "["):
		return PathRef{s: p.s + rel}
	default:
		return PathRef{s: p.s + "." + rel}
	}
}

func (p PathRef) String() string { return p.s }

// Issue creates an Issue at p whose message comes from the i18n catalogue,
// with params rendered into the message template.
func (p PathRef) Issue(code string, params map[string]any) Issue {
	data := make(map[string]string, len(params))
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issue{Path: p.s, Code: code, Message: i18n.T(code, data), Params: params}
}

// Invalid wraps an adapter error as an invalid_value issue at p.
func (p PathRef) Invalid(err error) Issue {
	it := p.Issue(CodeInvalidValue, map[string]any{"reason": err.Error()})
	it.Cause = err
	return it
}
