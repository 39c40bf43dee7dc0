package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	jsonadapt "github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/value"
)

// ctxKeyDecoded is a typed context key for storing a decoded T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyDecoded[T any] struct{}

// ctxKeyParams holds the raw request document.
type ctxKeyParams struct{}

// ContextWithDecoded attaches a decoded T to the context.
func ContextWithDecoded[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, v)
}

// DecodedFromContext retrieves a decoded T from context.
func DecodedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(T)
	return v, ok
}

// ContextWithParams attaches the parsed request document to the context.
func ContextWithParams(ctx context.Context, v value.Value) context.Context {
	return context.WithValue(ctx, ctxKeyParams{}, v)
}

// ParamsFromContext returns the parsed request document, if any.
func ParamsFromContext(ctx context.Context) (value.Value, bool) {
	v, ok := ctx.Value(ctxKeyParams{}).(value.Value)
	return v, ok
}

// Config configures the HTTP bindings. The zero value is usable; NewConfig
// fills in the recommended defaults.
type Config struct {
	// ParseOpt applies to every request body.
	ParseOpt jsonadapt.ParseOpt
	// Logger receives one event per request. Defaults to zerolog.Nop().
	Logger *zerolog.Logger
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Nesting and body size are bounded
func DefaultParseOpt() jsonadapt.ParseOpt {
	return jsonadapt.ParseOpt{
		OnDuplicateKey: jsonadapt.Error,
		MaxDepth:       64,
		MaxBytes:       1 << 20,
	}
}

// OrDefault returns DefaultParseOpt when opt is the zero value.
func OrDefault(opt jsonadapt.ParseOpt) jsonadapt.ParseOpt {
	if opt.OnDuplicateKey == jsonadapt.Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 && opt.OnWarning == nil {
		return DefaultParseOpt()
	}
	return opt
}

// NewConfig returns a Config with DefaultParseOpt and a no-op logger.
func NewConfig() Config {
	nop := zerolog.Nop()
	return Config{ParseOpt: DefaultParseOpt(), Logger: &nop}
}

func (c Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Logger
}

// Error messages used in payloads.
const (
	MsgInvalidParams = "invalid params"
	MsgBadRequest    = "bad request"
	MsgTooLarge      = "request too large"
)

// ErrorPayload shapes an error message and its issues for JSON responses:
// {"error": msg, "issues": [{"path", "code", "message"}]}. issues may be
// empty.
func ErrorPayload(msg string, issues jsonadapt.Issues) value.Value {
	o := value.NewObject()
	o.Set("error", value.String(msg))
	o.Set("issues", issues.ToValue())
	return value.ObjectOf(o)
}

// IssuesPayload is the response body of a validation-only request.
func IssuesPayload(issues jsonadapt.Issues) value.Value {
	o := value.NewObject()
	o.Set("issues", issues.ToValue())
	return value.ObjectOf(o)
}

// Failure is an HTTP-shaped decode or validation failure.
type Failure struct {
	Status  int
	Payload value.Value
	Err     error
}

func (f *Failure) Error() string { return f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

// ReadParams parses a request body with opt. Oversized bodies fail with 413,
// other parse errors with 400.
func ReadParams(body io.Reader, opt jsonadapt.ParseOpt) (value.Value, *Failure) {
	v, err := jsonadapt.ParseReader(body, opt)
	if err == nil {
		return v, nil
	}
	status, msg := http.StatusBadRequest, MsgBadRequest
	var pe *jsonadapt.ParseError
	if errors.As(err, &pe) && pe.Code == jsonadapt.CodeTruncated {
		status, msg = http.StatusRequestEntityTooLarge, MsgTooLarge
	}
	iss, _ := jsonadapt.AsIssues(err)
	return value.Value{}, &Failure{Status: status, Payload: ErrorPayload(msg, iss), Err: err}
}

// DecodeParams validates v against the schema of T and deserializes it.
// Schema violations fail with 422, deserialization failures with 400.
func DecodeParams[T any](a jsonadapt.Adapter[T], v value.Value) (T, *Failure) {
	var out T
	if iss := jsonadapt.Validate(v, a.Schema(nil)); len(iss) > 0 {
		return out, &Failure{Status: http.StatusUnprocessableEntity, Payload: ErrorPayload(MsgInvalidParams, iss), Err: iss}
	}
	if err := a.Deserialize(v, &out); err != nil {
		iss, _ := jsonadapt.AsIssues(err)
		return out, &Failure{Status: http.StatusBadRequest, Payload: ErrorPayload(MsgBadRequest, iss), Err: err}
	}
	return out, nil
}

// DecodeRequest is ReadParams followed by DecodeParams.
func DecodeRequest[T any](body io.Reader, a jsonadapt.Adapter[T], opt jsonadapt.ParseOpt) (T, value.Value, *Failure) {
	v, f := ReadParams(body, opt)
	if f != nil {
		var zero T
		return zero, value.Value{}, f
	}
	out, f := DecodeParams(a, v)
	return out, v, f
}

// WriteValue writes v as a JSON response.
func WriteValue(w http.ResponseWriter, status int, v value.Value) error {
	b, err := value.Encode(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
