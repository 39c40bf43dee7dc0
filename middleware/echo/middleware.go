package echomw

import (
	"github.com/labstack/echo/v4"

	jsonadapt "github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/middleware"
	"github.com/reoring/jsonadapt/value"
)

// ValidateJSON parses the request body with opt (DefaultParseOpt when zero), validates it
// against the schema of a and stores the decoded T in the request context, or responds with
// the status and payload of middleware.DecodeRequest.
func ValidateJSON[T any](a jsonadapt.Adapter[T], opt jsonadapt.ParseOpt) echo.MiddlewareFunc {
	opt = middleware.OrDefault(opt)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, raw, f := middleware.DecodeRequest(c.Request().Body, a, opt)
			if f != nil {
				return Render(c, f.Status, f.Payload)
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), v)
			ctx = middleware.ContextWithParams(ctx, raw)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded T from echo.Context.
func GetDecoded[T any](c echo.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}

// Render writes v as the JSON response.
func Render(c echo.Context, status int, v value.Value) error {
	b, err := value.Encode(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}
