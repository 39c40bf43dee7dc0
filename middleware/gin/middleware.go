package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	jsonadapt "github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/middleware"
	"github.com/reoring/jsonadapt/value"
)

// ValidateJSON parses the request body with opt (DefaultParseOpt when zero), validates it
// against the schema of a and stores the decoded T in the request context. Failures abort
// with the status and payload of middleware.DecodeRequest.
func ValidateJSON[T any](a jsonadapt.Adapter[T], opt jsonadapt.ParseOpt) gin.HandlerFunc {
	opt = middleware.OrDefault(opt)
	return func(c *gin.Context) {
		v, raw, f := middleware.DecodeRequest(c.Request.Body, a, opt)
		if f != nil {
			abort(c, f.Status, f.Payload)
			return
		}
		ctx := middleware.ContextWithDecoded(c.Request.Context(), v)
		ctx = middleware.ContextWithParams(ctx, raw)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetDecoded fetches the decoded T from gin.Context.
func GetDecoded[T any](c *gin.Context) (T, bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}

// Render writes v as the JSON response.
func Render(c *gin.Context, status int, v value.Value) {
	b, err := value.Encode(v)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Data(status, "application/json", b)
}

func abort(c *gin.Context, status int, payload value.Value) {
	Render(c, status, payload)
	c.Abort()
}
