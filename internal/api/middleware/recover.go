// internal/api/middleware/recover.go
package middleware

import (
	"fmt"
	"net/http"

	"github.com/newthinker/treasury/internal/api/response"
	"github.com/newthinker/treasury/internal/core"
	"go.uber.org/zap"
)

// Recover returns middleware that turns a handler panic into a 500 with
// a render error body, and logs it.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("handler panic",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				response.Error(w, http.StatusInternalServerError,
					core.WrapError(core.ErrRender, fmt.Errorf("%v", rec)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
