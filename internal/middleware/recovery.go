package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler is a function that handles panics and writes an error response
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery creates panic recovery middleware with a custom panic handler
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					attrs := append(requestAttrs(r),
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
					)
					logger.Error("panic recovered", attrs...)

					handler(w, r, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
