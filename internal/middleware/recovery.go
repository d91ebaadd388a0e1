package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/developers-api/internal/http/respond"
)

// Recovery turns a handler panic into a 500 error envelope.
func Recovery(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.WithFields(logrus.Fields{
					"request_id": RequestIDFromContext(r.Context()),
					"panic":      err,
					"stack":      string(debug.Stack()),
				}).Error("panic")
				respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
