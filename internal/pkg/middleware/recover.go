package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"farminventory/internal/domain"
	"farminventory/internal/pkg/logger"
	"farminventory/internal/pkg/response"
)

// Recover é a fronteira de erro por requisição: um panic no handler vira 500
// genérico e o stack fica só no log.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
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
				log.Error("Panic capturado no handler.", fmt.Errorf("%v", rec), map[string]interface{}{
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": RequestIDFromContext(r.Context()),
					"stack":      string(debug.Stack()),
				})
				if err := response.JSON(w, http.StatusInternalServerError, domain.ErrorResponse{Error: "Internal Server Error"}); err != nil {
					log.Error("Falha ao codificar JSON de resposta", err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
