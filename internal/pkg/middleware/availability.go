package middleware

import (
	"net/http"

	"farminventory/internal/domain"
	"farminventory/internal/pkg/logger"
	"farminventory/internal/pkg/response"
)

// ConnectivityChecker é o que o gate precisa saber do rastreador de conexão.
type ConnectivityChecker interface {
	IsConnected() bool
}

// Availability bloqueia as rotas de dados enquanto o banco não estiver conectado,
// devolvendo 503 imediatamente em vez de deixar a requisição pendurada no driver.
func Availability(checker ConnectivityChecker, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.IsConnected() {
				log.Debug("Rota de dados bloqueada: banco desconectado.", map[string]interface{}{
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": RequestIDFromContext(r.Context()),
				})
				if err := response.JSON(w, http.StatusServiceUnavailable, domain.UnavailableResponse{
					Error:    "Database unavailable",
					Database: "disconnected",
				}); err != nil {
					log.Error("Falha ao codificar JSON de resposta", err)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
