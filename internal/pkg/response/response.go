package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"farminventory/internal/domain"
	apperror "farminventory/internal/errors"
	"farminventory/internal/pkg/logger"
)

// JSON escreve o corpo com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// Error traduz o erro (via MapToHTTPStatus) numa resposta {"error": ...}.
// 5xx são logados com a causa; 4xx só em debug. A causa nunca vai para o cliente.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	fields := map[string]interface{}{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   status,
		"category": category,
	}
	body := domain.ErrorResponse{Error: message}
	var validation *apperror.ValidationError
	if errors.As(err, &validation) {
		fields["code"] = string(validation.Code)
		body.Details = validation.Details
	}

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err, fields)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d", status), fields)
	}

	if encErr := JSON(w, status, body); encErr != nil {
		log.Error("Falha ao codificar JSON de resposta", encErr)
	}
}
