package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados da API.
// O Handler usa Category/HTTPStatus/Message para montar a resposta; Error()
// fica para os logs e pode conter a causa interna.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Message() string // Mensagem segura para o cliente
	Unwrap() error
}

// ValidationCode enumera as falhas de validação de entrada.
type ValidationCode string

const (
	CodeInvalidPayload   ValidationCode = "INVALID_PAYLOAD"
	CodeInvalidID        ValidationCode = "INVALID_ID"
	CodeNameRequired     ValidationCode = "NAME_REQUIRED"
	CodeInvalidQuantity  ValidationCode = "INVALID_QUANTITY"
	CodeInvalidThreshold ValidationCode = "INVALID_THRESHOLD"
	CodeInvalidVehicles  ValidationCode = "INVALID_VEHICLES"
)

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada (400).
type ValidationError struct {
	Code    ValidationCode
	Msg     string
	Details []string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("validation error (%s): %s", e.Code, e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Message() string  { return e.Msg }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(code ValidationCode, msg string, details ...string) *ValidationError {
	return &ValidationError{Code: code, Msg: msg, Details: details}
}

// NotFoundError representa a ausência de um recurso solicitado (404).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("not found: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Message() string  { return e.Msg }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{Msg: msg}
}

// --- Erros de Infraestrutura ---

// UnavailableError indica que o banco está fora do ar (503).
type UnavailableError struct {
	Msg string
}

func (e *UnavailableError) Error() string    { return fmt.Sprintf("unavailable: %s", e.Msg) }
func (e *UnavailableError) Category() string { return "SERVICE_UNAVAILABLE" }
func (e *UnavailableError) HTTPStatus() int  { return http.StatusServiceUnavailable }
func (e *UnavailableError) Message() string  { return e.Msg }
func (e *UnavailableError) Unwrap() error    { return nil }

// NewUnavailableError cria um erro de indisponibilidade.
func NewUnavailableError(msg string) *UnavailableError {
	return &UnavailableError{Msg: msg}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório (500).
// Msg é exibida ao cliente; Err (driver, rede) só aparece nos logs.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("internal error: %s", e.Msg)
	}
	return fmt.Sprintf("internal error: %s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Message() string  { return e.Msg }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor.
func NewInternalError(msg string, err error) *InternalError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para InternalError vindo do driver do banco.
func NewDBError(msg string, err error) *InternalError {
	return NewInternalError(msg, err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus traduz um erro em status HTTP, categoria e mensagem pública.
// Erros não tipados viram 500 genérico: a causa nunca vaza para o cliente.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Message()
	}
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Internal Server Error"
}
