package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"posstock/internal/reconcile"
)

// AppError é a interface central para todos os erros customizados do serviço.
// Ela permite que o Handler acesse a Categoria e o status HTTP sugerido.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// RejectionError carrega a rejeição tipada do motor de reconciliação.
// O código vai no corpo da resposta para a UI exibir a mensagem do campo.
type RejectionError struct {
	Reason reconcile.Rejection
}

func (e *RejectionError) Error() string    { return fmt.Sprintf("Ajuste rejeitado: %s", e.Reason.Message()) }
func (e *RejectionError) Category() string { return string(e.Reason) }
func (e *RejectionError) HTTPStatus() int  { return http.StatusUnprocessableEntity }
func (e *RejectionError) Unwrap() error    { return e.Reason }

// NewRejectionError embrulha uma rejeição do motor.
func NewRejectionError(reason reconcile.Rejection) AppError {
	return &RejectionError{Reason: reason}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de estado (OCC, recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro 401.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem a permissão necessária.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro 403.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Erros de Infraestrutura ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para um InternalError vindo do banco de dados.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// MapToHTTPStatus traduz um erro para status HTTP, categoria e mensagem.
// Percorre a cadeia de wrapping, então erros embrulhados com %w também são reconhecidos.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	var rejection reconcile.Rejection
	if stderrors.As(err, &rejection) {
		rejErr := NewRejectionError(rejection)
		return rejErr.HTTPStatus(), rejErr.Category(), rejErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
