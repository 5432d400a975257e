package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport and logging.
//
// CodeValidation covers rejected input (pricing, series requests), CodeUnauthorized
// covers failed credentials or a missing session, CodeForbidden is a role that may
// not reach a screen and CodeDependency is a failed call to the backend API.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata is how a code is answered over HTTP. PublicMessage is shown when the
// error carries no display-ready message of its own.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

// Only the console's own failures are retryable; a rejected request will be
// rejected again.
var metadataByCode = map[Code]Metadata{
	CodeValidation:    {http.StatusBadRequest, false, "Dados inválidos.", true},
	CodeUnauthorized:  {http.StatusUnauthorized, false, "Faça login para continuar.", true},
	CodeForbidden:     {http.StatusForbidden, false, "Acesso negado.", true},
	CodeNotFound:      {http.StatusNotFound, false, "Registro não encontrado.", false},
	CodeConflict:      {http.StatusConflict, false, "Conflito com dados existentes.", true},
	CodeStateConflict: {http.StatusUnprocessableEntity, false, "Operação não permitida no status atual.", true},
	CodeRateLimit:     {http.StatusTooManyRequests, false, "Muitas requisições. Tente novamente em instantes.", false},
	CodeInternal:      {http.StatusInternalServerError, true, "Erro interno. Tente novamente.", false},
	CodeDependency:    {http.StatusBadGateway, true, "Servidor indisponível. Tente novamente.", true},
}

// MetadataFor returns the transport policy of code; unknown codes are internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded error. The message is display-ready unless the code is internal.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap keeps err as the cause so the log chain shows where a failure started.
func Wrap(code Code, err error, message string) *Error {
	e := New(code, message)
	e.cause = err
	return e
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails attaches structured details (field names, redirects, upstream status).
func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the outermost *Error in err's chain.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// CodeOf returns the code of err, or CodeInternal when err is untyped.
func CodeOf(err error) Code {
	return As(err).Code()
}

// Upstream returns the backend response details carried by err.
func Upstream(err error) (UpstreamDetails, bool) {
	details, ok := As(err).Details().(UpstreamDetails)
	return details, ok
}
