package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated     Code = "unauthenticated"
	CodeInactiveAccount     Code = "inactive_account"
	CodeForbidden           Code = "forbidden"
	CodeValidation          Code = "validation_failed"
	CodeNotFound            Code = "not_found"
	CodeInvalidCredentials  Code = "invalid_credentials"
	CodeSelfDeleteForbidden Code = "self_delete_forbidden"
	CodePayloadTooLarge     Code = "payload_too_large"
	CodeRateLimited         Code = "rate_limited"
	CodeInternal            Code = "internal"
)

type metadata struct {
	status  int
	message string
}

var registry = map[Code]metadata{
	CodeUnauthenticated:     {http.StatusUnauthorized, "Token não fornecido ou inválido."},
	CodeInactiveAccount:     {http.StatusUnauthorized, "Usuário inativo."},
	CodeForbidden:           {http.StatusForbidden, "Você não tem permissão para esta ação."},
	CodeValidation:          {http.StatusBadRequest, "Dados inválidos."},
	CodeNotFound:            {http.StatusNotFound, "Registro não encontrado."},
	CodeInvalidCredentials:  {http.StatusUnauthorized, "Email ou senha inválidos."},
	CodeSelfDeleteForbidden: {http.StatusBadRequest, "Você não pode excluir sua própria conta."},
	CodePayloadTooLarge:     {http.StatusRequestEntityTooLarge, "Arquivo(s) muito grande(s). Reduza o tamanho das imagens ou envie menos fotos."},
	CodeRateLimited:         {http.StatusTooManyRequests, "Muitas tentativas. Tente novamente mais tarde."},
	CodeInternal:            {http.StatusInternalServerError, "Erro interno do servidor."},
}

// Error is the single error type handlers translate into an HTTP response.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Status() int {
	if md, ok := registry[e.Code]; ok {
		return md.status
	}
	return http.StatusInternalServerError
}

// New builds an error for code. An empty message falls back to the code default.
func New(code Code, message string) *Error {
	if message == "" {
		message = registry[code].message
	}
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, err error, message string) *Error {
	e := New(code, message)
	e.err = err
	return e
}

// Validation reports invalid or missing fields, keyed by JSON field name.
func Validation(message string, fields map[string]string) *Error {
	e := New(CodeValidation, message)
	e.Fields = fields
	return e
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Internal(err error) *Error {
	return Wrap(CodeInternal, err, "")
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
