package apperror

import "net/http"

// User-facing messages are in Spanish, matching the audience of the intranet.
var (
	ErrNotFound = New(
		CodeNotFound,
		"Recurso no encontrado.",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"No tiene permisos para acceder a este recurso.",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Error interno del servidor.",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Se requiere autenticación.",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Los datos enviados no son válidos.",
		http.StatusBadRequest,
	)
)
