package toolserrors

import (
	"net/http"

	"go-intranet/internal/shared/apperror"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeInvalidInput,
		"Faltan datos obligatorios: herramienta, técnico y acción.",
		http.StatusBadRequest,
	)
	ErrMovementNotFound = apperror.New(
		apperror.CodeNotFound,
		"Registro de herramienta no encontrado.",
		http.StatusNotFound,
	)
)
