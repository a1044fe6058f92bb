package usererrors

import (
	"net/http"

	"go-intranet/internal/shared/apperror"
)

var (
	// Duplicate emails surface as 400, the status the deployed frontend
	// already handles for this route.
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Error al crear empleado: el email ya existe.",
		http.StatusBadRequest,
	)
	ErrRoleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"El rol del nuevo usuario es obligatorio.",
		http.StatusBadRequest,
	)
	ErrAdminRequired = apperror.New(
		apperror.CodeForbidden,
		"Acceso denegado. Se requiere rol de administrador.",
		http.StatusForbidden,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuario no encontrado.",
		http.StatusNotFound,
	)
)
