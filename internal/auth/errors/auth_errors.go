package autherrors

import (
	"net/http"

	"go-intranet/internal/shared/apperror"
)

var (
	// The same message covers unknown email and wrong password so the login
	// form cannot be used to enumerate accounts.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeInvalidInput,
		"Usuario o contraseña incorrectos.",
		http.StatusBadRequest,
	)
	ErrInvalidOTP = apperror.New(
		apperror.CodeUnauthorized,
		"OTP inválido o expirado.",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Error interno del servidor.",
		http.StatusInternalServerError,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuario no encontrado.",
		http.StatusNotFound,
	)
)
