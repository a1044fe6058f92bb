package requesterrors

import (
	"net/http"

	"go-intranet/internal/shared/apperror"
)

var (
	ErrDataRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Faltan campos obligatorios en la solicitud.",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Estado inválido. Use APROBADA o RECHAZADA.",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Solicitud no encontrada.",
		http.StatusNotFound,
	)
	ErrCertificateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"El certificado médico es obligatorio y debe ser un PDF.",
		http.StatusBadRequest,
	)
)
