package notificationerrors

import (
	"net/http"

	"go-intranet/internal/shared/apperror"
)

var ErrNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"Notificación no encontrada.",
	http.StatusNotFound,
)
