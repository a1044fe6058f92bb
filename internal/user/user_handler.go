package user

import (
	"context"
	"net/http"

	"go-intranet/internal/bootstrap"
	"go-intranet/internal/shared/apperror"
	"go-intranet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewHandler(service Service, audit bootstrap.AuditLogger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{service: service, audit: audit, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("user request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create provisions a new account. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("role"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.audit.Log(context.Background(), bootstrap.AuditLog{
		Action:  "USER_CREATED",
		Actor:   c.GetString("email"),
		Message: "Admin provisioned a new account",
		Meta: map[string]any{
			"user_id": resp.UserID,
		},
	})

	response.Success(c, http.StatusCreated, resp)
}
