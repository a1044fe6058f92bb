package tools

import (
	"context"
	"mime/multipart"
	"net/http"

	"go-intranet/internal/bootstrap"
	"go-intranet/internal/shared/apperror"
	"go-intranet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PhotoSaver stores an uploaded evidence photo and returns its web path.
type PhotoSaver interface {
	SaveToolPhoto(c *gin.Context, fh *multipart.FileHeader) (string, error)
}

type Handler struct {
	service Service
	photos  PhotoSaver
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

func NewHandler(service Service, photos PhotoSaver, audit bootstrap.AuditLogger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("tools.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tools.handler")
	}
	return &Handler{service: service, photos: photos, audit: audit, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("tools call failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// RegisterAction accepts the multipart form. The photo is optional; when one
// arrives it is stored before the row insert, so a failed insert can orphan
// the file.
func (h *Handler) RegisterAction(c *gin.Context) {
	in := RegisterActionInput{
		ToolID:          c.PostForm("toolId"),
		TechnicianEmail: c.PostForm("technicianEmail"),
		TechnicianName:  c.PostForm("technicianName"),
		Action:          c.PostForm("action"),
		Condition:       c.PostForm("condition"),
	}

	if fh, err := c.FormFile("photo"); err == nil {
		url, saveErr := h.photos.SaveToolPhoto(c, fh)
		if saveErr != nil {
			h.writeServiceError(c, saveErr)
			return
		}
		in.PhotoURL = url
	}

	resp, err := h.service.RegisterAction(c.Request.Context(), in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) ListHistory(c *gin.Context) {
	resp, err := h.service.ListHistory(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"history": resp})
}

func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tools": resp})
}

// Delete hard-removes a ledger row. The audit log is the only trace left.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.audit.Log(context.Background(), bootstrap.AuditLog{
		Action:  "TOOL_MOVEMENT_DELETED",
		Actor:   c.GetString("email"),
		Message: "Tool ledger row hard-deleted",
		Meta: map[string]any{
			"movement_id": id,
		},
	})

	response.Success(c, http.StatusOK, resp)
}
