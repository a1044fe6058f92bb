package request

import (
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	requesterrors "go-intranet/internal/request/errors"
	"go-intranet/internal/shared/apperror"
	"go-intranet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentSaver stores an uploaded medical certificate and returns its web
// path.
type DocumentSaver interface {
	SaveMedicalCertificate(c *gin.Context, fh *multipart.FileHeader) (string, error)
}

type Handler struct {
	service Service
	docs    DocumentSaver
	logger  *zap.Logger
}

func NewHandler(service Service, docs DocumentSaver, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("request.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.handler")
	}
	return &Handler{service: service, docs: docs, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("request call failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit accepts the generic JSON submission.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// SubmitMedicalLeave accepts the multipart leave submission. The certificate
// must be a PDF; it is stored before the row is inserted, so a failed insert
// can orphan the file.
func (h *Handler) SubmitMedicalLeave(c *gin.Context) {
	fh, err := c.FormFile("certPdf")
	if err != nil {
		h.writeServiceError(c, requesterrors.ErrCertificateRequired)
		return
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "application/pdf") {
		h.writeServiceError(c, requesterrors.ErrCertificateRequired)
		return
	}

	in := MedicalLeaveInput{
		EmployeeEmail: c.PostForm("employeeEmail"),
		EmployeeName:  c.PostForm("employeeName"),
		ManagerEmail:  c.PostForm("managerEmail"),
		StartDate:     c.PostForm("startDate"),
		EndDate:       c.PostForm("endDate"),
		Diagnosis:     c.PostForm("diagnosis"),
	}
	if in.EmployeeEmail == "" || in.ManagerEmail == "" {
		h.writeServiceError(c, requesterrors.ErrDataRequired)
		return
	}

	docURL, err := h.docs.SaveMedicalCertificate(c, fh)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	in.DocumentURL = docURL

	resp, err := h.service.SubmitMedicalLeave(c.Request.Context(), in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// List applies the AND-ed query filters and wraps the result in {requests}.
func (h *Handler) List(c *gin.Context) {
	f := ListFilters{
		Status:        c.Query("status"),
		ManagerEmail:  c.Query("managerEmail"),
		EmployeeEmail: c.Query("employeeEmail"),
		Type:          c.Query("type"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.From = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// Inclusive upper bound for the whole day.
			f.To = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	resp, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": resp})
}

// Decide records the manager decision.
func (h *Handler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
