package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-intranet/internal/notification"
	requesterrors "go-intranet/internal/request/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier fans a message out to everyone holding a role.
type Notifier interface {
	NotifyRole(ctx context.Context, targetRole, title, message, refType, refID string) error
}

// CertificateWriter generates an employment-certificate PDF and returns its
// web path.
type CertificateWriter interface {
	WriteCertificatePDF(lines []string) (string, error)
}

// Certificate requests notify the HR role on submission.
const hrRole = "rrhh"

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, in SubmitRequest) (SubmitResponse, error)
	SubmitMedicalLeave(ctx context.Context, in MedicalLeaveInput) (SubmitResponse, error)
	List(ctx context.Context, f ListFilters) ([]RequestResponse, error)
	Decide(ctx context.Context, id string, in DecideRequest) (DecisionResponse, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	certs    CertificateWriter
	logger   *zap.Logger
}

func NewService(repo Repository, notifier Notifier, certs CertificateWriter, logger ...*zap.Logger) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		certs:    certs,
		logger:   l,
	}
}

// Submit stores the request with its payload as sent. The HR notification for
// certificate requests is a second insert after the first one lands; if it
// fails the request stays persisted and the failure is only logged.
func (s *service) Submit(ctx context.Context, in SubmitRequest) (SubmitResponse, error) {
	if len(bytes.TrimSpace(in.Data)) == 0 {
		return SubmitResponse{}, requesterrors.ErrDataRequired
	}

	req := &Request{
		ID:            uuid.New(),
		Type:          in.Type,
		EmployeeEmail: in.EmployeeEmail,
		EmployeeName:  in.EmployeeName,
		ManagerEmail:  in.ManagerEmail,
		Payload:       string(in.Data),
		Status:        StatusPendiente,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error("request persist failed",
			zap.String("type", in.Type),
			zap.Error(err),
		)
		return SubmitResponse{}, err
	}

	s.logger.Info("request submitted",
		zap.String("request_id", req.ID.String()),
		zap.String("type", req.Type),
		zap.String("employee", req.EmployeeEmail),
	)

	if req.Type == TypeCertificado {
		s.notifyHR(ctx, req)
	}

	return SubmitResponse{
		RequestID: req.ID.String(),
		Message:   "Solicitud registrada correctamente.",
	}, nil
}

// SubmitMedicalLeave records a leave request whose payload points at the
// already-stored medical certificate.
func (s *service) SubmitMedicalLeave(ctx context.Context, in MedicalLeaveInput) (SubmitResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"startDate":   in.StartDate,
		"endDate":     in.EndDate,
		"diagnosis":   in.Diagnosis,
		"documentUrl": in.DocumentURL,
	})
	if err != nil {
		return SubmitResponse{}, err
	}

	resp, err := s.Submit(ctx, SubmitRequest{
		Type:          TypeIncapacidad,
		EmployeeEmail: in.EmployeeEmail,
		EmployeeName:  in.EmployeeName,
		ManagerEmail:  in.ManagerEmail,
		Data:          payload,
	})
	if err != nil {
		return SubmitResponse{}, err
	}

	resp.DocumentURL = in.DocumentURL
	return resp, nil
}

func (s *service) List(ctx context.Context, f ListFilters) ([]RequestResponse, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("request list failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

// Decide stamps the terminal status, comment and decision time. There is no
// prior-status guard: a second call overwrites the first, last write wins.
// That matches what the deployed clients rely on.
func (s *service) Decide(ctx context.Context, id string, in DecideRequest) (DecisionResponse, error) {
	if !ValidDecision(in.Status) {
		s.logger.Debug("decide invalid status",
			zap.String("request_id", id),
			zap.String("status", in.Status),
		)
		return DecisionResponse{}, requesterrors.ErrInvalidStatus
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DecisionResponse{}, requesterrors.ErrRequestNotFound
		}
		s.logger.Error("decide lookup failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	now := time.Now().UTC()
	comment := in.ManagerComment
	req.Status = in.Status
	req.ManagerComment = &comment
	req.DecidedAt = &now

	if err := s.repo.Update(ctx, req); err != nil {
		s.logger.Error("decide persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return DecisionResponse{}, err
	}

	s.logger.Info("request decided",
		zap.String("request_id", id),
		zap.String("status", in.Status),
	)

	resp := DecisionResponse{RequestResponse: mapToResponse(*req)}
	if req.Type == TypeCertificado && req.Status == StatusAprobada {
		resp.DocumentURL = s.generateCertificate(req)
	}
	return resp, nil
}

// notifyHR is best-effort; a failed insert leaves the request without its
// notification.
func (s *service) notifyHR(ctx context.Context, req *Request) {
	err := s.notifier.NotifyRole(ctx,
		hrRole,
		"Nueva solicitud de certificado",
		fmt.Sprintf("%s solicitó un certificado laboral.", req.EmployeeName),
		notification.RefTypeSolicitud,
		req.ID.String(),
	)
	if err != nil {
		s.logger.Warn("certificate notification failed",
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
	}
}

// generateCertificate writes the employment-certificate PDF. Generation
// failure never fails the decision; the client simply gets no documentUrl.
func (s *service) generateCertificate(req *Request) string {
	name := req.EmployeeName
	if name == "" {
		name = req.EmployeeEmail
	}

	url, err := s.certs.WriteCertificatePDF([]string{
		"CERTIFICADO LABORAL",
		"",
		fmt.Sprintf("Se certifica que %s (%s)", name, req.EmployeeEmail),
		"mantiene un vínculo laboral vigente con la compañía.",
		"",
		fmt.Sprintf("Emitido el %s.", time.Now().Format("2006-01-02")),
	})
	if err != nil {
		s.logger.Warn("certificate pdf generation failed",
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
		return ""
	}
	return url
}
