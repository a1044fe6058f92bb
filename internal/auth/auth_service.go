package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	autherrors "go-intranet/internal/auth/errors"
	"go-intranet/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OTPSender delivers a one-time code. Delivery failure is not a login failure.
type OTPSender interface {
	SendOTP(to, code string) error
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	VerifyOTP(ctx context.Context, email, otp string) (VerifyOTPResponse, error)
	GetMe(ctx context.Context, userID string) (user.PublicUser, error)
}

type service struct {
	repo      user.Repository
	sender    OTPSender
	jwtSecret []byte
	jwtExpiry time.Duration
	logger    *zap.Logger
}

func NewService(repo user.Repository, sender OTPSender, jwtSecret string, jwtExpiry time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		sender:    sender,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		logger:    l,
	}
}

// Login checks the password and stores a fresh six-digit code on the account.
// Any previously pending code is overwritten. The role is returned up front so
// the frontend can branch before OTP confirmation.
func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("login unknown email", zap.String("email", email))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Debug("login wrong password", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	otp, err := generateOTP()
	if err != nil {
		return LoginResponse{}, err
	}

	if err := s.repo.SetOTP(ctx, u.ID, otp); err != nil {
		s.logger.Error("login otp persist failed", zap.Error(err))
		return LoginResponse{}, err
	}

	delivered := true
	if err := s.sender.SendOTP(u.Email, otp); err != nil {
		delivered = false
		s.logger.Warn("otp delivery failed, code available in log",
			zap.String("email", u.Email),
			zap.Error(err),
		)
	}

	s.logger.Info("login otp issued",
		zap.String("user_id", u.ID.String()),
		zap.Bool("delivered", delivered),
	)

	return LoginResponse{
		Message:      "OTP generado. Revise su correo o la terminal del servidor.",
		Role:         u.Role,
		OTPDelivered: delivered,
	}, nil
}

// VerifyOTP consumes the pending code: a match clears it, so the same code can
// never verify twice.
func (s *service) VerifyOTP(ctx context.Context, email, otp string) (VerifyOTPResponse, error) {
	u, err := s.repo.GetByEmailAndOTP(ctx, email, otp)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("verify otp mismatch", zap.String("email", email))
			return VerifyOTPResponse{}, autherrors.ErrInvalidOTP
		}
		s.logger.Error("verify otp lookup failed", zap.Error(err))
		return VerifyOTPResponse{}, err
	}

	if err := s.repo.ClearOTP(ctx, u.ID); err != nil {
		s.logger.Error("verify otp clear failed", zap.Error(err))
		return VerifyOTPResponse{}, err
	}

	token, err := s.generateToken(u)
	if err != nil {
		s.logger.Error("verify otp token mint failed", zap.Error(err))
		return VerifyOTPResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("verify otp success", zap.String("user_id", u.ID.String()))

	return VerifyOTPResponse{
		Message: "Verificación exitosa.",
		Token:   token,
		User:    user.ToPublic(u),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.PublicUser, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.PublicUser{}, autherrors.ErrUserNotFound
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return user.PublicUser{}, autherrors.ErrUserNotFound
	}
	return user.ToPublic(u), nil
}

func (s *service) generateToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// generateOTP draws a uniform six-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
