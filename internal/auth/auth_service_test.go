package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-intranet/internal/auth"
	autherrors "go-intranet/internal/auth/errors"
	"go-intranet/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserRepo keeps one account in memory so OTP set/clear round-trips work.
type fakeUserRepo struct {
	account *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.account = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.account == nil || f.account.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return f.account, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.account == nil || f.account.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.account, nil
}

func (f *fakeUserRepo) GetByEmailAndOTP(ctx context.Context, email, otp string) (*user.User, error) {
	if f.account == nil || f.account.Email != email ||
		f.account.OTP == nil || *f.account.OTP != otp {
		return nil, gorm.ErrRecordNotFound
	}
	return f.account, nil
}

func (f *fakeUserRepo) SetOTP(ctx context.Context, id uuid.UUID, otp string) error {
	f.account.OTP = &otp
	return nil
}

func (f *fakeUserRepo) ClearOTP(ctx context.Context, id uuid.UUID) error {
	f.account.OTP = nil
	return nil
}

type fakeSender struct {
	sendErr error
	sentTo  string
}

func (f *fakeSender) SendOTP(to, code string) error {
	f.sentTo = to
	return f.sendErr
}

func newAccount(t *testing.T, password string) *user.User {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Username: "Laura Pérez",
		Email:    "laura@optimacom.com",
		Password: string(pw),
		Role:     user.RoleManager,
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets otp and reports delivery", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		sender := &fakeSender{}
		svc := auth.NewService(repo, sender, "test-secret", time.Hour, zap.NewNop())

		resp, err := svc.Login(ctx, "laura@optimacom.com", "secreto")

		assert.NoError(t, err)
		assert.Equal(t, user.RoleManager, resp.Role)
		assert.True(t, resp.OTPDelivered)
		assert.NotNil(t, repo.account.OTP)
		assert.Len(t, *repo.account.OTP, 6)
		assert.Equal(t, "laura@optimacom.com", sender.sentTo)
	})

	t.Run("delivery failure is not a login failure", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		sender := &fakeSender{sendErr: errors.New("smtp down")}
		svc := auth.NewService(repo, sender, "test-secret", time.Hour, zap.NewNop())

		resp, err := svc.Login(ctx, "laura@optimacom.com", "secreto")

		assert.NoError(t, err)
		assert.False(t, resp.OTPDelivered)
		assert.NotNil(t, repo.account.OTP)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		svc := auth.NewService(repo, &fakeSender{}, "test-secret", time.Hour, zap.NewNop())

		_, err := svc.Login(ctx, "laura@optimacom.com", "otra")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		assert.Nil(t, repo.account.OTP)
	})

	t.Run("unknown email uses the same error", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		svc := auth.NewService(repo, &fakeSender{}, "test-secret", time.Hour, zap.NewNop())

		_, err := svc.Login(ctx, "nadie@optimacom.com", "secreto")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("success clears the code and mints a token", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		svc := auth.NewService(repo, &fakeSender{}, "test-secret", time.Hour, zap.NewNop())

		_, err := svc.Login(ctx, "laura@optimacom.com", "secreto")
		assert.NoError(t, err)
		code := *repo.account.OTP

		resp, err := svc.VerifyOTP(ctx, "laura@optimacom.com", code)

		assert.NoError(t, err)
		assert.Equal(t, repo.account.ID.String(), resp.User.ID)
		assert.Equal(t, user.RoleManager, resp.User.Role)
		assert.Nil(t, repo.account.OTP)

		token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "laura@optimacom.com", claims["email"])
		assert.Equal(t, user.RoleManager, claims["role"])
	})

	t.Run("a consumed code never verifies twice", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		svc := auth.NewService(repo, &fakeSender{}, "test-secret", time.Hour, zap.NewNop())

		_, err := svc.Login(ctx, "laura@optimacom.com", "secreto")
		assert.NoError(t, err)
		code := *repo.account.OTP

		_, err = svc.VerifyOTP(ctx, "laura@optimacom.com", code)
		assert.NoError(t, err)

		_, err = svc.VerifyOTP(ctx, "laura@optimacom.com", code)
		assert.ErrorIs(t, err, autherrors.ErrInvalidOTP)
	})

	t.Run("mismatched code", func(t *testing.T) {
		repo := &fakeUserRepo{account: newAccount(t, "secreto")}
		svc := auth.NewService(repo, &fakeSender{}, "test-secret", time.Hour, zap.NewNop())

		_, err := svc.VerifyOTP(ctx, "laura@optimacom.com", "000000")

		assert.ErrorIs(t, err, autherrors.ErrInvalidOTP)
	})
}
