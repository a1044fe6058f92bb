package mailer

import (
	"errors"
	"fmt"
	"net/smtp"

	"go-intranet/internal/config"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

// ErrDeliveryDisabled is returned when no SMTP host is configured. The code is
// still usable; it just has to be read from the operational log.
var ErrDeliveryDisabled = errors.New("mailer: smtp delivery disabled")

// Mailer sends one-time codes over SMTP. With no SMTP host configured it logs
// the code instead, which is how the intranet runs in development.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	logger   *zap.Logger
}

func New(cfg *config.Config, logger ...*zap.Logger) *Mailer {
	l := zap.L().Named("mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer")
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		logger:   l,
	}
}

// SendOTP delivers the one-time code to the account's email address.
func (m *Mailer) SendOTP(to, code string) error {
	if m.host == "" {
		m.logger.Info("smtp disabled, otp printed to log",
			zap.String("email", to),
			zap.String("otp", code),
		)
		return ErrDeliveryDisabled
	}

	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = "Código de verificación - Intranet"
	e.Text = []byte(fmt.Sprintf("Su código de verificación es: %s", code))

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send otp: %w", err)
	}
	return nil
}
