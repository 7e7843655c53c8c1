package accounts

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"net/url"
	"time"

	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-errors"
)

// Mailer delivers the transactional emails the auth flows produce.
type Mailer interface {
	SendResetPasswordEmail(ctx context.Context, user *User, tokenValue string) error
	SendVerificationEmail(ctx context.Context, user *User, tokenValue string) error
}

// EmailRenderer renders named email templates to HTML.
type EmailRenderer struct {
	engine *django.Engine
}

// NewEmailRenderer loads the templates under dir. Files use the .html
// extension; the template name is the file name without it.
func NewEmailRenderer(dir string) (*EmailRenderer, error) {
	engine := django.New(dir, ".html")
	if err := engine.Load(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load email templates")
	}
	return &EmailRenderer{engine: engine}, nil
}

// Render renders the named template with the given bindings.
func (r *EmailRenderer) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Render(&buf, name, data); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to render email template").
			WithMetadata(map[string]any{"template": name})
	}
	return buf.String(), nil
}

// SMTPMailer sends templated emails through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	appURL   string
	renderer *EmailRenderer
	logger   Logger
}

// NewSMTPMailer creates a new SMTPMailer instance
func NewSMTPMailer(cfg *Config, renderer *EmailRenderer, logger Logger) *SMTPMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
		appURL:   cfg.AppURL,
		renderer: renderer,
		logger:   logger,
	}
}

// SendResetPasswordEmail emails the user a link embedding the reset token.
func (m *SMTPMailer) SendResetPasswordEmail(ctx context.Context, user *User, tokenValue string) error {
	body, err := m.renderer.Render("reset_password", map[string]any{
		"name": user.Name,
		"link": m.link("/reset-password", tokenValue),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, user.Email, "Reset password", body)
}

// SendVerificationEmail emails the user a link embedding the verification token.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, user *User, tokenValue string) error {
	body, err := m.renderer.Render("verify_email", map[string]any{
		"name": user.Name,
		"link": m.link("/verify-email", tokenValue),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, user.Email, "Email verification", body)
}

func (m *SMTPMailer) link(path, tokenValue string) string {
	return m.appURL + path + "?token=" + url.QueryEscape(tokenValue)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "context cancelled before sending email")
	}

	var message bytes.Buffer
	fmt.Fprintf(&message, "From: %s\r\n", m.from)
	fmt.Fprintf(&message, "To: %s\r\n", to)
	fmt.Fprintf(&message, "Subject: %s\r\n", subject)
	fmt.Fprintf(&message, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, message.Bytes()); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to send email").
			WithMetadata(map[string]any{"to": to, "subject": subject})
	}

	m.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

// LogMailer writes the would-be emails to the logger. Used in development
// where no SMTP relay is configured.
type LogMailer struct {
	appURL string
	logger Logger
}

// NewLogMailer creates a new LogMailer instance
func NewLogMailer(appURL string, logger Logger) *LogMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &LogMailer{appURL: appURL, logger: logger}
}

func (m *LogMailer) SendResetPasswordEmail(_ context.Context, user *User, tokenValue string) error {
	m.logger.Info("reset password email",
		"to", user.Email,
		"link", m.appURL+"/reset-password?token="+url.QueryEscape(tokenValue),
	)
	return nil
}

func (m *LogMailer) SendVerificationEmail(_ context.Context, user *User, tokenValue string) error {
	m.logger.Info("verification email",
		"to", user.Email,
		"link", m.appURL+"/verify-email?token="+url.QueryEscape(tokenValue),
	)
	return nil
}
