package accounts

import (
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// Config holds every runtime setting the service needs. Values come from
// the environment; sensible development defaults are applied for all but
// the JWT secret.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3000"`
	DBDSN    string `env:"DB_DSN" envDefault:"file::memory:?cache=shared"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTIssuer        string        `env:"JWT_ISSUER" envDefault:"go-accounts"`
	AccessTokenTTL   time.Duration `env:"JWT_ACCESS_TTL" envDefault:"30m"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`
	ResetPasswordTTL time.Duration `env:"JWT_RESET_PASSWORD_TTL" envDefault:"10m"`
	VerifyEmailTTL   time.Duration `env:"JWT_VERIFY_EMAIL_TTL" envDefault:"10m"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"no-reply@example.com"`

	// AppURL is the public base URL embedded in emailed links.
	AppURL string `env:"APP_URL" envDefault:"http://localhost:3000"`

	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates/emails"`
}

// LoadConfigFromEnv loads the service configuration from environment
// variables and validates it.
func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid configuration")
	}

	return cfg, nil
}

// Validate enforces the settings a running service cannot do without.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(32, 0)),
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.DBDSN, validation.Required),
		validation.Field(&c.EmailFrom, is.Email),
		validation.Field(&c.AccessTokenTTL, validation.Required),
		validation.Field(&c.RefreshTokenTTL, validation.Required),
		validation.Field(&c.ResetPasswordTTL, validation.Required),
		validation.Field(&c.VerifyEmailTTL, validation.Required),
	)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetSigningKey() string { return c.JWTSecret }

func (c *Config) GetIssuer() string { return c.JWTIssuer }

func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

func (c *Config) GetResetPasswordTokenTTL() time.Duration { return c.ResetPasswordTTL }

func (c *Config) GetVerifyEmailTokenTTL() time.Duration { return c.VerifyEmailTTL }
