package accounts

import (
	"errors"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// AuthController exposes the credential flows over HTTP.
type AuthController struct {
	Users  *UserService
	Auther *Auther
	Tokens TokenManager
	Mailer Mailer
	Logger Logger
}

// AuthControllerOption configures an AuthController.
type AuthControllerOption func(*AuthController) *AuthController

// NewAuthController creates a new AuthController instance
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil || c.Auther == nil || c.Tokens == nil || c.Mailer == nil {
		panic("Missing dependencies in auth controller...")
	}

	return c
}

func WithAuthUsers(users *UserService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Users = users
		return c
	}
}

func WithAuthAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAuthTokens(tokens TokenManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithAuthMailer(mailer Mailer) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Mailer = mailer
		return c
	}
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// RegisterPayload is the self-service registration body.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, passwordRule()),
	)
}

// LoginPayload is the login body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshTokenPayload carries a refresh token for logout and rotation.
type RefreshTokenPayload struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate will run validation rules
func (r RefreshTokenPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// ForgotPasswordPayload is the forgot password body.
type ForgotPasswordPayload struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (r ForgotPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordPayload is the reset password body; the token travels in
// the query string.
type ResetPasswordPayload struct {
	Password string `json:"password"`
}

// Validate will run validation rules
func (r ResetPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, passwordRule()),
	)
}

// Register creates an account and answers 201 with the user and a fresh
// token pair.
func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := a.Users.RegisterUser(c.UserContext(), CreateUserInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		return err
	}

	tokens, err := a.Tokens.AuthTokenPair(c.UserContext(), user)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, "Created", fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// Login answers 202 with the user and a fresh token pair.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, tokens, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusAccepted, "Accepted", fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout consumes a refresh token and answers 204.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	payload := new(RefreshTokenPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := a.Auther.Logout(c.UserContext(), payload.RefreshToken); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RefreshTokens rotates a refresh token and answers 200 with the user and
// the new pair.
func (a *AuthController) RefreshTokens(c *fiber.Ctx) error {
	payload := new(RefreshTokenPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, tokens, err := a.Auther.Refresh(c.UserContext(), payload.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "OK", fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// ForgotPassword issues a reset token and emails it. Unknown emails get
// the same 204 as known ones.
func (a *AuthController) ForgotPassword(c *fiber.Ctx) error {
	payload := new(ForgotPasswordPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	tokenValue, err := a.Tokens.ResetPasswordToken(c.UserContext(), payload.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			a.Logger.Debug("forgot password for unknown email", "email", payload.Email)
			return c.SendStatus(fiber.StatusNoContent)
		}
		return err
	}

	user, err := a.Users.GetUserByEmail(c.UserContext(), payload.Email)
	if err != nil {
		return err
	}

	if err := a.Mailer.SendResetPasswordEmail(c.UserContext(), user, tokenValue); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ResetPassword consumes a reset token from the query string.
func (a *AuthController) ResetPassword(c *fiber.Ctx) error {
	tokenValue := c.Query("token")
	if tokenValue == "" {
		return validation.Errors{"token": errors.New("cannot be blank")}
	}

	payload := new(ResetPasswordPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := a.Auther.ResetPassword(c.UserContext(), tokenValue, payload.Password); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SendVerificationEmail issues a verification token for the authenticated
// user and emails it.
func (a *AuthController) SendVerificationEmail(c *fiber.Ctx) error {
	user, ok := UserFromFiber(c)
	if !ok {
		return ErrPleaseAuthenticate
	}

	tokenValue, err := a.Tokens.VerifyEmailToken(c.UserContext(), user)
	if err != nil {
		return err
	}

	if err := a.Mailer.SendVerificationEmail(c.UserContext(), user, tokenValue); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// VerifyEmail consumes a verification token from the query string.
func (a *AuthController) VerifyEmail(c *fiber.Ctx) error {
	tokenValue := c.Query("token")
	if tokenValue == "" {
		return validation.Errors{"token": errors.New("cannot be blank")}
	}

	if err := a.Auther.VerifyEmail(c.UserContext(), tokenValue); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func badBody(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "Failed to parse request body").
		WithCode(goerrors.CodeBadRequest)
}

// passwordRule enforces at least 8 characters with one letter and one digit.
func passwordRule() validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if len(s) < 8 {
			return errors.New("must be at least 8 characters")
		}
		var hasLetter, hasDigit bool
		for _, r := range s {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasLetter || !hasDigit {
			return errors.New("must contain at least one letter and one number")
		}
		return nil
	})
}
