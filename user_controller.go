package accounts

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserController exposes admin user management over HTTP.
type UserController struct {
	Users  *UserService
	Logger Logger
}

// NewUserController creates a new UserController instance
func NewUserController(users *UserService, logger Logger) *UserController {
	if logger == nil {
		logger = defLogger{}
	}
	return &UserController{Users: users, Logger: logger}
}

// CreateUserPayload is the admin create body. Unlike self-service
// registration it accepts a role.
type CreateUserPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate will run validation rules
func (r CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, passwordRule()),
		validation.Field(&r.Role, validation.In(rolesAsAny()...)),
	)
}

// UpdateUserPayload is the admin partial update body.
type UpdateUserPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate will run validation rules
func (r UpdateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Password, validation.By(func(value any) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			return passwordRule().Validate(s)
		})),
		validation.Field(&r.Role, validation.In(rolesAsAny()...)),
	)
}

// Index answers one page of users filtered by name and role.
func (u *UserController) Index(c *fiber.Ctx) error {
	filter := UserFilter{
		Name:   c.Query("name"),
		Role:   c.Query("role"),
		SortBy: c.Query("sortBy"),
		Limit:  c.QueryInt("limit"),
		Page:   c.QueryInt("page"),
	}

	page, err := u.Users.QueryUsers(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "OK", page)
}

// Show answers a single user by id.
func (u *UserController) Show(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	user, err := u.Users.GetUserByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "OK", user)
}

// Create makes an account with an explicit role.
func (u *UserController) Create(c *fiber.Ctx) error {
	payload := new(CreateUserPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := u.Users.CreateUser(c.UserContext(), CreateUserInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, "Created", user)
}

// Update applies a partial update by id.
func (u *UserController) Update(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	payload := new(UpdateUserPayload)
	if err := c.BodyParser(payload); err != nil {
		return badBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := u.Users.UpdateUserByID(c.UserContext(), id, UpdateUserInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "OK", user)
}

// Delete removes an account by id.
func (u *UserController) Delete(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	if err := u.Users.DeleteUserByID(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func userIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, validation.Errors{"id": errors.New("must be a valid UUID")}
	}
	return id, nil
}

func rolesAsAny() []any {
	roles := GetAllRoles()
	out := make([]any, len(roles))
	for i, r := range roles {
		out[i] = r
	}
	return out
}
