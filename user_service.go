package accounts

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// CreateUserInput carries the fields needed to create an account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     UserRole
}

// UpdateUserInput carries a partial update. Empty fields are left as is.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     UserRole
}

// UserService implements account management on top of the users repository.
type UserService struct {
	users  Users
	logger Logger
}

// NewUserService creates a new UserService instance
func NewUserService(users Users, logger Logger) *UserService {
	if logger == nil {
		logger = defLogger{}
	}
	return &UserService{users: users, logger: logger}
}

// CreateUser creates an account with the given role. Emails are unique
// across live accounts; the id is derived from the email so retried
// registrations stay idempotent at the row level.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	email := normalizeEmail(input.Email)

	taken, err := s.users.IsEmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check email availability")
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = RoleUser
	}
	if !RoleIsValid(role) {
		return nil, errors.New("invalid role", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"role": string(role)})
	}

	record := &User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if id, err := hashid.NewUUID(email); err == nil {
		record.ID = id
	}

	created, err := s.users.Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	s.logger.Info("user created", "user", created.ID, "role", created.Role)

	return created, nil
}

// RegisterUser creates a self-service account. The role is always the
// base role regardless of what the caller asked for.
func (s *UserService) RegisterUser(ctx context.Context, input CreateUserInput) (*User, error) {
	input.Role = RoleUser
	return s.CreateUser(ctx, input)
}

// GetUserByID resolves a user or returns ErrUserNotFound.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserByEmail resolves a user or returns ErrUserNotFound.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.users.GetByEmail(ctx, normalizeEmail(email))
}

// QueryUsers returns one page of users matching the filter.
func (s *UserService) QueryUsers(ctx context.Context, filter UserFilter) (*UserPage, error) {
	return s.users.List(ctx, filter)
}

// UpdateUserByID applies a partial update to an existing account.
func (s *UserService) UpdateUserByID(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*User, error) {
	record, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		record.Name = input.Name
	}

	if email := normalizeEmail(input.Email); email != "" && email != record.Email {
		taken, err := s.users.IsEmailTaken(ctx, email, id)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check email availability")
		}
		if taken {
			return nil, ErrEmailTaken
		}
		record.Email = email
	}

	if input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		record.PasswordHash = hash
	}

	if input.Role != "" {
		if !RoleIsValid(input.Role) {
			return nil, errors.New("invalid role", errors.CategoryValidation).
				WithCode(errors.CodeBadRequest).
				WithMetadata(map[string]any{"role": string(input.Role)})
		}
		record.Role = input.Role
	}

	return s.users.Update(ctx, record)
}

// DeleteUserByID soft deletes an account, returning ErrUserNotFound when
// there is nothing to delete.
func (s *UserService) DeleteUserByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
