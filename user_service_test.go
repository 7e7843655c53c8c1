package accounts_test

import (
	"context"
	"testing"

	accounts "github.com/goliatone/go-accounts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user with hashed password and default role", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		users.On("IsEmailTaken", ctx, "new@example.com", uuid.Nil).Return(false, nil).Once()
		users.On("Create", ctx, mock.MatchedBy(func(r *accounts.User) bool {
			return r.Email == "new@example.com" &&
				r.Role == accounts.RoleUser &&
				r.PasswordHash != "password1" &&
				accounts.ComparePasswordAndHash("password1", r.PasswordHash) == nil
		})).Return(&accounts.User{ID: uuid.New(), Email: "new@example.com", Role: accounts.RoleUser}, nil).Once()

		created, err := svc.CreateUser(ctx, accounts.CreateUserInput{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "password1",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		users.AssertExpectations(t)
	})

	t.Run("Normalizes email case", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		users.On("IsEmailTaken", ctx, "mixed@example.com", uuid.Nil).Return(false, nil).Once()
		users.On("Create", ctx, mock.MatchedBy(func(r *accounts.User) bool {
			return r.Email == "mixed@example.com"
		})).Return(&accounts.User{ID: uuid.New()}, nil).Once()

		_, err := svc.CreateUser(ctx, accounts.CreateUserInput{
			Name:     "Mixed",
			Email:    "  Mixed@Example.COM ",
			Password: "password1",
		})
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("Rejects taken email", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		users.On("IsEmailTaken", ctx, "taken@example.com", uuid.Nil).Return(true, nil).Once()

		_, err := svc.CreateUser(ctx, accounts.CreateUserInput{
			Name:     "Taken",
			Email:    "taken@example.com",
			Password: "password1",
		})
		assert.ErrorIs(t, err, accounts.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rejects unknown role", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		users.On("IsEmailTaken", ctx, "role@example.com", uuid.Nil).Return(false, nil).Once()

		_, err := svc.CreateUser(ctx, accounts.CreateUserInput{
			Name:     "Role",
			Email:    "role@example.com",
			Password: "password1",
			Role:     "superuser",
		})
		assert.Error(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserServiceRegisterUser(t *testing.T) {
	ctx := context.Background()
	users := new(MockUsers)
	svc := accounts.NewUserService(users, nil)

	users.On("IsEmailTaken", ctx, "self@example.com", uuid.Nil).Return(false, nil).Once()
	users.On("Create", ctx, mock.MatchedBy(func(r *accounts.User) bool {
		return r.Role == accounts.RoleUser
	})).Return(&accounts.User{ID: uuid.New(), Role: accounts.RoleUser}, nil).Once()

	// Self-service registration must not honor a requested role.
	_, err := svc.RegisterUser(ctx, accounts.CreateUserInput{
		Name:     "Self",
		Email:    "self@example.com",
		Password: "password1",
		Role:     accounts.RoleAdmin,
	})
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUserServiceUpdateUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies partial update", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		id := uuid.New()
		existing := &accounts.User{ID: id, Name: "Old", Email: "old@example.com", Role: accounts.RoleUser}

		users.On("GetByID", ctx, id).Return(existing, nil).Once()
		users.On("Update", ctx, mock.MatchedBy(func(r *accounts.User) bool {
			return r.Name == "New Name" && r.Email == "old@example.com"
		})).Return(existing, nil).Once()

		_, err := svc.UpdateUserByID(ctx, id, accounts.UpdateUserInput{Name: "New Name"})
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("Rejects email already taken by another user", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		id := uuid.New()
		existing := &accounts.User{ID: id, Email: "old@example.com"}

		users.On("GetByID", ctx, id).Return(existing, nil).Once()
		users.On("IsEmailTaken", ctx, "other@example.com", id).Return(true, nil).Once()

		_, err := svc.UpdateUserByID(ctx, id, accounts.UpdateUserInput{Email: "other@example.com"})
		assert.ErrorIs(t, err, accounts.ErrEmailTaken)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unknown user answers not found", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		id := uuid.New()
		users.On("GetByID", ctx, id).Return(nil, accounts.ErrUserNotFound).Once()

		_, err := svc.UpdateUserByID(ctx, id, accounts.UpdateUserInput{Name: "x"})
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})
}

func TestUserServiceDeleteUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes existing user", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		id := uuid.New()
		users.On("GetByID", ctx, id).Return(&accounts.User{ID: id}, nil).Once()
		users.On("Delete", ctx, id).Return(nil).Once()

		assert.NoError(t, svc.DeleteUserByID(ctx, id))
		users.AssertExpectations(t)
	})

	t.Run("Unknown user answers not found", func(t *testing.T) {
		users := new(MockUsers)
		svc := accounts.NewUserService(users, nil)

		id := uuid.New()
		users.On("GetByID", ctx, id).Return(nil, accounts.ErrUserNotFound).Once()

		err := svc.DeleteUserByID(ctx, id)
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
