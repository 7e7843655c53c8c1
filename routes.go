package accounts

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /v1. The user directory is admin
// only; verification email dispatch requires an authenticated principal.
func RegisterRoutes(app *fiber.App, auth *AuthController, users *UserController, guard *RouteGuard) {
	v1 := app.Group("/v1")

	ar := v1.Group("/auth")
	ar.Post("/register", auth.Register)
	ar.Post("/login", auth.Login)
	ar.Post("/logout", auth.Logout)
	ar.Post("/refresh-tokens", auth.RefreshTokens)
	ar.Post("/forgot-password", auth.ForgotPassword)
	ar.Post("/reset-password", auth.ResetPassword)
	ar.Post("/send-verification-email", guard.RequireAuth(), auth.SendVerificationEmail)
	ar.Post("/verify-email", auth.VerifyEmail)

	ur := v1.Group("/users", guard.RequireAuth(RoleAdmin))
	ur.Get("/", users.Index)
	ur.Post("/", users.Create)
	ur.Get("/:id", users.Show)
	ur.Patch("/:id", users.Update)
	ur.Delete("/:id", users.Delete)
}
