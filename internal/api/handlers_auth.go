package api

import (
	"github.com/gofiber/fiber/v2"
)

type registerInput struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type loginInput struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.auth.Register(input.Name, input.Password)
	if err != nil {
		return serviceError(c, err)
	}

	if err := handler.setAuthCookie(c, user, input.RememberMe); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.auth.Authenticate(input.Name, input.Password)
	if err != nil {
		return serviceError(c, err)
	}

	if err := handler.setAuthCookie(c, user, input.RememberMe); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// SetupStatus tells a fresh client whether anyone has registered yet, so it
// can route to first-run registration instead of login.
func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	userCount, err := handler.store.CountUsers()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"needs_setup": userCount == 0})
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.store.ListUsers()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(users)
}
