package app

import (
	"fmt"

	"realtime_chat_service/pkg/logger"
	"realtime_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler HTTP handlers for account routes
type UserHandler struct {
	Usecase UserUseCase
}

// NewUserHandler create a UserHandler
func NewUserHandler(uc UserUseCase) *UserHandler {
	return &UserHandler{Usecase: uc}
}

// Signup create a new account
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	type request struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		PublicKey string `json:"public_key"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request"})
	}

	logger.Log.Debug("Signup request", zap.String("email", req.Email))

	user, err := h.Usecase.Register(c.Context(), req.Username, req.Email, req.Password, req.PublicKey)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "user created successfully",
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"public_key": user.PublicKey,
		},
	})
}

// Signin verify credentials and set the auth cookie
func (h *UserHandler) Signin(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request"})
	}

	t, user, err := h.Usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieToken,
		Value:    t,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login success",
		"token":   t,
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"public_key": user.PublicKey,
		},
	})
}

// Signout drop the session
func (h *UserHandler) Signout(c *fiber.Ctx) error {
	t := c.Cookies(middlewares.CookieToken)
	if t == "" {
		t = c.Query(middlewares.QueryToken)
	}
	if err := h.Usecase.Logout(c.Context(), t); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(fiber.Map{"success": true, "message": "logout success"})
}

// Profile return the authenticated user's account
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID)})
	}

	user, err := h.Usecase.Profile(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"public_key": user.PublicKey,
		},
	})
}

// AllUsers list other accounts for contact discovery
func (h *UserHandler) AllUsers(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)

	users, err := h.Usecase.AllUsers(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "users": users})
}

// Search find users by username or email fragment
func (h *UserHandler) Search(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)

	users, err := h.Usecase.Search(c.Context(), c.Query("query"), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "users": users})
}
