package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/service"
)

// AuthHandler exposes sign-up, login and GitHub OAuth.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Username: req.Username,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(authResponse(res)))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(authResponse(res)))
}

// GitHubRedirect handles GET /api/auth/github.
func (h *AuthHandler) GitHubRedirect(c *fiber.Ctx) error {
	url, err := h.auth.GitHubAuthorizeURL(c.UserContext())
	if err != nil {
		return err
	}
	return c.Redirect(url, http.StatusFound)
}

// GitHubCallback handles GET /api/auth/github/callback.
func (h *AuthHandler) GitHubCallback(c *fiber.Ctx) error {
	res, err := h.auth.GitHubCallback(c.UserContext(), c.Query("code"), c.Query("state"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(authResponse(res)))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

func authResponse(res *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{User: res.User, Token: res.Token, ExpiresAt: res.ExpiresAt}
}
