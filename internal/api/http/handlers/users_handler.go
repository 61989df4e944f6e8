package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/service"
)

const defaultCreatorLimit = 20

// UsersHandler exposes profiles and the creator directory.
type UsersHandler struct {
	users     *service.UserService
	campaigns *service.CampaignService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, campaigns *service.CampaignService) *UsersHandler {
	return &UsersHandler{users: users, campaigns: campaigns}
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// MyCampaigns handles GET /api/users/me/campaigns.
func (h *UsersHandler) MyCampaigns(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	campaigns, err := h.campaigns.ListByCreator(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(campaigns))
}

// BecomeCreator handles POST /api/users/become-creator.
func (h *UsersHandler) BecomeCreator(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.users.BecomeCreator(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.UserContext(), claims.UserID(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// ListCreators handles GET /api/creators.
func (h *UsersHandler) ListCreators(c *fiber.Ctx) error {
	res, err := h.users.ListCreators(c.UserContext(), parsePage(c, defaultCreatorLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// GetCreator handles GET /api/creators/:username.
func (h *UsersHandler) GetCreator(c *fiber.Ctx) error {
	user, err := h.users.GetCreator(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}
