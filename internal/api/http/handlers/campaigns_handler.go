package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/service"
)

const defaultCampaignLimit = 12

// CampaignsHandler exposes crowdfunding campaigns.
type CampaignsHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignsHandler constructs handler.
func NewCampaignsHandler(campaigns *service.CampaignService) *CampaignsHandler {
	return &CampaignsHandler{campaigns: campaigns}
}

// List handles GET /api/campaigns.
func (h *CampaignsHandler) List(c *fiber.Ctx) error {
	res, err := h.campaigns.List(c.UserContext(), parsePage(c, defaultCampaignLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// GetBySlug handles GET /api/campaigns/:slug.
func (h *CampaignsHandler) GetBySlug(c *fiber.Ctx) error {
	detail, err := h.campaigns.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(detail))
}

// Create handles POST /api/campaigns.
func (h *CampaignsHandler) Create(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CampaignCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.Create(c.UserContext(), claims.UserID(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(campaign))
}

// Update handles PUT /api/campaigns/:id.
func (h *CampaignsHandler) Update(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CampaignUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	campaign, err := h.campaigns.Update(c.UserContext(), claims.UserID(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(campaign))
}

// Delete handles DELETE /api/campaigns/:id.
func (h *CampaignsHandler) Delete(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	if err := h.campaigns.Delete(c.UserContext(), claims.UserID(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
