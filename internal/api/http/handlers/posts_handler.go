package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/service"
)

const defaultPostLimit = 20

// PostsHandler exposes creator posts.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(posts *service.PostService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// List handles GET /api/posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	return h.list(c, optionalQuery(c, "user_id", "userId"))
}

// ByCreator handles GET /api/posts/creator/:user_id.
func (h *PostsHandler) ByCreator(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	return h.list(c, &userID)
}

// Mine handles GET /api/posts/my-posts.
func (h *PostsHandler) Mine(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	userID := claims.UserID()
	return h.list(c, &userID)
}

func (h *PostsHandler) list(c *fiber.Ctx, userID *string) error {
	res, err := h.posts.List(c.UserContext(), userID, parsePage(c, defaultPostLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// Get handles GET /api/posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(post))
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.PostRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.UserContext(), claims.UserID(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(post))
}

// Update handles PUT /api/posts/:id.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.PostRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Update(c.UserContext(), claims.UserID(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(post))
}

// Delete handles DELETE /api/posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.UserContext(), claims.UserID(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
