package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/service"
)

const defaultProductLimit = 20

// ProductsHandler exposes the storefront.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	res, err := h.products.List(c.UserContext(), optionalQuery(c, "creatorId", "user_id"), parsePage(c, defaultProductLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// Meta handles GET /api/products/meta.
func (h *ProductsHandler) Meta(c *fiber.Ctx) error {
	meta, err := h.products.Meta(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewProductMetaResponse(meta)))
}

// Collections handles GET /api/products/collections.
func (h *ProductsHandler) Collections(c *fiber.Ctx) error {
	shelves, err := h.products.Collections(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.ProductCollectionsResponse{
		Featured:    nonNil(shelves.Featured),
		TopSelling:  nonNil(shelves.TopSelling),
		NewArrivals: nonNil(shelves.NewArrivals),
	}))
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(product))
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	product, err := h.products.Create(c.UserContext(), claims.UserID(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(product))
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	product, err := h.products.Update(c.UserContext(), claims.UserID(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(product))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	claims, err := auth.IdentityFromContext(c)
	if err != nil {
		return err
	}
	if err := h.products.Delete(c.UserContext(), claims.UserID(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
