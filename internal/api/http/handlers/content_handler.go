package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/repository"
	"github.com/funify/funify-api/internal/service"
)

const (
	defaultEventLimit   = 12
	defaultArticleLimit = 20
	defaultPodcastLimit = 20
)

// ContentHandler exposes events, articles and podcasts.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// ListEvents handles GET /api/events.
func (h *ContentHandler) ListEvents(c *fiber.Ctx) error {
	upcoming, _ := strconv.ParseBool(c.Query("upcoming"))
	filter := repository.EventFilter{Upcoming: upcoming, HostID: optionalQuery(c, "hostId")}

	res, err := h.content.ListEvents(c.UserContext(), filter, parsePage(c, defaultEventLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// GetEvent handles GET /api/events/:id.
func (h *ContentHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.content.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(event))
}

// ListArticles handles GET /api/articles.
func (h *ContentHandler) ListArticles(c *fiber.Ctx) error {
	res, err := h.content.ListArticles(c.UserContext(), optionalQuery(c, "authorId"), parsePage(c, defaultArticleLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// GetArticle handles GET /api/articles/:slug.
func (h *ContentHandler) GetArticle(c *fiber.Ctx) error {
	article, err := h.content.GetArticle(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(article))
}

// ListPodcasts handles GET /api/podcasts.
func (h *ContentHandler) ListPodcasts(c *fiber.Ctx) error {
	res, err := h.content.ListPodcasts(c.UserContext(), optionalQuery(c, "creatorId"), parsePage(c, defaultPodcastLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(res))
}

// Notifications handles GET /api/notifications. Notification storage does
// not exist yet; the feed is always empty.
func (h *ContentHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(dto.OK([]any{}))
}

// MySubscribers handles GET /api/subscriptions/my-subscribers.
func (h *ContentHandler) MySubscribers(c *fiber.Ctx) error {
	return c.JSON(dto.OK(fiber.Map{"subscriptions": []any{}}))
}
