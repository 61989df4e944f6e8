package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/api/dto"
	"github.com/funify/funify-api/internal/domain"
	apperrors "github.com/funify/funify-api/pkg/util"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  domain.Page
	}{
		{"", domain.Page{Number: 1, Limit: 20}},
		{"?page=3&limit=5", domain.Page{Number: 3, Limit: 5}},
		{"?page=abc&limit=-1", domain.Page{Number: 1, Limit: 20}},
		{"?page=0&limit=0", domain.Page{Number: 1, Limit: 20}},
		{"?limit=1000", domain.Page{Number: 1, Limit: maxPageLimit}},
		{"?page=9223372036854775807&limit=100", domain.Page{Number: maxPageNumber, Limit: maxPageLimit}},
		{"?page=99999999999999999999", domain.Page{Number: 1, Limit: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			var got domain.Page
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePage(c, 20)
				return nil
			})
			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalQuery_FirstNonEmptyKey(t *testing.T) {
	app := fiber.New()
	var got *string
	app.Get("/", func(c *fiber.Ctx) error {
		got = optionalQuery(c, "creatorId", "user_id")
		return nil
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?creatorId=%20&user_id=u-1", nil))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", *got)

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeBody(t *testing.T) {
	app := fiber.New()
	var decoded dto.CampaignCreateRequest
	app.Post("/", func(c *fiber.Ctx) error {
		decoded = dto.CampaignCreateRequest{}
		if err := decodeBody(c, &decoded); err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(de.Details)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"valid", `{"title":"Film","description":"d","goal_amount":10}`, fiber.StatusNoContent, ""},
		{"trailing object", `{"title":"Film","description":"d","goal_amount":10}{}`, fiber.StatusBadRequest, ""},
		{"wrong type", `{"title":"Film","description":"d","goal_amount":"ten"}`, fiber.StatusBadRequest, ""},
		{"zero goal", `{"title":"Film","description":"d","goal_amount":0}`, fiber.StatusBadRequest, "goal_amount"},
		{"bad cover url", `{"title":"Film","description":"d","goal_amount":5,"cover_image":"nope"}`, fiber.StatusBadRequest, "cover_image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.field != "" {
				var details map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&details))
				assert.Contains(t, details, tt.field)
			}
		})
	}
	assert.Equal(t, "Film", decoded.Title)
}
