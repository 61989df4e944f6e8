package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/funify/funify-api/internal/domain"
	apperrors "github.com/funify/funify-api/pkg/util"
)

const (
	maxPageLimit  = 100
	// Bounds (page-1)*limit so the OFFSET stays far from integer overflow.
	maxPageNumber = math.MaxInt32 / maxPageLimit
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody strictly decodes the JSON body into dst and runs its validate
// tags. Unknown fields, trailing data and tag failures are ValidationErrors.
func decodeBody(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewValidationError(describeDecodeError(err), nil)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("request body must contain a single JSON object", nil)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = tagMessage(fe)
			}
			return apperrors.NewValidationError(fmt.Sprintf("invalid %s: %s", verrs[0].Field(), tagMessage(verrs[0])), details)
		}
		return apperrors.NewValidationError("invalid request", nil)
	}
	return nil
}

func describeDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.As(err, &syntaxErr):
		return "malformed JSON"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("invalid type for %s", typeErr.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "invalid request body"
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "url":
		return "invalid url"
	case "min", "len":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// parsePage reads page and limit. Missing, non-numeric or non-positive
// values fall back to the defaults; both are capped.
func parsePage(c *fiber.Ctx, defaultLimit int) domain.Page {
	page := positiveQuery(c, "page", 1)
	if page > maxPageNumber {
		page = maxPageNumber
	}
	limit := positiveQuery(c, "limit", defaultLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return domain.Page{Number: page, Limit: limit}
}

func positiveQuery(c *fiber.Ctx, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// optionalQuery returns the first non-empty query value among keys.
func optionalQuery(c *fiber.Ctx, keys ...string) *string {
	for _, key := range keys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			return &v
		}
	}
	return nil
}
