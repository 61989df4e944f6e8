package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/funify/funify-api/pkg/util"
)

const identityKey = "auth_identity"

var errNoIdentity = errors.New("identity requested on a route the access gate treats as public")

// SetIdentity attaches verified claims to the request.
func SetIdentity(c *fiber.Ctx, claims *Claims) {
	c.Locals(identityKey, claims)
}

// IdentityFromContext returns the claims the gate attached. A missing
// identity means the route bypassed the gate, which is a wiring bug and
// surfaces as an internal error rather than a 401.
func IdentityFromContext(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals(identityKey).(*Claims)
	if !ok || claims == nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("%w: %s %s", errNoIdentity, c.Method(), c.Path()))
	}
	return claims, nil
}

// Owned is implemented by rows that carry an owner column.
type Owned interface {
	OwnerID() string
}

// RequireOwner loads a resource and admits the caller only if they own it.
// Absent rows yield NotFound, rows owned by someone else yield Forbidden.
func RequireOwner[T Owned](ctx context.Context, resource, callerID string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	item, err := load(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFound(resource, nil)
		}
		return zero, err
	}
	if item.OwnerID() != callerID {
		return zero, apperrors.NewForbidden(fmt.Sprintf("you do not own this %s", resource))
	}
	return item, nil
}
