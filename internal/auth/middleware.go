package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/funify/funify-api/pkg/util"
)

const bearerPrefix = "Bearer "

// Access is the outcome of classifying a request.
type Access int

const (
	AccessProtected Access = iota
	AccessPublic
)

func (a Access) String() string {
	if a == AccessPublic {
		return "public"
	}
	return "protected"
}

// RouteRule matches a path prefix and, optionally, a set of methods.
// An empty Methods list matches every method. Exact rules match only the
// prefix itself.
type RouteRule struct {
	Prefix  string
	Methods []string
	Exact   bool
	Access  Access
}

func (r RouteRule) matches(method, path string) bool {
	if r.Exact {
		if path != r.Prefix && path != r.Prefix+"/" {
			return false
		}
	} else if !hasPathPrefix(path, r.Prefix) {
		return false
	}
	if len(r.Methods) == 0 {
		return true
	}
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// RouteTable is an ordered rule list; the first matching rule decides.
// Requests no rule matches are protected.
type RouteTable []RouteRule

// DefaultRouteTable returns the platform's public/protected classification.
func DefaultRouteTable() RouteTable {
	get := []string{fiber.MethodGet}
	return RouteTable{
		{Prefix: "/api", Methods: []string{fiber.MethodOptions}, Access: AccessPublic},
		{Prefix: "/api/auth/me", Access: AccessProtected},
		{Prefix: "/api/posts/my-posts", Exact: true, Access: AccessProtected},
		{Prefix: "/health", Access: AccessPublic},
		{Prefix: "/api/auth", Access: AccessPublic},
		{Prefix: "/api/creators", Access: AccessPublic},
		{Prefix: "/api/events", Access: AccessPublic},
		{Prefix: "/api/articles", Access: AccessPublic},
		{Prefix: "/api/podcasts", Access: AccessPublic},
		{Prefix: "/api/notifications", Access: AccessPublic},
		{Prefix: "/api/subscriptions", Access: AccessPublic},
		{Prefix: "/api/campaigns", Methods: get, Access: AccessPublic},
		{Prefix: "/api/posts", Methods: get, Access: AccessPublic},
		{Prefix: "/api/products", Methods: get, Access: AccessPublic},
	}
}

// Classify returns the access class for a method and path. Paths are
// compared case-insensitively so a case variant of a protected route can
// never fall through to a broader public prefix.
func (t RouteTable) Classify(method, path string) Access {
	path = strings.ToLower(path)
	for _, rule := range t {
		if rule.matches(method, path) {
			return rule.Access
		}
	}
	return AccessProtected
}

// hasPathPrefix matches whole path segments, so "/api/auth" does not match "/api/authors".
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/' || strings.HasSuffix(prefix, "/")
}

// TokenVerifier decodes bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// AuthMiddleware is the single authentication gate in front of every handler.
type AuthMiddleware struct {
	tokens TokenVerifier
	routes RouteTable
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, routes RouteTable, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, routes: routes, logger: logger}
}

// Handle admits public requests untouched and requires a valid bearer token on the rest.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if m.routes.Classify(c.Method(), c.Path()) == AccessPublic {
		return c.Next()
	}

	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthorized("missing or malformed authorization header")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrSecretUnavailable) {
			return apperrors.NewInternalError(err)
		}
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized("invalid token")
	}

	SetIdentity(c, claims)
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
