package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/funify/funify-api/internal/config"
	apperrors "github.com/funify/funify-api/pkg/util"
)

const oauthStateTTL = 10 * time.Minute

// ErrOAuthDisabled is returned when no GitHub application is configured.
var ErrOAuthDisabled = errors.New("github oauth not configured")

// GitHubUser is the subset of the GitHub /user payload the platform stores.
type GitHubUser struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	AvatarURL string  `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

// GitHubClient is built once at startup and shared by every OAuth request.
type GitHubClient struct {
	oauth   *oauth2.Config
	apiURL  string
	states  StateStore
	enabled bool
}

// GitHubOption customizes a GitHubClient.
type GitHubOption func(*GitHubClient)

// WithEndpoint overrides the GitHub authorize/token endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) GitHubOption {
	return func(g *GitHubClient) {
		g.oauth.Endpoint = endpoint
	}
}

// NewGitHubClient constructs the OAuth client from validated settings.
func NewGitHubClient(cfg config.GitHubConfig, states StateStore, opts ...GitHubOption) *GitHubClient {
	g := &GitHubClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"user:email"},
		},
		apiURL:  cfg.APIURL,
		states:  states,
		enabled: cfg.OAuthEnabled(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AuthorizeURL records a fresh state value and returns the GitHub consent URL.
func (g *GitHubClient) AuthorizeURL(ctx context.Context) (string, error) {
	if !g.enabled {
		return "", apperrors.NewInternalError(ErrOAuthDisabled)
	}
	state := uuid.NewString()
	if err := g.states.Save(ctx, state, oauthStateTTL); err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("save oauth state: %w", err))
	}
	return g.oauth.AuthCodeURL(state), nil
}

// Exchange validates state, trades code for an access token and fetches the GitHub profile.
func (g *GitHubClient) Exchange(ctx context.Context, code, state string) (*GitHubUser, error) {
	if !g.enabled {
		return nil, apperrors.NewInternalError(ErrOAuthDisabled)
	}
	if code == "" || state == "" {
		return nil, apperrors.NewValidationError("code and state required", nil)
	}

	ok, err := g.states.Consume(ctx, state)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("consume oauth state: %w", err))
	}
	if !ok {
		return nil, apperrors.NewUnauthorized("invalid or expired oauth state")
	}

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.NewDomainError(apperrors.CodeUnauthorized, "Failed to exchange code for token", http.StatusUnauthorized, nil)
	}

	return g.fetchUser(ctx, g.oauth.Client(ctx, token))
}

func (g *GitHubClient) fetchUser(ctx context.Context, client *http.Client) (*GitHubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+"/user", nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Failed to fetch user from GitHub")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUnauthorized("GitHub API error")
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil || user.ID == 0 {
		return nil, apperrors.NewUnauthorized("Failed to parse GitHub user")
	}
	return &user, nil
}
