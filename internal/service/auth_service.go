package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funify/funify-api/internal/auth"
	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/repository"
	apperrors "github.com/funify/funify-api/pkg/util"
)

const invalidCredentials = "Invalid credentials"

// TokenIssuer mints bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

// OAuthProvider runs the GitHub authorization-code flow.
type OAuthProvider interface {
	AuthorizeURL(ctx context.Context) (string, error)
	Exchange(ctx context.Context, code, state string) (*auth.GitHubUser, error)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	github     OAuthProvider
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     TokenIssuer
	GitHub     OAuthProvider
	BcryptCost int
	Logger     *zap.Logger
}

// RegisterInput is a password sign-up.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Username *string
}

// AuthResult is an authenticated user and a fresh token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		github:     deps.GitHub,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
	}
}

// Register creates a password account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewValidationError("User already exists", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationError("password is too long", map[string]any{"password": "too long"})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Username:     in.Username,
		PasswordHash: &hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.NewValidationError("User already exists", nil)
		}
		return nil, err
	}
	return s.signIn(user)
}

// Login verifies a password. Unknown emails, wrong passwords and accounts
// without a password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.NotFound(err) {
			return nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	return s.signIn(user)
}

// GitHubAuthorizeURL starts the OAuth flow.
func (s *AuthService) GitHubAuthorizeURL(ctx context.Context) (string, error) {
	return s.github.AuthorizeURL(ctx)
}

// GitHubCallback completes the OAuth flow, creating the account on first sign-in.
func (s *AuthService) GitHubCallback(ctx context.Context, code, state string) (*AuthResult, error) {
	gh, err := s.github.Exchange(ctx, code, state)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByGitHubID(ctx, gh.ID)
	if err == nil {
		return s.signIn(user)
	}
	if !repository.NotFound(err) {
		return nil, err
	}

	user = newGitHubUser(gh)
	err = s.users.Create(ctx, user)
	if repository.IsDuplicate(err) {
		// The login is taken by a password account; fall back to a suffixed username.
		suffixed := gh.Login + "-" + uuid.NewString()[:6]
		user.Username = &suffixed
		err = s.users.Create(ctx, user)
	}
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.NewValidationError("User already exists", nil)
		}
		return nil, err
	}
	s.logger.Info("github account created", zap.String("user_id", user.ID), zap.Int64("github_id", gh.ID))
	return s.signIn(user)
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *AuthService) signIn(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("issue token: %w", err))
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func newGitHubUser(gh *auth.GitHubUser) *domain.User {
	githubID := gh.ID
	login := gh.Login

	email := fmt.Sprintf("%d+%s@users.noreply.github.com", gh.ID, strings.ToLower(gh.Login))
	if gh.Email != nil && *gh.Email != "" {
		email = strings.ToLower(*gh.Email)
	}
	name := gh.Login
	if gh.Name != nil && *gh.Name != "" {
		name = *gh.Name
	}
	var avatar *string
	if gh.AvatarURL != "" {
		avatar = &gh.AvatarURL
	}

	return &domain.User{
		Email:    email,
		Name:     name,
		Username: &login,
		Avatar:   avatar,
		Bio:      gh.Bio,
		GitHubID: &githubID,
	}
}
