package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/funify/funify-api/internal/domain"
)

// UserRepository defines persistence access for accounts and creator profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	SetCreator(ctx context.Context, id string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGitHubID(ctx context.Context, githubID int64) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email string, username *string) (bool, error)
	ListCreators(ctx context.Context, page domain.Page) ([]domain.User, int64, error)
	GetCreatorByUsername(ctx context.Context, username string) (*domain.User, error)
}

const userColumns = `id, email, name, username, avatar, bio, is_creator, password_hash, github_id, created_at, updated_at`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Username,
		&user.Avatar,
		&user.Bio,
		&user.IsCreator,
		&user.PasswordHash,
		&user.GitHubID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// Create assigns a fresh id when the caller left it empty.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, name, username, avatar, bio, is_creator, password_hash, github_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Username,
		user.Avatar,
		user.Bio,
		user.IsCreator,
		user.PasswordHash,
		user.GitHubID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	const query = `
        UPDATE users SET
            name = COALESCE($2, name),
            avatar = COALESCE($3, avatar),
            bio = COALESCE($4, bio),
            is_creator = COALESCE($5, is_creator),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	return scanUser(r.pool.QueryRow(ctx, query, id, patch.Name, patch.Avatar, patch.Bio, patch.IsCreator))
}

func (r *userRepository) SetCreator(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        UPDATE users SET is_creator = TRUE, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByGitHubID(ctx context.Context, githubID int64) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE github_id = $1`, githubID))
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email string, username *string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR ($2::text IS NOT NULL AND username = $2))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, username).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *userRepository) ListCreators(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE is_creator = TRUE
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_creator = TRUE`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, page.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, mapError(rows.Err())
}

func (r *userRepository) GetCreatorByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND is_creator = TRUE`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}
