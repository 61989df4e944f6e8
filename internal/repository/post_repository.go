package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/funify/funify-api/internal/domain"
)

// PostFilter narrows a post listing. A nil UserID lists every post.
type PostFilter struct {
	UserID *string
}

// PostRepository encapsulates post persistence. Update and Delete are
// fenced on the owner column and report pgx.ErrNoRows when no owned row matched.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter, page domain.Page) ([]domain.Post, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id, ownerID string) error
}

const postColumns = `id::text, user_id, title, content, media_url, media_type, is_premium, created_at, updated_at`

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.MediaURL,
		&post.MediaType,
		&post.IsPremium,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, page domain.Page) ([]domain.Post, int64, error) {
	const where = ` WHERE ($1::text IS NULL OR user_id = $1)`
	const query = `SELECT ` + postColumns + ` FROM posts` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where, filter.UserID).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.Query(ctx, query, filter.UserID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, page.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	return posts, total, mapError(rows.Err())
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (user_id, title, content, media_url, media_type, is_premium)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id::text, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		post.UserID,
		post.Title,
		post.Content,
		post.MediaURL,
		post.MediaType,
		post.IsPremium,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	return mapError(err)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET title = $1, content = $2, media_url = $3, media_type = $4, is_premium = $5, updated_at = NOW()
        WHERE id = $6 AND user_id = $7
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.MediaURL,
		post.MediaType,
		post.IsPremium,
		post.ID,
		post.UserID,
	).Scan(&post.UpdatedAt)
	return mapError(err)
}

func (r *postRepository) Delete(ctx context.Context, id, ownerID string) error {
	return execAffected(r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, ownerID))
}
