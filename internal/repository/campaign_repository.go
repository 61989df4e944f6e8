package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/funify/funify-api/internal/domain"
)

// CampaignRepository encapsulates campaign persistence.
type CampaignRepository interface {
	List(ctx context.Context, page domain.Page) ([]domain.Campaign, int64, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Campaign, error)
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*domain.CampaignDetail, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, campaign *domain.Campaign) error
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, id, creatorID string) error
}

const campaignColumns = `c.id::text, c.title, c.description, c.story, c.goal_amount, c.current_amount, c.status,
        c.slug, c.creator_id, c.cover_image, c.video_url, c.category, c.end_date, c.created_at, c.updated_at`

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository instantiates repository.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

func campaignFields(c *domain.Campaign) []any {
	return []any{
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Story,
		&c.GoalAmount,
		&c.CurrentAmount,
		&c.Status,
		&c.Slug,
		&c.CreatorID,
		&c.CoverImage,
		&c.VideoURL,
		&c.Category,
		&c.EndDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := row.Scan(campaignFields(&c)...); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *campaignRepository) list(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	campaigns := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, mapError(rows.Err())
}

func (r *campaignRepository) List(ctx context.Context, page domain.Page) ([]domain.Campaign, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}
	campaigns, err := r.list(ctx,
		`SELECT `+campaignColumns+` FROM campaigns c ORDER BY c.created_at DESC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

func (r *campaignRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Campaign, error) {
	return r.list(ctx,
		`SELECT `+campaignColumns+` FROM campaigns c WHERE c.creator_id = $1 ORDER BY c.created_at DESC`,
		creatorID)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns c WHERE c.id = $1`, id))
}

// GetBySlug joins the creator's public profile. A campaign whose creator
// row is gone still resolves, with a nil Creator.
func (r *campaignRepository) GetBySlug(ctx context.Context, slug string) (*domain.CampaignDetail, error) {
	const query = `
        SELECT ` + campaignColumns + `, u.id, u.username, u.name, u.avatar, u.bio
        FROM campaigns c
        LEFT JOIN users u ON u.id = c.creator_id
        WHERE c.slug = $1`

	var (
		detail      domain.CampaignDetail
		creatorID   *string
		creatorName *string
		creator     domain.CampaignCreator
	)
	fields := append(campaignFields(&detail.Campaign), &creatorID, &creator.Username, &creatorName, &creator.Avatar, &creator.Bio)
	if err := r.pool.QueryRow(ctx, query, slug).Scan(fields...); err != nil {
		return nil, mapError(err)
	}
	if creatorID != nil {
		creator.ID = *creatorID
		if creatorName != nil {
			creator.Name = *creatorName
		}
		detail.Creator = &creator
	}
	return &detail, nil
}

func (r *campaignRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	const query = `
        INSERT INTO campaigns (title, description, story, goal_amount, current_amount, status, slug,
            creator_id, cover_image, video_url, category, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id::text, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.Title,
		c.Description,
		c.Story,
		c.GoalAmount,
		c.CurrentAmount,
		c.Status,
		c.Slug,
		c.CreatorID,
		c.CoverImage,
		c.VideoURL,
		c.Category,
		c.EndDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (r *campaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	const query = `
        UPDATE campaigns SET title = $1, description = $2, story = $3, goal_amount = $4, status = $5,
            cover_image = $6, video_url = $7, category = $8, end_date = $9, updated_at = NOW()
        WHERE id = $10 AND creator_id = $11
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.Title,
		c.Description,
		c.Story,
		c.GoalAmount,
		c.Status,
		c.CoverImage,
		c.VideoURL,
		c.Category,
		c.EndDate,
		c.ID,
		c.CreatorID,
	).Scan(&c.UpdatedAt)
	return mapError(err)
}

func (r *campaignRepository) Delete(ctx context.Context, id, creatorID string) error {
	return execAffected(r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1 AND creator_id = $2`, id, creatorID))
}
