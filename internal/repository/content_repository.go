package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/funify/funify-api/internal/domain"
)

// EventFilter narrows an event listing. Upcoming keeps events that have not
// started yet and orders them soonest first.
type EventFilter struct {
	Upcoming bool
	HostID   *string
}

// EventRepository reads scheduled events.
type EventRepository interface {
	List(ctx context.Context, filter EventFilter, page domain.Page) ([]domain.Event, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
}

// ArticleRepository reads articles.
type ArticleRepository interface {
	List(ctx context.Context, authorID *string, page domain.Page) ([]domain.Article, int64, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
}

// PodcastRepository reads podcasts.
type PodcastRepository interface {
	List(ctx context.Context, creatorID *string, page domain.Page) ([]domain.Podcast, int64, error)
}

const eventColumns = `e.id::text, e.title, e.description, e.status, e.start_time, e.end_time, e.location, e.price,
        e.host_id, u.name, u.avatar, e.created_at, e.updated_at`

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Status,
		&e.StartTime,
		&e.EndTime,
		&e.Location,
		&e.Price,
		&e.HostID,
		&e.HostName,
		&e.HostAvatar,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	const where = ` WHERE ($1::text IS NULL OR e.host_id = $1) AND (NOT $2::bool OR e.start_time > NOW())`
	order := ` ORDER BY e.start_time DESC`
	if filter.Upcoming {
		order = ` ORDER BY e.start_time ASC`
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events e`+where, filter.HostID, filter.Upcoming).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events e LEFT JOIN users u ON u.id = e.host_id`+where+order+` LIMIT $3 OFFSET $4`,
		filter.HostID, filter.Upcoming, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0, page.Limit)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, *e)
	}
	return events, total, mapError(rows.Err())
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e LEFT JOIN users u ON u.id = e.host_id WHERE e.id = $1`, id))
}

const articleColumns = `id::text, title, content, slug, author_id, published_at, created_at, updated_at`

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository instantiates repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Slug, &a.AuthorID, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *articleRepository) List(ctx context.Context, authorID *string, page domain.Page) ([]domain.Article, int64, error) {
	const where = ` WHERE ($1::text IS NULL OR author_id = $1)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles`+where, authorID).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+articleColumns+` FROM articles`+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		authorID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0, page.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, *a)
	}
	return articles, total, mapError(rows.Err())
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1`, slug))
}

type podcastRepository struct {
	pool *pgxpool.Pool
}

// NewPodcastRepository instantiates repository.
func NewPodcastRepository(pool *pgxpool.Pool) PodcastRepository {
	return &podcastRepository{pool: pool}
}

func (r *podcastRepository) List(ctx context.Context, creatorID *string, page domain.Page) ([]domain.Podcast, int64, error) {
	const where = ` WHERE ($1::text IS NULL OR creator_id = $1)`
	const query = `
        SELECT id::text, title, description, creator_id, episode_count, total_duration, created_at, updated_at
        FROM podcasts` + where + `
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM podcasts`+where, creatorID).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.Query(ctx, query, creatorID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	podcasts := make([]domain.Podcast, 0, page.Limit)
	for rows.Next() {
		var p domain.Podcast
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.CreatorID,
			&p.EpisodeCount,
			&p.TotalDuration,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, 0, mapError(err)
		}
		podcasts = append(podcasts, p)
	}
	return podcasts, total, mapError(rows.Err())
}
