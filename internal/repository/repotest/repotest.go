// Package repotest provides in-memory repository implementations for tests.
package repotest

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/repository"
)

// Clock hands out strictly increasing timestamps so ordering by creation
// time is deterministic.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now advances the clock by one second and returns it.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func defaultClock() *Clock {
	return NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func paginate[T any](items []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}
	return append([]T{}, items[start:end]...)
}

func newestFirst[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu    sync.Mutex
	clock *Clock
	rows  map[string]domain.User
}

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{clock: defaultClock(), rows: map[string]domain.User{}}
}

var _ repository.UserRepository = (*Users)(nil)

func (u *Users) Create(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.rows {
		if existing.Email == user.Email ||
			(user.Username != nil && existing.Username != nil && *existing.Username == *user.Username) ||
			(user.GitHubID != nil && existing.GitHubID != nil && *existing.GitHubID == *user.GitHubID) {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := u.clock.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	u.rows[user.ID] = *user
	return nil
}

func (u *Users) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.IsCreator != nil {
		user.IsCreator = *patch.IsCreator
	}
	user.UpdatedAt = u.clock.Now()
	u.rows[id] = user
	return &user, nil
}

func (u *Users) SetCreator(ctx context.Context, id string) (*domain.User, error) {
	yes := true
	return u.Update(ctx, id, domain.UserPatch{IsCreator: &yes})
}

func (u *Users) find(match func(domain.User) bool) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.rows {
		if match(user) {
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (u *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	return u.find(func(user domain.User) bool { return user.ID == id })
}

func (u *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return u.find(func(user domain.User) bool { return user.Email == email })
}

func (u *Users) GetByGitHubID(_ context.Context, githubID int64) (*domain.User, error) {
	return u.find(func(user domain.User) bool { return user.GitHubID != nil && *user.GitHubID == githubID })
}

func (u *Users) ExistsByEmailOrUsername(_ context.Context, email string, username *string) (bool, error) {
	_, err := u.find(func(user domain.User) bool {
		return user.Email == email || (username != nil && user.Username != nil && *user.Username == *username)
	})
	return err == nil, nil
}

func (u *Users) ListCreators(_ context.Context, page domain.Page) ([]domain.User, int64, error) {
	u.mu.Lock()
	creators := []domain.User{}
	for _, user := range u.rows {
		if user.IsCreator {
			creators = append(creators, user)
		}
	}
	u.mu.Unlock()
	newestFirst(creators, func(x domain.User) time.Time { return x.CreatedAt })
	return paginate(creators, page), int64(len(creators)), nil
}

func (u *Users) GetCreatorByUsername(_ context.Context, username string) (*domain.User, error) {
	return u.find(func(user domain.User) bool {
		return user.IsCreator && user.Username != nil && *user.Username == username
	})
}

// Delete removes a row; used to simulate accounts vanishing between requests.
func (u *Users) Delete(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.rows, id)
}

// Posts is an in-memory repository.PostRepository.
type Posts struct {
	mu    sync.Mutex
	clock *Clock
	rows  map[string]domain.Post
}

// NewPosts returns an empty store.
func NewPosts() *Posts {
	return &Posts{clock: defaultClock(), rows: map[string]domain.Post{}}
}

var _ repository.PostRepository = (*Posts)(nil)

func (p *Posts) List(_ context.Context, filter repository.PostFilter, page domain.Page) ([]domain.Post, int64, error) {
	p.mu.Lock()
	out := []domain.Post{}
	for _, post := range p.rows {
		if filter.UserID == nil || post.UserID == *filter.UserID {
			out = append(out, post)
		}
	}
	p.mu.Unlock()
	newestFirst(out, func(x domain.Post) time.Time { return x.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}

func (p *Posts) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	post, ok := p.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &post, nil
}

func (p *Posts) Create(_ context.Context, post *domain.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	post.ID = uuid.NewString()
	now := p.clock.Now()
	post.CreatedAt, post.UpdatedAt = now, now
	p.rows[post.ID] = *post
	return nil
}

func (p *Posts) Update(_ context.Context, post *domain.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, ok := p.rows[post.ID]
	if !ok || existing.UserID != post.UserID {
		return pgx.ErrNoRows
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = p.clock.Now()
	p.rows[post.ID] = *post
	return nil
}

func (p *Posts) Delete(_ context.Context, id, ownerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, ok := p.rows[id]
	if !ok || existing.UserID != ownerID {
		return pgx.ErrNoRows
	}
	delete(p.rows, id)
	return nil
}

// Products is an in-memory repository.ProductRepository.
type Products struct {
	mu    sync.Mutex
	clock *Clock
	rows  map[string]domain.Product
}

// NewProducts returns an empty store.
func NewProducts() *Products {
	return &Products{clock: defaultClock(), rows: map[string]domain.Product{}}
}

var _ repository.ProductRepository = (*Products)(nil)

func (p *Products) all() []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Product, 0, len(p.rows))
	for _, product := range p.rows {
		out = append(out, product)
	}
	newestFirst(out, func(x domain.Product) time.Time { return x.CreatedAt })
	return out
}

func (p *Products) List(_ context.Context, filter repository.ProductFilter, page domain.Page) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, product := range p.all() {
		if filter.UserID == nil || product.UserID == *filter.UserID {
			out = append(out, product)
		}
	}
	return paginate(out, page), int64(len(out)), nil
}

func (p *Products) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	product, ok := p.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (p *Products) Create(_ context.Context, product *domain.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	product.ID = uuid.NewString()
	if product.Currency == "" {
		product.Currency = domain.DefaultCurrency
	}
	now := p.clock.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	p.rows[product.ID] = *product
	return nil
}

func (p *Products) Update(_ context.Context, product *domain.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, ok := p.rows[product.ID]
	if !ok || existing.UserID != product.UserID {
		return pgx.ErrNoRows
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = p.clock.Now()
	p.rows[product.ID] = *product
	return nil
}

func (p *Products) Delete(_ context.Context, id, ownerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, ok := p.rows[id]
	if !ok || existing.UserID != ownerID {
		return pgx.ErrNoRows
	}
	delete(p.rows, id)
	return nil
}

func (p *Products) Meta(context.Context) (*domain.ProductMeta, error) {
	meta := domain.ProductMeta{}
	creators := map[string]struct{}{}
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, product := range p.all() {
		meta.Total++
		meta.TotalRevenue += product.Price
		creators[product.UserID] = struct{}{}
		if product.IsDigital {
			meta.Featured++
		}
		minPrice = math.Min(minPrice, product.Price)
		maxPrice = math.Max(maxPrice, product.Price)
	}
	if meta.Total > 0 {
		meta.MinPrice, meta.MaxPrice = minPrice, maxPrice
	}
	meta.Creators = int64(len(creators))
	meta.Types = []domain.ProductTypeCount{{Type: "DIGITAL", Count: meta.Featured}}
	return &meta, nil
}

func (p *Products) Collections(context.Context) (*domain.ProductCollections, error) {
	newest := p.all()
	featured := []domain.Product{}
	for _, product := range newest {
		if product.IsDigital {
			featured = append(featured, product)
		}
	}
	byPrice := append([]domain.Product{}, newest...)
	sort.SliceStable(byPrice, func(i, j int) bool { return byPrice[i].Price > byPrice[j].Price })

	shelf := domain.Page{Number: 1, Limit: 6}
	return &domain.ProductCollections{
		Featured:    paginate(featured, shelf),
		TopSelling:  paginate(byPrice, shelf),
		NewArrivals: paginate(newest, shelf),
	}, nil
}

// Campaigns is an in-memory repository.CampaignRepository. Users, when set,
// backs the creator join of GetBySlug.
type Campaigns struct {
	mu    sync.Mutex
	clock *Clock
	rows  map[string]domain.Campaign
	Users *Users
}

// NewCampaigns returns an empty store.
func NewCampaigns(users *Users) *Campaigns {
	return &Campaigns{clock: defaultClock(), rows: map[string]domain.Campaign{}, Users: users}
}

var _ repository.CampaignRepository = (*Campaigns)(nil)

func (c *Campaigns) filter(keep func(domain.Campaign) bool) []domain.Campaign {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []domain.Campaign{}
	for _, campaign := range c.rows {
		if keep(campaign) {
			out = append(out, campaign)
		}
	}
	newestFirst(out, func(x domain.Campaign) time.Time { return x.CreatedAt })
	return out
}

func (c *Campaigns) List(_ context.Context, page domain.Page) ([]domain.Campaign, int64, error) {
	all := c.filter(func(domain.Campaign) bool { return true })
	return paginate(all, page), int64(len(all)), nil
}

func (c *Campaigns) ListByCreator(_ context.Context, creatorID string) ([]domain.Campaign, error) {
	return c.filter(func(x domain.Campaign) bool { return x.CreatorID == creatorID }), nil
}

func (c *Campaigns) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	campaign, ok := c.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &campaign, nil
}

func (c *Campaigns) GetBySlug(ctx context.Context, slug string) (*domain.CampaignDetail, error) {
	matches := c.filter(func(x domain.Campaign) bool { return x.Slug == slug })
	if len(matches) == 0 {
		return nil, pgx.ErrNoRows
	}
	detail := &domain.CampaignDetail{Campaign: matches[0]}
	if c.Users != nil {
		if user, err := c.Users.GetByID(ctx, detail.CreatorID); err == nil {
			detail.Creator = &domain.CampaignCreator{
				ID:       user.ID,
				Username: user.Username,
				Name:     user.Name,
				Avatar:   user.Avatar,
				Bio:      user.Bio,
			}
		}
	}
	return detail, nil
}

func (c *Campaigns) SlugExists(_ context.Context, slug string) (bool, error) {
	return len(c.filter(func(x domain.Campaign) bool { return x.Slug == slug })) > 0, nil
}

func (c *Campaigns) Create(_ context.Context, campaign *domain.Campaign) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.rows {
		if existing.Slug == campaign.Slug {
			return repository.ErrDuplicate
		}
	}
	campaign.ID = uuid.NewString()
	now := c.clock.Now()
	campaign.CreatedAt, campaign.UpdatedAt = now, now
	c.rows[campaign.ID] = *campaign
	return nil
}

func (c *Campaigns) Update(_ context.Context, campaign *domain.Campaign) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.rows[campaign.ID]
	if !ok || existing.CreatorID != campaign.CreatorID {
		return pgx.ErrNoRows
	}
	campaign.Slug = existing.Slug
	campaign.CurrentAmount = existing.CurrentAmount
	campaign.CreatedAt = existing.CreatedAt
	campaign.UpdatedAt = c.clock.Now()
	c.rows[campaign.ID] = *campaign
	return nil
}

func (c *Campaigns) Delete(_ context.Context, id, creatorID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.rows[id]
	if !ok || existing.CreatorID != creatorID {
		return pgx.ErrNoRows
	}
	delete(c.rows, id)
	return nil
}

// Content is an in-memory store for events, articles and podcasts. Rows are
// seeded directly through the exported slices.
type Content struct {
	Events   []domain.Event
	Articles []domain.Article
	Podcasts []domain.Podcast
	Now      func() time.Time
}

var (
	_ repository.EventRepository   = contentEvents{}
	_ repository.ArticleRepository = contentArticles{}
	_ repository.PodcastRepository = contentPodcasts{}
)

// EventRepo exposes the events view.
func (c *Content) EventRepo() repository.EventRepository { return contentEvents{c} }

// ArticleRepo exposes the articles view.
func (c *Content) ArticleRepo() repository.ArticleRepository { return contentArticles{c} }

// PodcastRepo exposes the podcasts view.
func (c *Content) PodcastRepo() repository.PodcastRepository { return contentPodcasts{c} }

type contentEvents struct{ c *Content }

func (v contentEvents) List(_ context.Context, filter repository.EventFilter, page domain.Page) ([]domain.Event, int64, error) {
	now := time.Now()
	if v.c.Now != nil {
		now = v.c.Now()
	}
	out := []domain.Event{}
	for _, e := range v.c.Events {
		if filter.HostID != nil && e.HostID != *filter.HostID {
			continue
		}
		if filter.Upcoming && !e.StartTime.After(now) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if filter.Upcoming {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return paginate(out, page), int64(len(out)), nil
}

func (v contentEvents) GetByID(_ context.Context, id string) (*domain.Event, error) {
	for _, e := range v.c.Events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type contentArticles struct{ c *Content }

func (v contentArticles) List(_ context.Context, authorID *string, page domain.Page) ([]domain.Article, int64, error) {
	out := []domain.Article{}
	for _, a := range v.c.Articles {
		if authorID == nil || a.AuthorID == *authorID {
			out = append(out, a)
		}
	}
	newestFirst(out, func(x domain.Article) time.Time { return x.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}

func (v contentArticles) GetBySlug(_ context.Context, slug string) (*domain.Article, error) {
	for _, a := range v.c.Articles {
		if a.Slug == slug {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type contentPodcasts struct{ c *Content }

func (v contentPodcasts) List(_ context.Context, creatorID *string, page domain.Page) ([]domain.Podcast, int64, error) {
	out := []domain.Podcast{}
	for _, p := range v.c.Podcasts {
		if creatorID == nil || p.CreatorID == *creatorID {
			out = append(out, p)
		}
	}
	newestFirst(out, func(x domain.Podcast) time.Time { return x.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}
