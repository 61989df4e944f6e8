package dto

import (
	"time"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/service"
)

// PostRequest creates or replaces a post.
type PostRequest struct {
	Title     string  `json:"title" validate:"required,max=255"`
	Content   *string `json:"content"`
	MediaURL  *string `json:"media_url" validate:"omitempty,url"`
	MediaType *string `json:"media_type" validate:"omitempty,max=50"`
	IsPremium bool    `json:"is_premium"`
}

func (r PostRequest) Input() service.PostInput {
	return service.PostInput{
		Title:     r.Title,
		Content:   r.Content,
		MediaURL:  r.MediaURL,
		MediaType: r.MediaType,
		IsPremium: r.IsPremium,
	}
}

// ProductRequest creates or replaces a product.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3,alpha"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	IsDigital   bool    `json:"is_digital"`
	DownloadURL *string `json:"download_url" validate:"omitempty,url"`
}

func (r ProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		ImageURL:    r.ImageURL,
		IsDigital:   r.IsDigital,
		DownloadURL: r.DownloadURL,
	}
}

// PriceRange bounds product prices.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductStats are catalogue totals.
type ProductStats struct {
	TotalProducts int64   `json:"totalProducts"`
	FeaturedCount int64   `json:"featuredCount"`
	CreatorCount  int64   `json:"creatorCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// ProductMetaResponse is the storefront summary.
type ProductMetaResponse struct {
	Types      []domain.ProductTypeCount `json:"types"`
	PriceRange PriceRange                `json:"priceRange"`
	Stats      ProductStats              `json:"stats"`
}

// NewProductMetaResponse shapes the catalogue summary.
func NewProductMetaResponse(m *domain.ProductMeta) ProductMetaResponse {
	return ProductMetaResponse{
		Types:      m.Types,
		PriceRange: PriceRange{Min: m.MinPrice, Max: m.MaxPrice},
		Stats: ProductStats{
			TotalProducts: m.Total,
			FeaturedCount: m.Featured,
			CreatorCount:  m.Creators,
			TotalRevenue:  m.TotalRevenue,
		},
	}
}

// ProductCollectionsResponse groups the storefront shelves.
type ProductCollectionsResponse struct {
	Featured    []domain.Product `json:"featured"`
	TopSelling  []domain.Product `json:"topSelling"`
	NewArrivals []domain.Product `json:"newArrivals"`
}

// CampaignCreateRequest starts a campaign.
type CampaignCreateRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"required"`
	Story       *string    `json:"story"`
	GoalAmount  float64    `json:"goal_amount" validate:"required,gt=0"`
	CoverImage  *string    `json:"cover_image" validate:"omitempty,url"`
	VideoURL    *string    `json:"video_url" validate:"omitempty,url"`
	Category    *string    `json:"category" validate:"omitempty,max=50"`
	EndDate     *time.Time `json:"end_date"`
}

func (r CampaignCreateRequest) Input() service.CampaignCreateInput {
	return service.CampaignCreateInput{
		Title:       r.Title,
		Description: r.Description,
		Story:       r.Story,
		GoalAmount:  r.GoalAmount,
		CoverImage:  r.CoverImage,
		VideoURL:    r.VideoURL,
		Category:    r.Category,
		EndDate:     r.EndDate,
	}
}

// CampaignUpdateRequest changes the fields present in the body.
type CampaignUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	Story       *string    `json:"story"`
	GoalAmount  *float64   `json:"goal_amount" validate:"omitempty,gt=0"`
	Status      *string    `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE COMPLETED CANCELLED"`
	CoverImage  *string    `json:"cover_image" validate:"omitempty,url"`
	VideoURL    *string    `json:"video_url" validate:"omitempty,url"`
	Category    *string    `json:"category" validate:"omitempty,max=50"`
	EndDate     *time.Time `json:"end_date"`
}

func (r CampaignUpdateRequest) Input() service.CampaignUpdateInput {
	in := service.CampaignUpdateInput{
		Title:       r.Title,
		Description: r.Description,
		Story:       r.Story,
		GoalAmount:  r.GoalAmount,
		CoverImage:  r.CoverImage,
		VideoURL:    r.VideoURL,
		Category:    r.Category,
		EndDate:     r.EndDate,
	}
	if r.Status != nil {
		status := domain.CampaignStatus(*r.Status)
		in.Status = &status
	}
	return in
}
