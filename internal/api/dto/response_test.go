package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/service"
)

func TestNewListResponse_Pages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{total: 0, limit: 10, want: 0},
		{total: 5, limit: 2, want: 3},
		{total: 4, limit: 2, want: 2},
		{total: 1, limit: 100, want: 1},
	}
	for _, tt := range tests {
		res := NewListResponse(&service.PageResult[int]{Items: []int{}, Total: tt.total, Page: domain.Page{Number: 1, Limit: tt.limit}})
		assert.Equal(t, tt.want, res.Pagination.Pages, "total=%d limit=%d", tt.total, tt.limit)
		assert.True(t, res.Success)
	}
}

func TestCampaignUpdateRequest_Input(t *testing.T) {
	status := "ACTIVE"
	in := CampaignUpdateRequest{Status: &status}.Input()
	if assert.NotNil(t, in.Status) {
		assert.Equal(t, domain.CampaignStatusActive, *in.Status)
	}
	assert.Nil(t, CampaignUpdateRequest{}.Input().Status)
}
