package dto

import "github.com/funify/funify-api/internal/service"

// Pagination describes the page returned and the size of the whole set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// DataResponse wraps a single payload.
type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// ListResponse wraps one page of a listing.
type ListResponse[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// OK wraps data in a success envelope.
func OK[T any](data T) DataResponse[T] {
	return DataResponse[T]{Success: true, Data: data}
}

// NewListResponse builds the list envelope; pages is ceil(total/limit).
func NewListResponse[T any](res *service.PageResult[T]) ListResponse[T] {
	var pages int64
	if res.Page.Limit > 0 {
		pages = (res.Total + int64(res.Page.Limit) - 1) / int64(res.Page.Limit)
	}
	return ListResponse[T]{
		Success: true,
		Data:    res.Items,
		Pagination: Pagination{
			Page:  res.Page.Number,
			Limit: res.Page.Limit,
			Total: res.Total,
			Pages: pages,
		},
	}
}
