package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funify/funify-api/internal/domain"
	"github.com/funify/funify-api/internal/events"
	"github.com/funify/funify-api/internal/repository"
	apperrors "github.com/funify/funify-api/pkg/util"
)

// PageResult is one page of a listing plus the size of the whole filtered set.
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  domain.Page
}

func newPageResult[T any](items []T, total int64, page domain.Page) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{Items: items, Total: total, Page: page}
}

// publisher stamps and publishes domain events. Delivery failures are
// logged and never fail the request that produced the event.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger, now: time.Now}
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("resource_id", event.ResourceID),
			zap.Error(err))
	}
}

// notFound turns a missing row into NotFound for resource and passes other errors through.
func notFound(err error, resource string) error {
	if repository.NotFound(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
