package worker

import (
	"context"

	"github.com/funify/funify-api/internal/service"
)

// StartNotificationWorker subscribes the notification service to platform
// events and runs webhook delivery until ctx is cancelled. The returned
// channel closes once delivery has stopped.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService) <-chan struct{} {
	done := make(chan struct{})
	if notificationService == nil {
		close(done)
		return done
	}

	notificationService.RegisterHandlers()
	go func() {
		defer close(done)
		notificationService.Run(ctx)
	}()
	return done
}
