package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/events"
)

// AuditService writes an audit log line for every collection mutation.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to every user event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.Int("user_id", event.UserID),
		zap.Time("at", event.Timestamp),
	}

	msg := string(event.Type)
	switch payload := event.Payload.(type) {
	case events.UserCreatedPayload:
		msg = "UserCreated"
	case events.UserUpdatedPayload:
		msg = "UserUpdated"
		fields = append(fields, zap.Strings("fields", payload.Fields))
	case events.UserDeletedPayload:
		msg = "UserDeleted"
		fields = append(fields, zap.Int("remaining", payload.Remaining))
	}

	a.logger.Info(msg, fields...)
	return nil
}
