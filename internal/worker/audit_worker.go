package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-auth-service/internal/events"
)

// StartAuditWorker subscribes a structured audit logger to every auth event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, auditHandler(audit))
	}
}

func auditHandler(logger *zap.Logger) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Time("timestamp", event.Timestamp),
		}
		if event.SubjectID != "" {
			fields = append(fields, zap.String("subject_id", event.SubjectID))
		}
		if event.Username != "" {
			fields = append(fields, zap.String("username", event.Username))
		}
		if event.Payload != nil {
			fields = append(fields, zap.Any("payload", event.Payload))
		}

		if event.Type == events.EventLoginFailed {
			logger.Warn("auth event", fields...)
			return nil
		}
		logger.Info("auth event", fields...)
		return nil
	}
}
