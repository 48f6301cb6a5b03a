package notificationhandlers

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/funfirstplay/matchup/app/shared/apperrors"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// HandleNotificationRequested stores a notification request received from
// the bus. Malformed or invalid payloads are acked and dropped since
// redelivery cannot fix them.
func (h *NotificationHandlers) HandleNotificationRequested(msg *message.Message) error {
	ctx := msg.Context()
	correlationID := middleware.MessageCorrelationID(msg)

	var payload notificationevents.RequestedPayloadV1
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.logger.ErrorContext(ctx, "Dropping malformed notification request",
			slog.String("message_id", msg.UUID),
			slog.String("correlation_id", correlationID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	h.logger.InfoContext(ctx, "Received notification request",
		slog.String("message_id", msg.UUID),
		slog.String("correlation_id", correlationID),
		slog.Int64("user_id", payload.UserID),
		slog.String("type", string(payload.Type)),
	)

	if err := h.service.Store(ctx, msg.UUID, payload); err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			h.logger.WarnContext(ctx, "Dropping invalid notification request",
				slog.String("message_id", msg.UUID),
				slog.String("correlation_id", correlationID),
				slog.String("error", err.Error()),
			)
			return nil
		}
		return fmt.Errorf("failed to store notification request: %w", err)
	}
	return nil
}
