package notificationservice

import (
	"context"
	"errors"
	"strconv"

	notificationdomain "github.com/funfirstplay/matchup/app/modules/notification/domain"
	notificationdb "github.com/funfirstplay/matchup/app/modules/notification/infrastructure/repositories"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	"github.com/funfirstplay/matchup/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	msgNotFound        = "Notification not found"
	msgForbiddenAccess = "Not authorized to access this notification"
	msgForbiddenUpdate = "Not authorized to update this notification"
	msgForbiddenDelete = "Not authorized to delete this notification"
)

// Store persists one notification request.
func (s *NotificationService) Store(ctx context.Context, messageID string, req notificationevents.RequestedPayloadV1) error {
	result, err := withTelemetry(s, ctx, "Store", messageID, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		if _, err := uuid.Parse(messageID); err != nil {
			return failure[bool](apperrors.Validation("Invalid message id"))
		}
		if req.UserID <= 0 {
			return failure[bool](apperrors.Validation("Notification recipient is required"))
		}
		if !req.Type.IsValid() {
			return failure[bool](apperrors.Validation("Invalid notification type"))
		}

		channel := req.Channel
		if channel == "" {
			channel = notificationevents.DefaultChannel
		}

		inserted, err := s.repo.Create(ctx, nil, &notificationdb.Notification{
			MessageID:      messageID,
			UserID:         req.UserID,
			MatchID:        req.MatchID,
			Type:           string(req.Type),
			Message:        req.Message,
			Channel:        channel,
			DeliveryStatus: notificationdomain.DeliveryPending,
		})
		if err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		if inserted {
			s.metrics.RecordStored(ctx, string(req.Type))
		}
		return results.SuccessResult[bool, error](inserted), nil
	})

	_, err = unwrap(result, err)
	return err
}

// List returns a page of the user's notifications and their unread count.
func (s *NotificationService) List(ctx context.Context, userID int64, filter notificationdomain.ListFilter) (*notificationdomain.Page, error) {
	filter = filter.Normalize()

	result, err := withTelemetry(s, ctx, "List", strconv.FormatInt(userID, 10), func(ctx context.Context) (results.OperationResult[*notificationdomain.Page, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*notificationdomain.Page, error], error) {
			rows, err := s.repo.ListByUser(ctx, db, userID, filter.IncludeRead, filter.Limit, filter.Offset)
			if err != nil {
				return results.OperationResult[*notificationdomain.Page, error]{}, err
			}
			unread, err := s.repo.CountUnread(ctx, db, userID)
			if err != nil {
				return results.OperationResult[*notificationdomain.Page, error]{}, err
			}

			page := &notificationdomain.Page{
				Notifications: make([]notificationdomain.Notification, 0, len(rows)),
				UnreadCount:   unread,
			}
			for i := range rows {
				page.Notifications = append(page.Notifications, *toDomain(&rows[i]))
			}
			return results.SuccessResult[*notificationdomain.Page, error](page), nil
		})
	})
	return unwrap(result, err)
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	result, err := withTelemetry(s, ctx, "UnreadCount", strconv.FormatInt(userID, 10), func(ctx context.Context) (results.OperationResult[int, error], error) {
		count, err := s.repo.CountUnread(ctx, nil, userID)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](count), nil
	})
	return unwrap(result, err)
}

// Get returns one notification owned by the caller.
func (s *NotificationService) Get(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, error) {
	result, err := withTelemetry(s, ctx, "Get", strconv.FormatInt(notificationID, 10), func(ctx context.Context) (results.OperationResult[*notificationdomain.Notification, error], error) {
		row, fail, err := s.owned(ctx, nil, callerID, notificationID, msgForbiddenAccess)
		if err != nil || fail != nil {
			return failOr[*notificationdomain.Notification](fail, err)
		}
		return results.SuccessResult[*notificationdomain.Notification, error](toDomain(row)), nil
	})
	return unwrap(result, err)
}

type markReadResult struct {
	notification *notificationdomain.Notification
	alreadyRead  bool
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, notificationID int64) (*notificationdomain.Notification, bool, error) {
	result, err := withTelemetry(s, ctx, "MarkRead", strconv.FormatInt(notificationID, 10), func(ctx context.Context) (results.OperationResult[markReadResult, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[markReadResult, error], error) {
			row, fail, err := s.owned(ctx, db, callerID, notificationID, msgForbiddenUpdate)
			if err != nil || fail != nil {
				return failOr[markReadResult](fail, err)
			}
			if row.ReadAt != nil {
				return results.SuccessResult[markReadResult, error](markReadResult{notification: toDomain(row), alreadyRead: true}), nil
			}

			updated, err := s.repo.MarkRead(ctx, db, notificationID, s.clock.Now())
			if err != nil {
				return results.OperationResult[markReadResult, error]{}, err
			}
			return results.SuccessResult[markReadResult, error](markReadResult{notification: toDomain(updated)}), nil
		})
	})

	out, err := unwrap(result, err)
	if err != nil {
		return nil, false, err
	}
	return out.notification, out.alreadyRead, nil
}

// MarkAllRead marks every unread notification of the caller as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, callerID int64) (int, error) {
	result, err := withTelemetry(s, ctx, "MarkAllRead", strconv.FormatInt(callerID, 10), func(ctx context.Context) (results.OperationResult[int, error], error) {
		n, err := s.repo.MarkAllRead(ctx, nil, callerID, s.clock.Now())
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](n), nil
	})
	return unwrap(result, err)
}

// Delete removes one of the caller's notifications.
func (s *NotificationService) Delete(ctx context.Context, callerID, notificationID int64) error {
	result, err := withTelemetry(s, ctx, "Delete", strconv.FormatInt(notificationID, 10), func(ctx context.Context) (results.OperationResult[struct{}, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
			_, fail, err := s.owned(ctx, db, callerID, notificationID, msgForbiddenDelete)
			if err != nil || fail != nil {
				return failOr[struct{}](fail, err)
			}
			if err := s.repo.Delete(ctx, db, notificationID); err != nil {
				if errors.Is(err, notificationdb.ErrNotFound) {
					return failure[struct{}](apperrors.NotFound(msgNotFound))
				}
				return results.OperationResult[struct{}, error]{}, err
			}
			return results.SuccessResult[struct{}, error](struct{}{}), nil
		})
	})
	_, err = unwrap(result, err)
	return err
}

// owned loads a notification and checks the caller is its recipient.
func (s *NotificationService) owned(ctx context.Context, db bun.IDB, callerID, notificationID int64, forbidden string) (*notificationdb.Notification, *apperrors.Error, error) {
	row, err := s.repo.Get(ctx, db, notificationID)
	if err != nil {
		if errors.Is(err, notificationdb.ErrNotFound) {
			return nil, apperrors.NotFound(msgNotFound), nil
		}
		return nil, nil, err
	}
	if row.UserID != callerID {
		return nil, apperrors.Forbidden(forbidden), nil
	}
	return row, nil, nil
}

func failOr[S any](fail *apperrors.Error, err error) (results.OperationResult[S, error], error) {
	if err != nil {
		return results.OperationResult[S, error]{}, err
	}
	return failure[S](fail)
}

func toDomain(n *notificationdb.Notification) *notificationdomain.Notification {
	return &notificationdomain.Notification{
		ID:             n.ID,
		UserID:         n.UserID,
		MatchID:        n.MatchID,
		Type:           notificationevents.Type(n.Type),
		Message:        n.Message,
		Channel:        n.Channel,
		DeliveryStatus: n.DeliveryStatus,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
		SportID:        n.SportID,
		SportName:      n.SportName,
	}
}
