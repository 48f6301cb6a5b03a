package notificationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a notification does not exist.
var ErrNotFound = errors.New("notification not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new notification repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, n *Notification) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewInsert().
		Model(n).
		ExcludeColumn("notification_id").
		On("CONFLICT (message_id) DO NOTHING").
		Returning("notification_id, created_at").
		Exec(ctx)
	if err != nil {
		// RETURNING yields no row when the conflict clause skipped the insert.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create notification: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read inserted rows: %w", err)
	}
	return rows > 0, nil
}

func (r *Impl) Get(ctx context.Context, db bun.IDB, notificationID int64) (*Notification, error) {
	db = r.resolveDB(db)
	n := new(Notification)
	err := db.NewSelect().
		Model(n).
		Where("n.notification_id = ?", notificationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (r *Impl) ListByUser(ctx context.Context, db bun.IDB, userID int64, includeRead bool, limit, offset int) ([]Notification, error) {
	db = r.resolveDB(db)
	var rows []Notification
	q := db.NewSelect().
		Model(&rows).
		ColumnExpr("n.*").
		ColumnExpr("m.sport_id AS sport_id").
		ColumnExpr("s.name AS sport_name").
		Join("LEFT JOIN matches AS m ON m.match_id = n.match_id").
		Join("LEFT JOIN sports AS s ON s.sport_id = m.sport_id").
		Where("n.user_id = ?", userID)
	if !includeRead {
		q = q.Where("n.read_at IS NULL")
	}
	err := q.
		OrderExpr("n.created_at DESC, n.notification_id DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return rows, nil
}

func (r *Impl) CountUnread(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Notification)(nil)).
		Where("n.user_id = ?", userID).
		Where("n.read_at IS NULL").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *Impl) MarkRead(ctx context.Context, db bun.IDB, notificationID int64, at time.Time) (*Notification, error) {
	db = r.resolveDB(db)
	n := new(Notification)
	err := db.NewUpdate().
		Model(n).
		Set("read_at = COALESCE(n.read_at, ?)", at).
		Where("n.notification_id = ?", notificationID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return n, nil
}

func (r *Impl) MarkAllRead(ctx context.Context, db bun.IDB, userID int64, at time.Time) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Notification)(nil)).
		Set("read_at = ?", at).
		Where("n.user_id = ?", userID).
		Where("n.read_at IS NULL").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read updated rows: %w", err)
	}
	return int(rows), nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, notificationID int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Notification)(nil)).
		Where("n.notification_id = ?", notificationID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
