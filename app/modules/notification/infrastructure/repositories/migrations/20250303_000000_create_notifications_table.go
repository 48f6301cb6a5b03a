package notificationmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating notifications table...")

		// match_id carries no foreign key: records can arrive after their
		// match was deleted.
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS notifications (
				notification_id BIGSERIAL PRIMARY KEY,
				message_id UUID NOT NULL UNIQUE,
				user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
				match_id BIGINT,
				type VARCHAR(32) NOT NULL
					CHECK (type IN ('match_invitation', 'match_canceled', 'match_updated', 'invitation_response')),
				message TEXT NOT NULL,
				channel VARCHAR(32) NOT NULL DEFAULT 'email',
				delivery_status VARCHAR(32) NOT NULL DEFAULT 'pending',
				read_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_notifications_user_created
				ON notifications(user_id, created_at DESC);
			CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
				ON notifications(user_id) WHERE read_at IS NULL;
		`)
		if err != nil {
			return fmt.Errorf("failed to create notifications table: %w", err)
		}

		fmt.Println("Notifications table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping notifications table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS notifications`); err != nil {
			return fmt.Errorf("failed to drop notifications table: %w", err)
		}

		fmt.Println("Notifications table dropped successfully!")
		return nil
	})
}
