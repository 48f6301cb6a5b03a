package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches, match_players and player_responses tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matches (
					match_id BIGSERIAL PRIMARY KEY,
					sport_id BIGINT NOT NULL REFERENCES sports(sport_id),
					start_time TIMESTAMPTZ NOT NULL,
					end_time TIMESTAMPTZ NOT NULL,
					location TEXT,
					status VARCHAR(32) NOT NULL DEFAULT 'pending_confirmation'
						CHECK (status IN ('pending_confirmation', 'confirmed', 'canceled', 'completed')),
					required_skill_level BIGINT REFERENCES skill_levels(skill_level_id),
					min_players INTEGER NOT NULL CHECK (min_players >= 1),
					confirmed_players INTEGER NOT NULL DEFAULT 0 CHECK (confirmed_players >= 0),
					confirmation_deadline TIMESTAMPTZ NOT NULL,
					auto_cancel BOOLEAN NOT NULL DEFAULT TRUE,
					created_by BIGINT NOT NULL REFERENCES users(user_id),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT matches_end_after_start CHECK (end_time > start_time),
					CONSTRAINT matches_deadline_before_start CHECK (confirmation_deadline < start_time)
				);
				CREATE INDEX IF NOT EXISTS idx_matches_start_time ON matches(start_time);
				CREATE INDEX IF NOT EXISTS idx_matches_pending_deadline
					ON matches(confirmation_deadline)
					WHERE status = 'pending_confirmation' AND auto_cancel;
			`); err != nil {
				return fmt.Errorf("failed to create matches table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS match_players (
					match_player_id BIGSERIAL PRIMARY KEY,
					match_id BIGINT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
					user_id BIGINT NOT NULL REFERENCES users(user_id),
					status VARCHAR(16) NOT NULL DEFAULT 'invited'
						CHECK (status IN ('invited', 'confirmed', 'declined', 'maybe')),
					responded_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT match_players_match_user_key UNIQUE (match_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_match_players_user_id ON match_players(user_id);
			`); err != nil {
				return fmt.Errorf("failed to create match_players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS player_responses (
					response_id BIGSERIAL PRIMARY KEY,
					match_player_id BIGINT NOT NULL REFERENCES match_players(match_player_id) ON DELETE CASCADE,
					response_type VARCHAR(16) NOT NULL
						CHECK (response_type IN ('accepted', 'declined', 'maybe')),
					comment TEXT,
					response_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_player_responses_match_player
					ON player_responses(match_player_id, response_time DESC);
			`); err != nil {
				return fmt.Errorf("failed to create player_responses table: %w", err)
			}

			fmt.Println("Match tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back match tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS player_responses;
				DROP TABLE IF EXISTS match_players;
				DROP TABLE IF EXISTS matches;
			`); err != nil {
				return fmt.Errorf("failed to drop match tables: %w", err)
			}
			return nil
		})
	})
}
