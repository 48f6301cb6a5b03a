package directorymigrations

import (
	"context"
	"fmt"

	directorydb "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users, sports and skill_levels tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			models := []any{
				(*directorydb.User)(nil),
				(*directorydb.Sport)(nil),
				(*directorydb.SkillLevel)(nil),
			}
			for _, model := range models {
				if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to create directory table: %w", err)
				}
			}

			fmt.Println("Directory tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back directory tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			models := []any{
				(*directorydb.SkillLevel)(nil),
				(*directorydb.Sport)(nil),
				(*directorydb.User)(nil),
			}
			for _, model := range models {
				if _, err := tx.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop directory table: %w", err)
				}
			}
			return nil
		})
	})
}
