package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	directorydb "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/repositories"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"
)

// DataGenerator inserts realistic fixture rows.
type DataGenerator struct {
	faker *gofakeit.Faker
}

// NewDataGenerator returns a generator seeded for reproducible data.
func NewDataGenerator(seed uint64) *DataGenerator {
	return &DataGenerator{faker: gofakeit.New(seed)}
}

// InsertUsers creates n users with unique usernames and emails.
func (g *DataGenerator) InsertUsers(t *testing.T, ctx context.Context, db bun.IDB, n int) []directorydb.User {
	t.Helper()
	users := make([]directorydb.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, directorydb.User{
			Username:  fmt.Sprintf("%s_%d", g.faker.Username(), i),
			Email:     fmt.Sprintf("%d_%s", i, g.faker.Email()),
			FirstName: g.faker.FirstName(),
			LastName:  g.faker.LastName(),
		})
	}
	if _, err := db.NewInsert().Model(&users).Returning("*").Exec(ctx); err != nil {
		t.Fatalf("failed to insert users: %v", err)
	}
	return users
}

// InsertSport creates a sport with the given name.
func (g *DataGenerator) InsertSport(t *testing.T, ctx context.Context, db bun.IDB, name string) directorydb.Sport {
	t.Helper()
	description := g.faker.Sentence(6)
	sport := directorydb.Sport{Name: name, Description: &description}
	if _, err := db.NewInsert().Model(&sport).Returning("*").Exec(ctx); err != nil {
		t.Fatalf("failed to insert sport: %v", err)
	}
	return sport
}

// NewMatch builds a pending match row starting start and owned by creator.
func (g *DataGenerator) NewMatch(sportID, creator int64, start time.Time, minPlayers int) *matchdb.Match {
	location := g.faker.City()
	return &matchdb.Match{
		SportID:              sportID,
		StartTime:            start,
		EndTime:              start.Add(2 * time.Hour),
		Location:             &location,
		Status:               "pending_confirmation",
		MinPlayers:           minPlayers,
		ConfirmedPlayers:     1,
		ConfirmationDeadline: start.Add(-24 * time.Hour),
		AutoCancel:           true,
		CreatedBy:            creator,
	}
}
