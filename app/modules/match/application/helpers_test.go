package matchservice

import (
	"log/slog"
	"time"

	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	matchmetrics "github.com/funfirstplay/matchup/app/observability/metrics/match"
)

var testNow = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func newTestService(repo *FakeMatchRepo, dir *FakeDirectory, notifier *FakeNotifier) *MatchService {
	svc := NewMatchService(repo, dir, notifier, slog.Default(), matchmetrics.NewNoop(), nil, nil)
	svc.clock = &FakeClock{NowFn: func() time.Time { return testNow }}
	return svc
}

func ptr[T any](v T) *T { return &v }

func storedMatch(id, creator int64) *matchdb.Match {
	return &matchdb.Match{
		ID:                   id,
		SportID:              1,
		SportName:            "Tennis",
		StartTime:            time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:              time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Location:             ptr("Central Park"),
		Status:               "pending_confirmation",
		MinPlayers:           4,
		ConfirmedPlayers:     1,
		ConfirmationDeadline: time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		AutoCancel:           true,
		CreatedBy:            creator,
	}
}

func rosterOf(matchID int64, entries ...matchdb.MatchPlayer) []matchdb.MatchPlayer {
	for i := range entries {
		entries[i].MatchID = matchID
		if entries[i].ID == 0 {
			entries[i].ID = int64(100 + i)
		}
	}
	return entries
}

func player(userID int64, status string) matchdb.MatchPlayer {
	return matchdb.MatchPlayer{UserID: userID, Status: status}
}
