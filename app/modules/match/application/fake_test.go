package matchservice

import (
	"context"
	"sync"
	"time"

	directorydomain "github.com/funfirstplay/matchup/app/modules/directory/domain"
	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	matchdb "github.com/funfirstplay/matchup/app/modules/match/infrastructure/repositories"
	notificationevents "github.com/funfirstplay/matchup/app/shared/events/notification"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Match Repo
// ------------------------

type FakeMatchRepo struct {
	trace []string

	CreateMatchFunc                func(ctx context.Context, db bun.IDB, match *matchdb.Match) error
	GetMatchFunc                   func(ctx context.Context, db bun.IDB, matchID int64) (*matchdb.Match, error)
	GetMatchForUpdateFunc          func(ctx context.Context, db bun.IDB, matchID int64) (*matchdb.Match, error)
	UpdateMatchFunc                func(ctx context.Context, db bun.IDB, match *matchdb.Match) error
	DeleteMatchFunc                func(ctx context.Context, db bun.IDB, matchID int64) error
	ListMatchesFunc                func(ctx context.Context, db bun.IDB, filter matchdomain.MatchFilter) ([]matchdb.Match, error)
	ListUserMatchesFunc            func(ctx context.Context, db bun.IDB, userID int64, status *matchdomain.PlayerStatus) ([]matchdb.UserMatch, error)
	ListExpiredUndersubscribedFunc func(ctx context.Context, db bun.IDB, now time.Time) ([]int64, error)
	IncrementConfirmedPlayersFunc  func(ctx context.Context, db bun.IDB, matchID int64) error
	DecrementConfirmedPlayersFunc  func(ctx context.Context, db bun.IDB, matchID int64) error
	AddPlayerFunc                  func(ctx context.Context, db bun.IDB, player *matchdb.MatchPlayer) error
	AddPlayersFunc                 func(ctx context.Context, db bun.IDB, players []matchdb.MatchPlayer) error
	GetPlayerFunc                  func(ctx context.Context, db bun.IDB, matchID, userID int64) (*matchdb.MatchPlayer, error)
	GetPlayersFunc                 func(ctx context.Context, db bun.IDB, matchID int64) ([]matchdb.MatchPlayer, error)
	UpdatePlayerStatusFunc         func(ctx context.Context, db bun.IDB, matchPlayerID int64, expected, status matchdomain.PlayerStatus, respondedAt time.Time) error
	RecordResponseFunc             func(ctx context.Context, db bun.IDB, response *matchdb.PlayerResponse) error
	GetResponsesFunc               func(ctx context.Context, db bun.IDB, matchPlayerID int64) ([]matchdb.PlayerResponse, error)
}

func NewFakeMatchRepo() *FakeMatchRepo {
	return &FakeMatchRepo{
		trace: []string{},
	}
}

func (f *FakeMatchRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeMatchRepo) CreateMatch(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	f.record("CreateMatch")
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeMatchRepo) GetMatch(ctx context.Context, db bun.IDB, matchID int64) (*matchdb.Match, error) {
	f.record("GetMatch")
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, db, matchID)
	}
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepo) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID int64) (*matchdb.Match, error) {
	f.record("GetMatchForUpdate")
	if f.GetMatchForUpdateFunc != nil {
		return f.GetMatchForUpdateFunc(ctx, db, matchID)
	}
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepo) UpdateMatch(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	f.record("UpdateMatch")
	if f.UpdateMatchFunc != nil {
		return f.UpdateMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeMatchRepo) DeleteMatch(ctx context.Context, db bun.IDB, matchID int64) error {
	f.record("DeleteMatch")
	if f.DeleteMatchFunc != nil {
		return f.DeleteMatchFunc(ctx, db, matchID)
	}
	return nil
}

func (f *FakeMatchRepo) ListMatches(ctx context.Context, db bun.IDB, filter matchdomain.MatchFilter) ([]matchdb.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeMatchRepo) ListUserMatches(ctx context.Context, db bun.IDB, userID int64, status *matchdomain.PlayerStatus) ([]matchdb.UserMatch, error) {
	f.record("ListUserMatches")
	if f.ListUserMatchesFunc != nil {
		return f.ListUserMatchesFunc(ctx, db, userID, status)
	}
	return nil, nil
}

func (f *FakeMatchRepo) ListExpiredUndersubscribed(ctx context.Context, db bun.IDB, now time.Time) ([]int64, error) {
	f.record("ListExpiredUndersubscribed")
	if f.ListExpiredUndersubscribedFunc != nil {
		return f.ListExpiredUndersubscribedFunc(ctx, db, now)
	}
	return nil, nil
}

func (f *FakeMatchRepo) IncrementConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64) error {
	f.record("IncrementConfirmedPlayers")
	if f.IncrementConfirmedPlayersFunc != nil {
		return f.IncrementConfirmedPlayersFunc(ctx, db, matchID)
	}
	return nil
}

func (f *FakeMatchRepo) DecrementConfirmedPlayers(ctx context.Context, db bun.IDB, matchID int64) error {
	f.record("DecrementConfirmedPlayers")
	if f.DecrementConfirmedPlayersFunc != nil {
		return f.DecrementConfirmedPlayersFunc(ctx, db, matchID)
	}
	return nil
}

func (f *FakeMatchRepo) AddPlayer(ctx context.Context, db bun.IDB, player *matchdb.MatchPlayer) error {
	f.record("AddPlayer")
	if f.AddPlayerFunc != nil {
		return f.AddPlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakeMatchRepo) AddPlayers(ctx context.Context, db bun.IDB, players []matchdb.MatchPlayer) error {
	f.record("AddPlayers")
	if f.AddPlayersFunc != nil {
		return f.AddPlayersFunc(ctx, db, players)
	}
	return nil
}

func (f *FakeMatchRepo) GetPlayer(ctx context.Context, db bun.IDB, matchID, userID int64) (*matchdb.MatchPlayer, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, matchID, userID)
	}
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepo) GetPlayers(ctx context.Context, db bun.IDB, matchID int64) ([]matchdb.MatchPlayer, error) {
	f.record("GetPlayers")
	if f.GetPlayersFunc != nil {
		return f.GetPlayersFunc(ctx, db, matchID)
	}
	return nil, nil
}

func (f *FakeMatchRepo) UpdatePlayerStatus(ctx context.Context, db bun.IDB, matchPlayerID int64, expected, status matchdomain.PlayerStatus, respondedAt time.Time) error {
	f.record("UpdatePlayerStatus")
	if f.UpdatePlayerStatusFunc != nil {
		return f.UpdatePlayerStatusFunc(ctx, db, matchPlayerID, expected, status, respondedAt)
	}
	return nil
}

func (f *FakeMatchRepo) RecordResponse(ctx context.Context, db bun.IDB, response *matchdb.PlayerResponse) error {
	f.record("RecordResponse")
	if f.RecordResponseFunc != nil {
		return f.RecordResponseFunc(ctx, db, response)
	}
	return nil
}

func (f *FakeMatchRepo) GetResponses(ctx context.Context, db bun.IDB, matchPlayerID int64) ([]matchdb.PlayerResponse, error) {
	f.record("GetResponses")
	if f.GetResponsesFunc != nil {
		return f.GetResponsesFunc(ctx, db, matchPlayerID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeMatchRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ matchdb.Repository = (*FakeMatchRepo)(nil)

// ------------------------
// Fake Directory
// ------------------------

type FakeDirectory struct {
	Users       map[int64]*directorydomain.User
	Sports      map[int64]*directorydomain.Sport
	SkillLevels map[int64]*directorydomain.SkillLevel
	Err         error
}

func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{
		Users: map[int64]*directorydomain.User{},
		Sports: map[int64]*directorydomain.Sport{
			1: {ID: 1, Name: "Tennis"},
		},
		SkillLevels: map[int64]*directorydomain.SkillLevel{
			1: {ID: 1, Name: "Beginner"},
		},
	}
}

func (d *FakeDirectory) AddUsers(ids ...int64) *FakeDirectory {
	for _, id := range ids {
		d.Users[id] = &directorydomain.User{ID: id}
	}
	return d
}

func (d *FakeDirectory) GetUser(_ context.Context, userID int64) (*directorydomain.User, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	if u, ok := d.Users[userID]; ok {
		return u, nil
	}
	return nil, directorydomain.ErrUserNotFound
}

func (d *FakeDirectory) MissingUsers(_ context.Context, userIDs []int64) ([]int64, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	var missing []int64
	for _, id := range userIDs {
		if _, ok := d.Users[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (d *FakeDirectory) GetSport(_ context.Context, sportID int64) (*directorydomain.Sport, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	if s, ok := d.Sports[sportID]; ok {
		return s, nil
	}
	return nil, directorydomain.ErrSportNotFound
}

func (d *FakeDirectory) GetSkillLevel(_ context.Context, skillLevelID int64) (*directorydomain.SkillLevel, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	if l, ok := d.SkillLevels[skillLevelID]; ok {
		return l, nil
	}
	return nil, directorydomain.ErrSkillLevelNotFound
}

var _ Directory = (*FakeDirectory)(nil)

// ------------------------
// Fake Notification Sink
// ------------------------

type FakeNotifier struct {
	mu       sync.Mutex
	requests []notificationevents.RequestedPayloadV1
	NotifyFn func(ctx context.Context, requests []notificationevents.RequestedPayloadV1) error
}

func (n *FakeNotifier) Notify(ctx context.Context, requests []notificationevents.RequestedPayloadV1) error {
	if n.NotifyFn != nil {
		if err := n.NotifyFn(ctx, requests); err != nil {
			return err
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, requests...)
	return nil
}

func (n *FakeNotifier) Requests() []notificationevents.RequestedPayloadV1 {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notificationevents.RequestedPayloadV1, len(n.requests))
	copy(out, n.requests)
	return out
}

func (n *FakeNotifier) ByType(kind notificationevents.Type) []notificationevents.RequestedPayloadV1 {
	var out []notificationevents.RequestedPayloadV1
	for _, r := range n.Requests() {
		if r.Type == kind {
			out = append(out, r)
		}
	}
	return out
}

var _ NotificationSink = (*FakeNotifier)(nil)

// ------------------------
// Fake Clock
// ------------------------

type FakeClock struct {
	NowFn func() time.Time
}

func (c *FakeClock) Now() time.Time {
	if c.NowFn != nil {
		return c.NowFn()
	}
	return time.Now().UTC()
}
