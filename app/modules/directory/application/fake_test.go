package directoryservice

import (
	"context"

	directorydomain "github.com/funfirstplay/matchup/app/modules/directory/domain"
	directorydb "github.com/funfirstplay/matchup/app/modules/directory/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Directory Repo
// ------------------------

type FakeDirectoryRepo struct {
	trace []string

	GetUserFunc       func(ctx context.Context, db bun.IDB, userID int64) (*directorydb.User, error)
	GetUsersByIDsFunc func(ctx context.Context, db bun.IDB, ids []int64) ([]directorydb.User, error)
	GetSportFunc      func(ctx context.Context, db bun.IDB, sportID int64) (*directorydb.Sport, error)
	GetSkillLevelFunc func(ctx context.Context, db bun.IDB, skillLevelID int64) (*directorydb.SkillLevel, error)
}

func NewFakeDirectoryRepo() *FakeDirectoryRepo {
	return &FakeDirectoryRepo{trace: []string{}}
}

func (f *FakeDirectoryRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeDirectoryRepo) GetUser(ctx context.Context, db bun.IDB, userID int64) (*directorydb.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, db, userID)
	}
	return nil, directorydb.ErrNotFound
}

func (f *FakeDirectoryRepo) GetUsersByIDs(ctx context.Context, db bun.IDB, ids []int64) ([]directorydb.User, error) {
	f.record("GetUsersByIDs")
	if f.GetUsersByIDsFunc != nil {
		return f.GetUsersByIDsFunc(ctx, db, ids)
	}
	return nil, nil
}

func (f *FakeDirectoryRepo) GetSport(ctx context.Context, db bun.IDB, sportID int64) (*directorydb.Sport, error) {
	f.record("GetSport")
	if f.GetSportFunc != nil {
		return f.GetSportFunc(ctx, db, sportID)
	}
	return nil, directorydb.ErrNotFound
}

func (f *FakeDirectoryRepo) GetSkillLevel(ctx context.Context, db bun.IDB, skillLevelID int64) (*directorydb.SkillLevel, error) {
	f.record("GetSkillLevel")
	if f.GetSkillLevelFunc != nil {
		return f.GetSkillLevelFunc(ctx, db, skillLevelID)
	}
	return nil, directorydb.ErrNotFound
}

func (f *FakeDirectoryRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ directorydb.Repository = (*FakeDirectoryRepo)(nil)

// ------------------------
// Fake Sport Cache
// ------------------------

type FakeSportCache struct {
	entries map[int64]*directorydomain.Sport
	GetErr  error
	SetErr  error
	sets    int
}

func NewFakeSportCache() *FakeSportCache {
	return &FakeSportCache{entries: map[int64]*directorydomain.Sport{}}
}

func (c *FakeSportCache) Get(_ context.Context, sportID int64) (*directorydomain.Sport, error) {
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	return c.entries[sportID], nil
}

func (c *FakeSportCache) Set(_ context.Context, sport *directorydomain.Sport) error {
	c.sets++
	if c.SetErr != nil {
		return c.SetErr
	}
	c.entries[sport.ID] = sport
	return nil
}

var _ SportCache = (*FakeSportCache)(nil)
