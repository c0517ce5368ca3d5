package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/Dosada05/bracket-hub/cache"
	"github.com/Dosada05/bracket-hub/models"
	"github.com/Dosada05/bracket-hub/repositories"
	"github.com/Dosada05/bracket-hub/storage"
)

// Hand-rolled fakes for the repository and infrastructure interfaces. Each
// field defaults to a sane empty behavior so tests only set what they assert.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCompetitionRepo struct {
	competitions map[int]*models.Competition
	err          error
}

func (f *fakeCompetitionRepo) GetByID(_ context.Context, id int) (*models.Competition, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.competitions[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	return c, nil
}

func (f *fakeCompetitionRepo) List(_ context.Context, _ repositories.ListCompetitionsFilter) ([]models.Competition, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Competition, 0, len(f.competitions))
	for _, c := range f.competitions {
		out = append(out, *c)
	}
	return out, nil
}

type fakeTeamRepo struct {
	teams        map[int]*models.Team
	byCompetiton []models.Team
	seedCalls    [][]int
	err          error
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) ListByCompetition(_ context.Context, _ int) ([]models.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCompetiton, nil
}

func (f *fakeTeamRepo) UpdateSeeds(_ context.Context, _ repositories.SQLExecutor, _ int, orderedTeamIDs []int) error {
	f.seedCalls = append(f.seedCalls, orderedTeamIDs)
	return f.err
}

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, teamID int, logoKey *string) error {
	if f.err != nil {
		return f.err
	}
	if t, ok := f.teams[teamID]; ok {
		t.LogoKey = logoKey
	}
	return nil
}

type fakeMatchRepo struct {
	matches  []models.Match
	created  []models.Match
	deleted  int
	err      error
}

func (f *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	if f.err != nil {
		return f.err
	}
	m.ID = len(f.created) + 1
	f.created = append(f.created, *m)
	return nil
}

func (f *fakeMatchRepo) ListByCompetition(_ context.Context, _ int) ([]models.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func (f *fakeMatchRepo) DeleteByCompetition(_ context.Context, _ repositories.SQLExecutor, _ int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := f.deleted
	f.deleted = 0
	return n, nil
}

type fakeOverrideRepo struct {
	overrides []models.Override
	upserted  []models.Override
	err       error
}

func (f *fakeOverrideRepo) Upsert(_ context.Context, o *models.Override) error {
	if f.err != nil {
		return f.err
	}
	o.ID = len(f.upserted) + 1
	f.upserted = append(f.upserted, *o)
	return nil
}

func (f *fakeOverrideRepo) ListByCompetition(_ context.Context, _ int) ([]models.Override, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overrides, nil
}

func (f *fakeOverrideRepo) DeleteByCompetition(_ context.Context, _ repositories.SQLExecutor, _ int) error {
	return f.err
}

type notifyCall struct {
	CompetitionID int
	EventType     string
	Payload       interface{}
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(competitionID int, eventType string, payload interface{}) {
	f.calls = append(f.calls, notifyCall{competitionID, eventType, payload})
}

type fakeSeedingCache struct {
	orders map[int][]int
	err    error
}

func newFakeSeedingCache() *fakeSeedingCache {
	return &fakeSeedingCache{orders: make(map[int][]int)}
}

func (f *fakeSeedingCache) SaveOrder(_ context.Context, competitionID int, orderedIDs []int) error {
	if f.err != nil {
		return f.err
	}
	f.orders[competitionID] = orderedIDs
	return nil
}

func (f *fakeSeedingCache) GetOrder(_ context.Context, competitionID int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids, ok := f.orders[competitionID]
	if !ok {
		return nil, cache.ErrNoOrder
	}
	return ids, nil
}

func (f *fakeSeedingCache) ClearOrder(_ context.Context, competitionID int) error {
	if f.err != nil {
		return f.err
	}
	delete(f.orders, competitionID)
	return nil
}

type fakeUploader struct {
	uploads []string
	deletes []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
