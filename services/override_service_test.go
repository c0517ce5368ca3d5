package services

import (
	"context"
	"testing"

	"github.com/Dosada05/bracket-hub/brackets"
	"github.com/Dosada05/bracket-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOverrideService(
	compRepo *fakeCompetitionRepo,
	teamRepo *fakeTeamRepo,
	overrideRepo *fakeOverrideRepo,
	notifier *fakeNotifier,
) OverrideService {
	return NewOverrideService(compRepo, teamRepo, overrideRepo, notifier, testLogger())
}

func TestApplyTeamChange_SavesAndNotifies(t *testing.T) {
	overrideRepo := &fakeOverrideRepo{}
	notifier := &fakeNotifier{}
	svc := newTestOverrideService(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{1: testCompetition(1)}},
		&fakeTeamRepo{byCompetiton: enrolledTeams("Alpha", "Beta")},
		overrideRepo,
		notifier,
	)

	override, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 1,
		OldTeamName:   "Alpha",
		NewTeamName:   "Beta",
		ChangeType:    "substitution",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alpha", override.OldName)
	assert.Equal(t, "Beta", override.NewName)
	require.Len(t, overrideRepo.upserted, 1)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, brackets.EventTeamReplaced, notifier.calls[0].EventType)
	assert.Equal(t, 1, notifier.calls[0].CompetitionID)
}

func TestApplyTeamChange_BlankNamesRejected(t *testing.T) {
	svc := newTestOverrideService(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{1: testCompetition(1)}},
		&fakeTeamRepo{},
		&fakeOverrideRepo{},
		&fakeNotifier{},
	)

	_, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 1, OldTeamName: "  ", NewTeamName: "Beta",
	})
	assert.ErrorIs(t, err, ErrOverrideNamesRequired)

	_, err = svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 1, OldTeamName: "Alpha", NewTeamName: "",
	})
	assert.ErrorIs(t, err, ErrOverrideNamesRequired)
}

func TestApplyTeamChange_CompetitionNotFound(t *testing.T) {
	svc := newTestOverrideService(
		&fakeCompetitionRepo{},
		&fakeTeamRepo{},
		&fakeOverrideRepo{},
		&fakeNotifier{},
	)

	_, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 7, OldTeamName: "Alpha", NewTeamName: "Beta",
	})
	assert.ErrorIs(t, err, ErrCompetitionNotFound)
}

func TestApplyTeamChange_UnenrolledNameRejected(t *testing.T) {
	svc := newTestOverrideService(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{1: testCompetition(1)}},
		&fakeTeamRepo{byCompetiton: enrolledTeams("Alpha", "Beta")},
		&fakeOverrideRepo{},
		&fakeNotifier{},
	)

	_, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 1, OldTeamName: "Alpha", NewTeamName: "Outsiders FC",
	})
	assert.ErrorIs(t, err, ErrTeamNotEnrolled)
}

func TestApplyTeamChange_PlaceholderNamesBypassEnrollment(t *testing.T) {
	overrideRepo := &fakeOverrideRepo{}
	svc := newTestOverrideService(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{1: testCompetition(1)}},
		&fakeTeamRepo{byCompetiton: enrolledTeams("Alpha", "Beta")},
		overrideRepo,
		&fakeNotifier{},
	)

	for _, placeholder := range []string{brackets.ByeName, brackets.TBDName} {
		_, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
			CompetitionID: 1, OldTeamName: "Alpha", NewTeamName: placeholder,
		})
		assert.NoError(t, err, "placeholder %q", placeholder)
	}
	assert.Len(t, overrideRepo.upserted, 2)
}

func TestApplyTeamChange_PersistedBeforeNotification(t *testing.T) {
	// The write is local-first: the row lands before fan-out runs, so a dead
	// hub can never lose an override.
	overrideRepo := &fakeOverrideRepo{}
	notifier := &fakeNotifier{}
	svc := newTestOverrideService(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{1: testCompetition(1)}},
		&fakeTeamRepo{byCompetiton: enrolledTeams("Alpha", "Beta")},
		overrideRepo,
		notifier,
	)

	_, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 1, OldTeamName: "Alpha", NewTeamName: "Beta",
	})
	require.NoError(t, err)
	require.Len(t, overrideRepo.upserted, 1)
	require.Len(t, notifier.calls, 1)
}

func TestApplyTeamChange_UpsertFailureSkipsNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestOverrideService(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{1: testCompetition(1)}},
		&fakeTeamRepo{byCompetiton: enrolledTeams("Alpha", "Beta")},
		&fakeOverrideRepo{err: assert.AnError},
		notifier,
	)

	_, err := svc.ApplyTeamChange(context.Background(), TeamChangeInput{
		CompetitionID: 1, OldTeamName: "Alpha", NewTeamName: "Beta",
	})
	assert.Error(t, err)
	assert.Empty(t, notifier.calls)
}

func TestListOverrides_ReturnsMap(t *testing.T) {
	svc := newTestOverrideService(
		&fakeCompetitionRepo{},
		&fakeTeamRepo{},
		&fakeOverrideRepo{overrides: []models.Override{
			{CompetitionID: 1, OldName: "Alpha", NewName: "Alpha United"},
			{CompetitionID: 1, OldName: "Beta", NewName: "BYE"},
		}},
		&fakeNotifier{},
	)

	m, err := svc.ListOverrides(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.OverrideMap{"Alpha": "Alpha United", "Beta": "BYE"}, m)
}
