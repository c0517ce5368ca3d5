package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/bracket-hub/models"
	"github.com/Dosada05/bracket-hub/repositories"
	"github.com/Dosada05/bracket-hub/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompetitionService struct {
	competition *models.Competition
	list        []models.Competition
	filter      repositories.ListCompetitionsFilter
	err         error
}

func (s *stubCompetitionService) GetCompetition(_ context.Context, _ int) (*models.Competition, error) {
	return s.competition, s.err
}

func (s *stubCompetitionService) ListCompetitions(_ context.Context, filter repositories.ListCompetitionsFilter) ([]models.Competition, error) {
	s.filter = filter
	return s.list, s.err
}

type stubTeamService struct {
	teams []models.Team
	err   error
}

func (s *stubTeamService) GetTeam(_ context.Context, _ int) (*models.Team, error) {
	if len(s.teams) == 0 {
		return nil, s.err
	}
	return &s.teams[0], s.err
}

func (s *stubTeamService) ListByCompetition(_ context.Context, _ int) ([]models.Team, error) {
	return s.teams, s.err
}

func (s *stubTeamService) UploadLogo(_ context.Context, _ int, _ string, _ io.Reader) (*models.Team, error) {
	return nil, s.err
}

func competitionRouter(cs services.CompetitionService, ts services.TeamService) *chi.Mux {
	h := NewCompetitionHandler(cs, ts)
	r := chi.NewRouter()
	r.Get("/competitions", h.ListHandler)
	r.Get("/competitions/{competitionID}", h.GetByIDHandler)
	r.Get("/competitions/{competitionID}/teams", h.ListTeamsHandler)
	return r
}

func TestListCompetitionsHandler_PassesFilter(t *testing.T) {
	cs := &stubCompetitionService{list: []models.Competition{{ID: 1, Name: "Spring Cup"}}}
	router := competitionRouter(cs, &stubTeamService{})

	req := httptest.NewRequest(http.MethodGet, "/competitions?status=active&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cs.filter.Status)
	assert.Equal(t, models.StatusActive, *cs.filter.Status)
	assert.Equal(t, 5, cs.filter.Limit)
	assert.Equal(t, 10, cs.filter.Offset)
}

func TestListCompetitionsHandler_BadLimit(t *testing.T) {
	router := competitionRouter(&stubCompetitionService{}, &stubTeamService{})

	req := httptest.NewRequest(http.MethodGet, "/competitions?limit=lots", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCompetitionHandler_NotFound(t *testing.T) {
	router := competitionRouter(&stubCompetitionService{err: services.ErrCompetitionNotFound}, &stubTeamService{})

	req := httptest.NewRequest(http.MethodGet, "/competitions/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCompetitionTeamsHandler_Success(t *testing.T) {
	router := competitionRouter(
		&stubCompetitionService{competition: &models.Competition{ID: 1}},
		&stubTeamService{teams: []models.Team{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}},
	)

	req := httptest.NewRequest(http.MethodGet, "/competitions/1/teams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	teams, ok := body["teams"].([]interface{})
	require.True(t, ok)
	assert.Len(t, teams, 2)
}
