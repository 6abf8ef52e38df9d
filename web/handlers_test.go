/* handlers_test.go
 * Contains unit tests for the HTTP handlers using httptest against the full
 * router
 * Authors: Zachary Bower
 */

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"putting-league/api/api"
	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestServer() (*Server, *api.MockStore) {
	gin.SetMode(gin.TestMode)
	mockStore := api.NewMockStore()
	facade := &api.API{Store: mockStore, Rand: rand.New(rand.NewSource(1))}
	s := NewServer(Config{Addr: ":0", API: facade, JWTSecret: "test-secret", Logger: zerolog.Nop()})
	facade.Notify = s.Hub()
	return s, mockStore
}

// sessionFor seeds an account and returns a cookie holding a signed session
func sessionFor(t *testing.T, s *Server, mockStore *api.MockStore, id string, role shared.Role) *http.Cookie {
	t.Helper()
	mockStore.Users[id] = store.User{ID: id, Username: id, DisplayName: id, Role: role}
	token, err := s.sessions.issue(id)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return &http.Cookie{Name: sessionCookie, Value: token}
}

func performRequest(r http.Handler, method, path string, body []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// seedLeague inserts a Scheduled tournament with 8 registered players paired
// onto 4 seeded teams
func seedLeague(m *api.MockStore) {
	m.Tournaments["t1"] = store.Tournament{ID: "t1", Date: "2026-03-07", Status: shared.TournamentScheduled, StationCount: 6}
	for i := 1; i <= 8; i++ {
		id := fmt.Sprintf("p%d", i)
		m.Players[id] = store.Player{ID: id, Name: fmt.Sprintf("Player %d", i), Division: shared.DivisionAm}
		m.Registrations["t1"] = append(m.Registrations["t1"], store.Registration{TournamentID: "t1", PlayerID: id})
	}
	seed := 1
	for i := 1; i+1 <= 8; i += 2 {
		partner := fmt.Sprintf("p%d", i+1)
		teamID := fmt.Sprintf("team%d", seed)
		m.Teams[teamID] = store.Team{ID: teamID, TournamentID: "t1", Player1ID: fmt.Sprintf("p%d", i), Player2ID: &partner, SeedNumber: seed}
		seed++
	}
}

// region health and read endpoint tests

func TestHealth_OK(t *testing.T) {
	s, _ := newTestServer()
	w := performRequest(s.Router(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetTournaments_List(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)

	w := performRequest(s.Router(), http.MethodGet, "/api/tournaments", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"t1"`)
}

func TestGetTournaments_DetailByID(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)

	w := performRequest(s.Router(), http.MethodGet, "/api/tournaments?id=t1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var detail api.TournamentDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "t1", detail.Tournament.ID)
	assert.Len(t, detail.Players, 8)
}

func TestGetTournaments_DetailByDate(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)

	w := performRequest(s.Router(), http.MethodGet, "/api/tournaments?date=2026-03-07", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"t1"`)
}

func TestGetTournaments_UnknownID(t *testing.T) {
	s, _ := newTestServer()
	w := performRequest(s.Router(), http.MethodGet, "/api/tournaments?id=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTeams_ResolvesNames(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)

	w := performRequest(s.Router(), http.MethodGet, "/api/tournaments/t1/teams", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Player 1"`)
}

func TestStandings_Public(t *testing.T) {
	s, mockStore := newTestServer()
	mockStore.Players["p1"] = store.Player{ID: "p1", Name: "Alice", Division: shared.DivisionAm, SeasonalPoints: 9}

	w := performRequest(s.Router(), http.MethodGet, "/api/players", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Alice"`)
}

func TestAcePot_Public(t *testing.T) {
	s, mockStore := newTestServer()
	mockStore.AcePotEntries = append(mockStore.AcePotEntries, store.AcePotEntry{ID: "ace1", Date: "2026-02-28", Description: "Week 1 buy-ins", Amount: 2})

	w := performRequest(s.Router(), http.MethodGet, "/api/ace-pot", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var report api.AcePotReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2.0, report.Balance)
	assert.Len(t, report.Entries, 1)
}

// endregion

// region role gating tests

func TestMutations_RequireSession(t *testing.T) {
	s, _ := newTestServer()
	body, _ := json.Marshal(createTournamentRequest{Date: "2026-03-07"})

	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_ForbiddenForDirectors(t *testing.T) {
	s, mockStore := newTestServer()
	director := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	w := performRequest(s.Router(), http.MethodPost, "/api/admin/tournaments/t1/recalculate", nil, director)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(s.Router(), http.MethodGet, "/api/users", nil, director)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMutations_RejectTamperedCookie(t *testing.T) {
	s, _ := newTestServer()
	cookie := &http.Cookie{Name: sessionCookie, Value: "not-a-jwt"}

	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// endregion

// region tournament lifecycle tests

func TestCreateTournament_Success(t *testing.T) {
	s, mockStore := newTestServer()
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	body, _ := json.Marshal(createTournamentRequest{
		Date: "2026-03-07",
		Players: []api.RegistrationRequest{
			{PlayerName: "Alice"},
			{PlayerName: "Bob"},
		},
	})
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments", body, operator)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, mockStore.Tournaments, 1)
	assert.Len(t, mockStore.Players, 2)
}

func TestCreateTournament_BadDate(t *testing.T) {
	s, mockStore := newTestServer()
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	body, _ := json.Marshal(createTournamentRequest{
		Date:    "07/03/2026",
		Players: []api.RegistrationRequest{{PlayerName: "Alice"}, {PlayerName: "Bob"}},
	})
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments", body, operator)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTeamsAndMatches_Flow(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	// The seeded draw is replaced by the generated one
	for id := range mockStore.Teams {
		delete(mockStore.Teams, id)
	}
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/generate-teams", nil, operator)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mockStore.Teams, 4)

	w = performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/generate-matches", nil, operator)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mockStore.Matches, 6)

	w = performRequest(s.Router(), http.MethodGet, "/api/tournaments/t1/matches", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateMatches_StationOverride(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	body, _ := json.Marshal(generateMatchesRequest{Stations: 3})
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/generate-matches", body, operator)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, mockStore.Tournaments["t1"].StationCount)
}

func TestUpdateStatus_Validation(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	body, _ := json.Marshal(statusRequest{Status: "Paused"})
	w := performRequest(s.Router(), http.MethodPut, "/api/tournaments/t1/status", body, operator)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, _ = json.Marshal(statusRequest{Status: "Cancelled"})
	w = performRequest(s.Router(), http.MethodPut, "/api/tournaments/t1/status", body, operator)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, shared.TournamentCancelled, mockStore.Tournaments["t1"].Status)
}

func TestDeleteTournament_Cascades(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	w := performRequest(s.Router(), http.MethodDelete, "/api/tournaments/t1", nil, operator)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mockStore.Tournaments)
	assert.Empty(t, mockStore.Teams)
}

// endregion

// region match scoring tests

// startBracket generates a bracket over the seeded league through the router
func startBracket(t *testing.T, s *Server, operator *http.Cookie) {
	t.Helper()
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/generate-matches", nil, operator)
	if w.Code != http.StatusOK {
		t.Fatalf("generate matches returned %d: %s", w.Code, w.Body.String())
	}
}

func TestStartMatch_AssignsStation(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)
	startBracket(t, s, operator)

	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/1/start", nil, operator)
	assert.Equal(t, http.StatusOK, w.Code)

	match, err := mockStore.GetMatch(context.Background(), "t1", 1)
	assert.NoError(t, err)
	assert.NotNil(t, match.Station)
	assert.Equal(t, shared.MatchInProgress, match.Status)
}

func TestScoreMatch_Flow(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)
	startBracket(t, s, operator)

	performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/1/start", nil, operator)

	one, fifteen := 21, 15
	body, _ := json.Marshal(scoreRequest{Team1Score: &one, Team2Score: &fifteen})
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/1/score", body, operator)
	assert.Equal(t, http.StatusOK, w.Code)

	var report api.ScoreReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "team1", report.WinnerTeamID)
	assert.Equal(t, shared.TournamentInProgress, mockStore.Tournaments["t1"].Status)
}

func TestScoreMatch_TieRejected(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)
	startBracket(t, s, operator)

	performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/1/start", nil, operator)

	tied := 15
	body, _ := json.Marshal(scoreRequest{Team1Score: &tied, Team2Score: &tied})
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/1/score", body, operator)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreMatch_MissingScores(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)
	startBracket(t, s, operator)

	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/1/score", []byte(`{"team1_score": 21}`), operator)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "team2_score")
}

func TestScoreMatch_UnknownTournament(t *testing.T) {
	s, mockStore := newTestServer()
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	one, two := 21, 15
	body, _ := json.Marshal(scoreRequest{Team1Score: &one, Team2Score: &two})
	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/missing/matches/1/score", body, operator)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartMatch_BadMatchID(t *testing.T) {
	s, mockStore := newTestServer()
	operator := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)

	w := performRequest(s.Router(), http.MethodPost, "/api/tournaments/t1/matches/abc/start", nil, operator)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// endregion

// region admin endpoint tests

func TestRecalculate_RequiresCompleted(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	w := performRequest(s.Router(), http.MethodPost, "/api/admin/tournaments/t1/recalculate", nil, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAudit_ReturnsTournamentState(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	w := performRequest(s.Router(), http.MethodGet, "/api/admin/tournaments/t1/audit", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	var report api.AuditReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "t1", report.Tournament.ID)
	assert.Len(t, report.Teams, 4)
}

func TestTeamPlaceOverride_Flow(t *testing.T) {
	s, mockStore := newTestServer()
	seedLeague(mockStore)
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	body, _ := json.Marshal(placeRequest{Place: 2})
	w := performRequest(s.Router(), http.MethodPut, "/api/admin/tournaments/t1/teams/team3/place", body, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	team := mockStore.Teams["team3"]
	assert.NotNil(t, team.FinalPlace)
	assert.Equal(t, 2, *team.FinalPlace)
}

func TestAddAcePotEntry_AdminOnly(t *testing.T) {
	s, mockStore := newTestServer()
	director := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	body, _ := json.Marshal(acePotEntryRequest{Date: "2026-03-07", Description: "Correction", Amount: 4})
	w := performRequest(s.Router(), http.MethodPost, "/api/ace-pot", body, director)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(s.Router(), http.MethodPost, "/api/ace-pot", body, admin)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, mockStore.AcePotEntries, 1)
}

func TestAddAcePotEntry_BalanceNeverNegative(t *testing.T) {
	s, mockStore := newTestServer()
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	body, _ := json.Marshal(acePotEntryRequest{Date: "2026-03-07", Description: "Bad correction", Amount: -4})
	w := performRequest(s.Router(), http.MethodPost, "/api/ace-pot", body, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// endregion

// region user management tests

func TestUsers_CRUDFlow(t *testing.T) {
	s, mockStore := newTestServer()
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	body, _ := json.Marshal(createUserRequest{Username: "dana", Password: "secret", Role: "Director"})
	w := performRequest(s.Router(), http.MethodPost, "/api/users", body, admin)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = performRequest(s.Router(), http.MethodGet, "/api/users", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dana"`)

	// Duplicate usernames are rejected
	w = performRequest(s.Router(), http.MethodPost, "/api/users", body, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsers_DirectorEditsOnlyThemselves(t *testing.T) {
	s, mockStore := newTestServer()
	director := sessionFor(t, s, mockStore, "d1", shared.RoleDirector)
	sessionFor(t, s, mockStore, "d2", shared.RoleDirector)

	body := []byte(`{"display_name": "New Name"}`)
	w := performRequest(s.Router(), http.MethodPut, "/api/users/d2", body, director)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performRequest(s.Router(), http.MethodPut, "/api/users/d1", body, director)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New Name", mockStore.Users["d1"].DisplayName)
}

func TestUsers_LastAdminProtected(t *testing.T) {
	s, mockStore := newTestServer()
	admin := sessionFor(t, s, mockStore, "a1", shared.RoleAdmin)

	w := performRequest(s.Router(), http.MethodDelete, "/api/users/a1", nil, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(s.Router(), http.MethodPut, "/api/users/a1", []byte(`{"role": "Director"}`), admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// endregion
