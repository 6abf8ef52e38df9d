/* scoring_test.go
 * Contains unit tests for scoring.go - testing match start and live scoring
 * through the facade
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"testing"

	"putting-league/api/shared"
)

// setupFourTeamTournament seeds a Scheduled tournament with 8 players paired
// onto teams team1..team4 and generates the bracket:
// match 1 team1 v team2, match 2 team3 v team4, match 4 the losers opener,
// match 3 the winners final, match 5 the losers final, match 6 the
// championship
func setupFourTeamTournament(t *testing.T) (*API, *MockStore, *recordingNotifier) {
	t.Helper()
	api, mockStore := newTestAPI()
	notifier := &recordingNotifier{}
	api.Notify = notifier

	seedTournament(mockStore, "t1", "2026-03-07")
	seedPlayers(mockStore, 8)
	registerSeeded(mockStore, "t1", 8)
	seedPairedTeams(mockStore, "t1", 8)

	if _, err := api.GenerateMatches(context.Background(), "t1", 0); err != nil {
		t.Fatalf("generate matches: %v", err)
	}
	return api, mockStore, notifier
}

// playMatch starts a match on a station and records its score
func playMatch(t *testing.T, api *API, tournamentID string, matchID, team1Score, team2Score int) *ScoreReport {
	t.Helper()
	if _, err := api.StartMatch(context.Background(), tournamentID, matchID); err != nil {
		t.Fatalf("start match %d: %v", matchID, err)
	}
	report, err := api.ScoreMatch(context.Background(), tournamentID, matchID, team1Score, team2Score)
	if err != nil {
		t.Fatalf("score match %d: %v", matchID, err)
	}
	return report
}

// runFourTeamTournament drives the bracket to completion with team1 never
// losing: team1 place 1, team3 place 2, team2 place 3, team4 place 4
func runFourTeamTournament(t *testing.T, api *API, tournamentID string) *ScoreReport {
	t.Helper()
	playMatch(t, api, tournamentID, 1, 21, 15)
	playMatch(t, api, tournamentID, 2, 21, 18)
	playMatch(t, api, tournamentID, 4, 21, 10)
	playMatch(t, api, tournamentID, 3, 21, 19)
	playMatch(t, api, tournamentID, 5, 12, 21)
	return playMatch(t, api, tournamentID, 6, 21, 17)
}

// region StartMatch tests

func TestStartMatch_AssignsLowestFreeStation(t *testing.T) {
	api, mockStore, notifier := setupFourTeamTournament(t)

	started, err := api.StartMatch(context.Background(), "t1", 1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if started.Station == nil || *started.Station != 1 {
		t.Error("Expected station 1")
	}
	if started.Status != shared.MatchInProgress {
		t.Errorf("Expected In_Progress, got %s", started.Status)
	}

	// Station 1 is busy so the next start takes station 2
	second, err := api.StartMatch(context.Background(), "t1", 2)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if second.Station == nil || *second.Station != 2 {
		t.Error("Expected station 2")
	}

	persisted := mockStore.Matches[matchKey("t1", 1)]
	if persisted.Station == nil || *persisted.Station != 1 {
		t.Error("Expected the station assignment to be persisted")
	}
	if len(notifier.MatchEvents) != 2 {
		t.Errorf("Expected 2 match events, got %d", len(notifier.MatchEvents))
	}
}

func TestStartMatch_NoStationFree(t *testing.T) {
	api, mockStore, _ := setupFourTeamTournament(t)
	tournament := mockStore.Tournaments["t1"]
	tournament.StationCount = 1
	mockStore.Tournaments["t1"] = tournament

	if _, err := api.StartMatch(context.Background(), "t1", 1); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	_, err := api.StartMatch(context.Background(), "t1", 2)
	if !errors.Is(err, shared.ErrNoStationAvailable) {
		t.Errorf("Expected ErrNoStationAvailable, got: %v", err)
	}
}

func TestStartMatch_RequiresScheduledMatch(t *testing.T) {
	api, _, _ := setupFourTeamTournament(t)

	// Match 3 is still pending, nothing has advanced into it
	_, err := api.StartMatch(context.Background(), "t1", 3)
	if !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got: %v", err)
	}
}

func TestStartMatch_GuardsTournamentStatus(t *testing.T) {
	api, mockStore, _ := setupFourTeamTournament(t)
	tournament := mockStore.Tournaments["t1"]
	tournament.Status = shared.TournamentCompleted
	mockStore.Tournaments["t1"] = tournament

	_, err := api.StartMatch(context.Background(), "t1", 1)
	if !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got: %v", err)
	}
}

// endregion

// region ScoreMatch tests

func TestScoreMatch_FirstScoreMovesTournamentInProgress(t *testing.T) {
	api, mockStore, _ := setupFourTeamTournament(t)

	report := playMatch(t, api, "t1", 1, 21, 15)

	if report.WinnerTeamID != "team1" {
		t.Errorf("Expected team1 to win, got %s", report.WinnerTeamID)
	}
	if mockStore.Tournaments["t1"].Status != shared.TournamentInProgress {
		t.Errorf("Expected In_Progress, got %s", mockStore.Tournaments["t1"].Status)
	}

	// The loser advances into the losers opener
	lbOpener := mockStore.Matches[matchKey("t1", 4)]
	if lbOpener.Team1ID == nil || *lbOpener.Team1ID != "team2" {
		t.Error("Expected team2 in the losers opener")
	}
}

func TestScoreMatch_GuardsTournamentStatus(t *testing.T) {
	api, mockStore, _ := setupFourTeamTournament(t)
	tournament := mockStore.Tournaments["t1"]
	tournament.Status = shared.TournamentCancelled
	mockStore.Tournaments["t1"] = tournament

	_, err := api.ScoreMatch(context.Background(), "t1", 1, 21, 15)
	if !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got: %v", err)
	}
}

func TestScoreMatch_TieRejected(t *testing.T) {
	api, _, _ := setupFourTeamTournament(t)

	if _, err := api.StartMatch(context.Background(), "t1", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err := api.ScoreMatch(context.Background(), "t1", 1, 15, 15)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for tie, got: %v", err)
	}
}

func TestScoreMatch_SameResultIsNoop(t *testing.T) {
	api, mockStore, notifier := setupFourTeamTournament(t)

	playMatch(t, api, "t1", 1, 21, 15)
	eventsBefore := len(notifier.MatchEvents)
	matchesBefore := len(mockStore.Matches)

	report, err := api.ScoreMatch(context.Background(), "t1", 1, 21, 15)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !report.IsRescore {
		t.Error("Expected is_rescore on the report")
	}
	if len(report.Rollbacks) != 0 || len(report.Advancements) != 0 {
		t.Error("Expected no graph changes for an identical result")
	}
	if len(mockStore.Matches) != matchesBefore {
		t.Error("Expected no match set changes")
	}
	// The broadcast is still re-emitted
	if len(notifier.MatchEvents) != eventsBefore+1 {
		t.Errorf("Expected 1 more event, got %d", len(notifier.MatchEvents)-eventsBefore)
	}
	if !notifier.MatchEvents[len(notifier.MatchEvents)-1].IsRescore {
		t.Error("Expected the re-emitted event to carry is_rescore")
	}
}

func TestScoreMatch_FullRunCompletesTournament(t *testing.T) {
	api, mockStore, notifier := setupFourTeamTournament(t)

	report := runFourTeamTournament(t, api, "t1")

	if !report.TournamentOver {
		t.Fatal("Expected the tournament to be over")
	}
	if report.CreatedMatch != nil {
		t.Error("No second championship game when the winners finalist wins")
	}
	if mockStore.Tournaments["t1"].Status != shared.TournamentCompleted {
		t.Errorf("Expected Completed, got %s", mockStore.Tournaments["t1"].Status)
	}

	if len(notifier.Completions) != 1 {
		t.Fatalf("Expected 1 completion notification, got %d", len(notifier.Completions))
	}
	summary := notifier.Completions[0]
	if summary.ChampionTeamID != "team1" {
		t.Errorf("Expected champion team1, got %s", summary.ChampionTeamID)
	}
	if len(summary.ChampionNames) != 2 || summary.ChampionNames[0] != "Player 1" || summary.ChampionNames[1] != "Player 2" {
		t.Errorf("Expected champion names resolved, got %v", summary.ChampionNames)
	}
	if summary.AcePotPayout != 0 {
		t.Errorf("Expected no ace pot payout, got %.2f", summary.AcePotPayout)
	}

	// Six starts and six scores, nothing else
	if len(notifier.MatchEvents) != 12 {
		t.Errorf("Expected 12 match events, got %d", len(notifier.MatchEvents))
	}
}

func TestScoreMatch_BracketReset(t *testing.T) {
	api, mockStore, notifier := setupFourTeamTournament(t)

	playMatch(t, api, "t1", 1, 21, 15)
	playMatch(t, api, "t1", 2, 21, 18)
	playMatch(t, api, "t1", 4, 21, 10)
	playMatch(t, api, "t1", 3, 21, 19)
	playMatch(t, api, "t1", 5, 12, 21)

	// The losers finalist takes championship game 1, forcing a deciding game
	report := playMatch(t, api, "t1", 6, 17, 21)

	if report.TournamentOver {
		t.Fatal("Tournament must not end on a losers finalist game 1 win")
	}
	if report.CreatedMatch == nil {
		t.Fatal("Expected championship game 2 to be created")
	}
	game2 := *report.CreatedMatch
	if game2.MatchID != 7 || game2.RoundNumber != 1 {
		t.Errorf("Expected match 7 round 1, got %d round %d", game2.MatchID, game2.RoundNumber)
	}
	if game2.Team1ID == nil || *game2.Team1ID != "team1" || game2.Team2ID == nil || *game2.Team2ID != "team3" {
		t.Error("Expected game 2 seeded winners finalist v losers finalist")
	}
	if _, ok := mockStore.Matches[matchKey("t1", 7)]; !ok {
		t.Fatal("Expected game 2 persisted")
	}
	created := notifier.MatchEvents[len(notifier.MatchEvents)-1]
	if created.MatchID != 7 {
		t.Errorf("Expected a broadcast for the created match, got match %d", created.MatchID)
	}

	// The losers finalist wins again and takes the title
	final := playMatch(t, api, "t1", 7, 15, 21)
	if !final.TournamentOver {
		t.Fatal("Expected the tournament to end after game 2")
	}

	team3 := mockStore.Teams["team3"]
	if team3.FinalPlace == nil || *team3.FinalPlace != 1 {
		t.Error("Expected team3 to take first")
	}
	team1 := mockStore.Teams["team1"]
	if team1.FinalPlace == nil || *team1.FinalPlace != 2 {
		t.Error("Expected team1 to take second")
	}
	// Four wins, first place, one loss in the winners final
	if team3.PointsEarned != 7 {
		t.Errorf("Expected 7 points for team3, got %d", team3.PointsEarned)
	}
	if notifier.Completions[0].ChampionTeamID != "team3" {
		t.Errorf("Expected champion team3, got %s", notifier.Completions[0].ChampionTeamID)
	}
}

func TestScoreMatch_RescoringGame1RemovesGame2(t *testing.T) {
	api, mockStore, _ := setupFourTeamTournament(t)

	playMatch(t, api, "t1", 1, 21, 15)
	playMatch(t, api, "t1", 2, 21, 18)
	playMatch(t, api, "t1", 4, 21, 10)
	playMatch(t, api, "t1", 3, 21, 19)
	playMatch(t, api, "t1", 5, 12, 21)
	playMatch(t, api, "t1", 6, 17, 21)

	// Correcting game 1 to the winners finalist retracts the unplayed game 2
	// and completes the tournament
	report, err := api.ScoreMatch(context.Background(), "t1", 6, 21, 12)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if report.RemovedMatchID == nil || *report.RemovedMatchID != 7 {
		t.Fatal("Expected game 2 to be removed")
	}
	if _, ok := mockStore.Matches[matchKey("t1", 7)]; ok {
		t.Error("Expected game 2 deleted from the store")
	}
	if !report.TournamentOver {
		t.Fatal("Expected the tournament to complete")
	}
	team1 := mockStore.Teams["team1"]
	if team1.FinalPlace == nil || *team1.FinalPlace != 1 {
		t.Error("Expected team1 first after the correction")
	}
}

func TestScoreMatch_RescoreInversionRollsBackDownstream(t *testing.T) {
	api, mockStore, notifier := setupFourTeamTournament(t)

	playMatch(t, api, "t1", 1, 21, 15)
	playMatch(t, api, "t1", 2, 21, 18)
	playMatch(t, api, "t1", 4, 21, 10)
	playMatch(t, api, "t1", 3, 21, 19)
	playMatch(t, api, "t1", 5, 12, 21)

	// Championship is seeded team1 v team3 and started but not yet scored
	if _, err := api.StartMatch(context.Background(), "t1", 6); err != nil {
		t.Fatalf("start championship: %v", err)
	}

	// Inverting the winners final pulls team1 out of the championship and
	// unwinds team3's completed losers final
	report, err := api.ScoreMatch(context.Background(), "t1", 3, 19, 21)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !report.IsRescore {
		t.Error("Expected is_rescore on the report")
	}
	if len(report.Rollbacks) != 3 {
		t.Errorf("Expected 3 rollbacks, got %d", len(report.Rollbacks))
	}

	champ := mockStore.Matches[matchKey("t1", 6)]
	if champ.Team1ID == nil || *champ.Team1ID != "team3" || champ.Team2ID != nil {
		t.Error("Expected the championship to hold only team3 after the inversion")
	}
	if champ.Status != shared.MatchPending {
		t.Errorf("Expected the championship back to Pending, got %s", champ.Status)
	}

	losersFinal := mockStore.Matches[matchKey("t1", 5)]
	if losersFinal.Status != shared.MatchScheduled {
		t.Errorf("Expected the losers final replayable, got %s", losersFinal.Status)
	}
	if losersFinal.Team1ID == nil || *losersFinal.Team1ID != "team2" || losersFinal.Team2ID == nil || *losersFinal.Team2ID != "team1" {
		t.Error("Expected the losers final to hold team2 v team1")
	}
	if losersFinal.Team1Score != 0 || losersFinal.Team2Score != 0 {
		t.Error("Expected the losers final scores reset")
	}

	event := notifier.MatchEvents[len(notifier.MatchEvents)-1]
	if !event.IsRescore || event.MatchID != 3 {
		t.Errorf("Expected an is_rescore broadcast for match 3, got %+v", event)
	}

	// The bracket is still playable to a clean finish
	playMatch(t, api, "t1", 5, 21, 5)
	final := playMatch(t, api, "t1", 6, 21, 15)
	if !final.TournamentOver {
		t.Fatal("Expected the tournament to complete after the replays")
	}
	team3 := mockStore.Teams["team3"]
	if team3.FinalPlace == nil || *team3.FinalPlace != 1 {
		t.Error("Expected team3 first")
	}
	// Three wins, first place and no losses on record after the inversion
	if team3.PointsEarned != 9 {
		t.Errorf("Expected 9 points for team3, got %d", team3.PointsEarned)
	}
}

// endregion
