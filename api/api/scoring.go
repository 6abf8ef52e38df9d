/* scoring.go
 * Contains the live match operations: station allocation on start and the
 * scoring call that advances teams, persists the whole bracket atomically and
 * triggers the completion pipeline when the championship finishes
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"

	"putting-league/api/logic"
	"putting-league/api/shared"
	"putting-league/api/store"
)

// StartMatch assigns the lowest free station to a scheduled match and moves
// it to In_Progress.
// Preconditions: the tournament is Scheduled or In_Progress and the match is
// Scheduled
// Postconditions: the match holds a station id and observers are notified
func (a *API) StartMatch(ctx context.Context, tournamentID string, matchID int) (store.Match, error) {
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return store.Match{}, err
	}
	if err := scoreableTournament(tournament); err != nil {
		return store.Match{}, err
	}
	stations := tournament.StationCount
	if stations <= 0 {
		stations = 6
	}

	var started store.Match
	err = a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		matches, err := a.Store.ListMatches(ctx, tournamentID)
		if err != nil {
			return err
		}
		bracket := logic.NewBracket(matches)
		m, err := logic.AllocateStation(bracket, matchID, stations)
		if err != nil {
			return err
		}
		started = *m
		return a.Store.SaveMatch(ctx, started)
	})
	if err != nil {
		return store.Match{}, err
	}

	if a.Notify != nil {
		a.Notify.MatchUpdated(matchEvent(started, false, ""))
	}
	return started, nil
}

// ScoreMatch records a result for one match, advances teams along the bracket
// edges and, when the championship resolves, runs the completion pipeline in
// the same transaction.
// Preconditions: the tournament is Scheduled or In_Progress; the match has
// been started unless it resolves as a bye; scores are non-negative and not
// tied
// Postconditions: every bracket mutation is committed atomically, observers
// receive match_updated events for each touched match and tournament_completed
// when the tournament finishes. Re-scoring with the same result is a no-op
// that still re-emits the broadcast
func (a *API) ScoreMatch(ctx context.Context, tournamentID string, matchID int, team1Score, team2Score int) (*ScoreReport, error) {
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := scoreableTournament(tournament); err != nil {
		return nil, err
	}

	var (
		report  *ScoreReport
		summary *CompletionSummary
	)
	err = a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		matches, err := a.Store.ListMatches(ctx, tournamentID)
		if err != nil {
			return err
		}
		bracket := logic.NewBracket(matches)
		outcome, err := logic.ApplyScore(bracket, matchID, team1Score, team2Score)
		if err != nil {
			return err
		}

		// Persist every match the bracket now holds; ApplyScore mutates an
		// unpredictable subset through advancement, rollback and bye sweeps
		for _, m := range bracket.List() {
			if err := a.Store.SaveMatch(ctx, *m); err != nil {
				return err
			}
		}
		if outcome.RemovedMatch != nil {
			if err := a.Store.DeleteMatch(ctx, tournamentID, outcome.RemovedMatch.MatchID); err != nil {
				return err
			}
		}

		if tournament.Status == shared.TournamentScheduled {
			if err := a.Store.UpdateTournamentStatus(ctx, tournamentID, shared.TournamentInProgress); err != nil {
				return err
			}
		}

		report = scoreReport(outcome)
		if outcome.TournamentOver {
			s, err := a.completeTournament(ctx, tournament, bracket.List())
			if err != nil {
				return err
			}
			summary = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.notifyScore(report)
	if summary != nil && a.Notify != nil {
		a.Notify.TournamentCompleted(*summary)
	}
	return report, nil
}

// scoreableTournament guards mutations that only make sense while the event
// is live
func scoreableTournament(t store.Tournament) error {
	if t.Status != shared.TournamentScheduled && t.Status != shared.TournamentInProgress {
		return fmt.Errorf("%w: tournament %s is %s", shared.ErrInvalidState, t.ID, t.Status)
	}
	return nil
}

func scoreReport(outcome *logic.ScoreOutcome) *ScoreReport {
	report := &ScoreReport{
		Match:          *outcome.Match,
		WinnerTeamID:   outcome.WinnerTeamID,
		IsRescore:      outcome.IsRescore,
		Advancements:   outcome.Advancements,
		Rollbacks:      outcome.Rollbacks,
		TournamentOver: outcome.TournamentOver,
		Warnings:       outcome.Warnings,
	}
	for _, m := range outcome.AutoAdvanced {
		report.AutoAdvanced = append(report.AutoAdvanced, *m)
	}
	if outcome.CreatedMatch != nil {
		created := *outcome.CreatedMatch
		report.CreatedMatch = &created
	}
	if outcome.RemovedMatch != nil {
		id := outcome.RemovedMatch.MatchID
		report.RemovedMatchID = &id
	}
	return report
}

// notifyScore emits match_updated events for the scored match and every match
// the scoring call completed or created alongside it
func (a *API) notifyScore(report *ScoreReport) {
	if a.Notify == nil || report == nil {
		return
	}
	a.Notify.MatchUpdated(matchEvent(report.Match, report.IsRescore, report.WinnerTeamID))
	for _, m := range report.AutoAdvanced {
		winner := ""
		if w := m.WinnerID(); w != nil {
			winner = *w
		}
		a.Notify.MatchUpdated(matchEvent(m, false, winner))
	}
	if report.CreatedMatch != nil {
		a.Notify.MatchUpdated(matchEvent(*report.CreatedMatch, false, ""))
	}
}

func matchEvent(m store.Match, isRescore bool, winner string) shared.MatchEvent {
	t1, t2 := m.Team1Score, m.Team2Score
	return shared.MatchEvent{
		Type:         shared.EventMatchUpdated,
		TournamentID: m.TournamentID,
		MatchID:      m.MatchID,
		Status:       string(m.Status),
		Station:      m.Station,
		Team1Score:   &t1,
		Team2Score:   &t2,
		WinnerTeamID: winner,
		IsRescore:    isRescore,
	}
}
