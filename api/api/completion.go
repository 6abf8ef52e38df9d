/* completion.go
 * Contains the tournament completion pipeline and its inverse: final place
 * assignment, teammate history, seasonal points, cash payouts and ace pot
 * resolution, plus the recalculation and cascade delete paths that reverse
 * exactly what completion recorded in the payout ledger
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"putting-league/api/logic"
	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// completeTournament runs the completion pipeline inside the caller's
// transaction: computes final places, applies all derived data and marks the
// tournament Completed.
// Preconditions: every match of the bracket is Completed
func (a *API) completeTournament(ctx context.Context, tournament store.Tournament, bracketMatches []*store.Match) (*CompletionSummary, error) {
	teams, err := a.Store.ListTeams(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}
	matches := make([]store.Match, 0, len(bracketMatches))
	for _, m := range bracketMatches {
		matches = append(matches, *m)
	}

	places, err := logic.ComputePlaces(teams, matches)
	if err != nil {
		return nil, err
	}
	payout, err := a.applyDerived(ctx, tournament, teams, matches, func(team store.Team) *int {
		if place, ok := places[team.ID]; ok {
			p := place
			return &p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.Store.UpdateTournamentStatus(ctx, tournament.ID, shared.TournamentCompleted); err != nil {
		return nil, err
	}

	terminal, err := logic.TerminalChampionshipMatch(matches)
	if err != nil {
		return nil, err
	}
	summary := &CompletionSummary{
		TournamentID: tournament.ID,
		Date:         tournament.Date,
		AcePotPayout: payout,
	}
	if winner := terminal.WinnerID(); winner != nil {
		summary.ChampionTeamID = *winner
		for _, team := range teams {
			if team.ID == *winner {
				names, err := a.memberNames(ctx, team)
				if err != nil {
					return nil, err
				}
				summary.ChampionNames = names
			}
		}
	}
	return summary, nil
}

// applyDerived runs steps 2 to 5 of the completion pipeline using the places
// supplied by placeFor, recording every player credit in the payout ledger so
// it can be reversed exactly. Returns the ace pot amount paid out
func (a *API) applyDerived(ctx context.Context, tournament store.Tournament, teams []store.Team, matches []store.Match, placeFor func(store.Team) *int) (float64, error) {
	stats := logic.ComputeTeamStats(matches)
	now := time.Now().UTC()
	var ledger []store.LedgerEntry
	credit := func(playerID, kind string, amount float64) {
		ledger = append(ledger, store.LedgerEntry{
			TournamentID: tournament.ID,
			PlayerID:     playerID,
			Kind:         kind,
			Amount:       amount,
			CreatedAt:    now,
		})
	}

	// Places and seasonal points. Ghost teams earn points for their sole
	// member but never hold a place
	var first, second *store.Team
	for i := range teams {
		team := teams[i]
		place := placeFor(team)
		points := logic.PointsForTeam(stats[team.ID], place)
		if err := a.Store.UpdateTeamResult(ctx, team.ID, place, points); err != nil {
			return 0, err
		}
		for _, member := range team.PlayerIDs() {
			if err := a.Store.AddPlayerTotals(ctx, member, points, 0); err != nil {
				return 0, err
			}
			credit(member, store.LedgerPoints, float64(points))
		}
		if place != nil {
			switch *place {
			case 1:
				first = &teams[i]
			case 2:
				second = &teams[i]
			}
		}
	}

	// Teammate history, one directed row per side of each full pairing
	for _, team := range teams {
		if team.IsGhostTeam || team.Player2ID == nil {
			continue
		}
		place := placeFor(team)
		if place == nil {
			continue
		}
		if err := a.addHistory(ctx, team.Player1ID, *team.Player2ID, *place); err != nil {
			return 0, err
		}
		if err := a.addHistory(ctx, *team.Player2ID, team.Player1ID, *place); err != nil {
			return 0, err
		}
	}

	// Cash payouts for the top two places, split equally among team members
	registrations, err := a.Store.CountRegistrations(ctx, tournament.ID)
	if err != nil {
		return 0, err
	}
	schedule := logic.ComputeCashSchedule(registrations)
	payCash := func(team *store.Team, amount float64) error {
		if team == nil || amount <= 0 {
			return nil
		}
		members := team.PlayerIDs()
		share := logic.Round2(amount / float64(len(members)))
		for _, member := range members {
			if err := a.Store.AddPlayerTotals(ctx, member, 0, share); err != nil {
				return err
			}
			credit(member, store.LedgerCash, share)
		}
		return nil
	}
	if err := payCash(first, schedule.First); err != nil {
		return 0, err
	}
	if err := payCash(second, schedule.Second); err != nil {
		return 0, err
	}

	// Ace pot: an undefeated first place team sweeps the rolling balance
	payout := 0.0
	if first != nil && stats[first.ID].Undefeated {
		balance, err := a.Store.AcePotBalance(ctx)
		if err != nil {
			return 0, err
		}
		if balance > 0 {
			members := first.PlayerIDs()
			share := logic.Round2(balance / float64(len(members)))
			for _, member := range members {
				if err := a.Store.AddPlayerTotals(ctx, member, 0, share); err != nil {
					return 0, err
				}
				credit(member, store.LedgerAcePot, share)
			}
			names, err := a.memberNames(ctx, *first)
			if err != nil {
				return 0, err
			}
			entry := store.AcePotEntry{
				ID:           uuid.NewString(),
				TournamentID: &tournament.ID,
				Date:         tournament.Date,
				Description:  fmt.Sprintf("Ace pot won by %s", strings.Join(names, " and ")),
				Amount:       -balance,
			}
			if err := a.Store.InsertAcePotEntry(ctx, entry); err != nil {
				return 0, err
			}
			payout = balance
		}
	}
	if err := a.Store.SetAcePotPayout(ctx, tournament.ID, payout); err != nil {
		return 0, err
	}

	if err := a.Store.InsertLedgerEntries(ctx, ledger); err != nil {
		return 0, err
	}
	return payout, nil
}

// TournamentAudit returns the complete tournament state in one payload so an
// admin can verify results against the bracket before or after recalculating
func (a *API) TournamentAudit(ctx context.Context, tournamentID string) (*AuditReport, error) {
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{Tournament: tournament}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := a.ListTeams(gctx, tournamentID)
		report.Teams = teams
		return err
	})
	g.Go(func() error {
		matches, err := a.Store.ListMatches(gctx, tournamentID)
		report.Matches = matches
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// RecalculateTournament reverses every derived credit of a completed
// tournament and re-runs the completion pipeline against the places currently
// stored on its teams, preserving operator overrides.
// Preconditions: the tournament is Completed
// Postconditions: points, history, cash and ace pot reflect the stored final
// places; the payout ledger matches the new credits exactly
func (a *API) RecalculateTournament(ctx context.Context, tournamentID string) error {
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != shared.TournamentCompleted {
		return fmt.Errorf("%w: only Completed tournaments can be recalculated (status %s)", shared.ErrInvalidState, tournament.Status)
	}

	return a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := a.reverseDerived(ctx, tournamentID); err != nil {
			return err
		}
		// Drop the old payout entry so the rolling balance reverts to its
		// pre-payout value before the pipeline reruns
		if err := a.Store.DeleteAcePotPayouts(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.SetAcePotPayout(ctx, tournamentID, 0); err != nil {
			return err
		}

		teams, err := a.Store.ListTeams(ctx, tournamentID)
		if err != nil {
			return err
		}
		matches, err := a.Store.ListMatches(ctx, tournamentID)
		if err != nil {
			return err
		}
		_, err = a.applyDerived(ctx, tournament, teams, matches, func(team store.Team) *int {
			return team.FinalPlace
		})
		return err
	})
}

// UpdateTeamPlace writes a manual final place override without cascading.
// The caller is expected to run RecalculateTournament afterwards
func (a *API) UpdateTeamPlace(ctx context.Context, tournamentID string, teamID string, place int) error {
	if place < 1 {
		return fmt.Errorf("%w: final place must be a positive integer", shared.ErrInvalidInput)
	}
	team, err := a.Store.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.TournamentID != tournamentID {
		return fmt.Errorf("%w: team %s does not belong to tournament %s", shared.ErrNotFound, teamID, tournamentID)
	}
	if team.IsGhostTeam {
		return fmt.Errorf("%w: ghost teams do not hold a final place", shared.ErrInvalidInput)
	}
	return a.Store.UpdateTeamPlace(ctx, teamID, &place)
}

// DeleteTournament cascade deletes a tournament. Completed tournaments first
// have their derived credits reversed so season aggregates stay consistent
func (a *API) DeleteTournament(ctx context.Context, tournamentID string) error {
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	return a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		if tournament.Status == shared.TournamentCompleted {
			if err := a.reverseDerived(ctx, tournamentID); err != nil {
				return err
			}
		}
		if err := a.Store.DeleteAcePotEntriesForTournament(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteLedgerEntries(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.ClearMatchEdges(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteMatches(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteTeams(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteRegistrations(ctx, tournamentID); err != nil {
			return err
		}
		return a.Store.DeleteTournament(ctx, tournamentID)
	})
}

// reverseDerived undoes every credit the completion pipeline recorded: ledger
// amounts come off the player aggregates, teammate history rewinds using the
// places currently stored on the teams and points_earned resets to zero
func (a *API) reverseDerived(ctx context.Context, tournamentID string) error {
	entries, err := a.Store.ListLedgerEntries(ctx, tournamentID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		switch entry.Kind {
		case store.LedgerPoints:
			err = a.Store.AddPlayerTotals(ctx, entry.PlayerID, -int(entry.Amount), 0)
		case store.LedgerCash, store.LedgerAcePot:
			err = a.Store.AddPlayerTotals(ctx, entry.PlayerID, 0, -entry.Amount)
		default:
			err = fmt.Errorf("unknown ledger entry kind %q", entry.Kind)
		}
		if err != nil {
			return err
		}
	}
	if err := a.Store.DeleteLedgerEntries(ctx, tournamentID); err != nil {
		return err
	}

	teams, err := a.Store.ListTeams(ctx, tournamentID)
	if err != nil {
		return err
	}
	for _, team := range teams {
		if !team.IsGhostTeam && team.Player2ID != nil && team.FinalPlace != nil {
			if err := a.undoHistory(ctx, team.Player1ID, *team.Player2ID, *team.FinalPlace); err != nil {
				return err
			}
			if err := a.undoHistory(ctx, *team.Player2ID, team.Player1ID, *team.FinalPlace); err != nil {
				return err
			}
		}
		if err := a.Store.UpdateTeamResult(ctx, team.ID, nil, 0); err != nil {
			return err
		}
	}
	return nil
}

// addHistory records one more shared tournament for a directed pairing
func (a *API) addHistory(ctx context.Context, playerID, teammateID string, place int) error {
	history, err := a.Store.GetTeamHistory(ctx, playerID, teammateID)
	if errors.Is(err, shared.ErrNotFound) {
		history = store.TeamHistory{PlayerID: playerID, TeammateID: teammateID}
	} else if err != nil {
		return err
	}
	logic.HistoryAdd(&history, place)
	return a.Store.UpsertTeamHistory(ctx, history)
}

// undoHistory rewinds one observation from a directed pairing, deleting the
// row once no observations remain
func (a *API) undoHistory(ctx context.Context, playerID, teammateID string, place int) error {
	history, err := a.Store.GetTeamHistory(ctx, playerID, teammateID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if keep := logic.HistoryRemove(&history, place); !keep {
		return a.Store.DeleteTeamHistory(ctx, playerID, teammateID)
	}
	return a.Store.UpsertTeamHistory(ctx, history)
}

// memberNames resolves the display names of a team's members in seat order
func (a *API) memberNames(ctx context.Context, team store.Team) ([]string, error) {
	players, err := a.Store.ListPlayersByIDs(ctx, team.PlayerIDs())
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(players))
	for _, p := range players {
		nameByID[p.ID] = p.Name
	}
	names := make([]string, 0, len(players))
	for _, id := range team.PlayerIDs() {
		if name, ok := nameByID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}
