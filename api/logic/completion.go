/* completion.go
 * Contains the pure calculations run when a tournament finishes: final
 * places, per team win counts, seasonal points, the cash payout schedule
 * and teammate history running means
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"math"
	"sort"

	"putting-league/api/shared"
	"putting-league/api/store"
)

// TeamStats holds a team's record across a tournament's completed matches.
// Byes are excluded from the win count
type TeamStats struct {
	Wins       int
	Losses     int
	Undefeated bool
}

// ComputeTeamStats tallies wins and losses per team over the completed
// matches. A bye carries no opponent so it is not counted as a win, and a
// team is undefeated while it has lost no completed match
func ComputeTeamStats(matches []store.Match) map[string]TeamStats {
	stats := make(map[string]TeamStats)
	for i := range matches {
		m := &matches[i]
		if m.Status != shared.MatchCompleted {
			continue
		}
		if w := m.WinnerID(); w != nil && m.Team2ID != nil {
			s := stats[*w]
			s.Wins++
			stats[*w] = s
		}
		if l := m.LoserID(); l != nil {
			s := stats[*l]
			s.Losses++
			stats[*l] = s
		}
	}
	for id, s := range stats {
		s.Undefeated = s.Losses == 0
		stats[id] = s
	}
	return stats
}

// TerminalChampionshipMatch returns the match that decided the tournament:
// the dynamically created game 2 when a bracket reset happened, otherwise the
// first championship match
func TerminalChampionshipMatch(matches []store.Match) (*store.Match, error) {
	var terminal *store.Match
	for i := range matches {
		m := &matches[i]
		if m.RoundType != shared.RoundChampionship || m.Stage != shared.StageFinals {
			continue
		}
		if m.Status != shared.MatchCompleted {
			return nil, fmt.Errorf("%w: championship match %d is not completed", shared.ErrInvalidState, m.MatchID)
		}
		if terminal == nil || m.RoundNumber > terminal.RoundNumber {
			terminal = m
		}
	}
	if terminal == nil {
		return nil, fmt.Errorf("%w: tournament has no completed championship match", shared.ErrInvalidState)
	}
	return terminal, nil
}

// ComputePlaces assigns final places across a tournament's teams.
// Preconditions: receives the tournament's teams and its completed matches,
// including the terminal championship match
// Postconditions: returns a map of team id to place. The champion places
// first and the championship loser second; every other team places in the
// reverse order of elimination, walking completed non championship matches by
// descending match order. Ghost teams receive no place and do not consume a
// place number, so the assigned places are exactly 1..N over the non ghost
// teams
func ComputePlaces(teams []store.Team, matches []store.Match) (map[string]int, error) {
	terminal, err := TerminalChampionshipMatch(matches)
	if err != nil {
		return nil, err
	}

	ghosts := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t.IsGhostTeam {
			ghosts[t.ID] = true
		}
	}

	places := make(map[string]int)
	next := 1
	assign := func(teamID *string) {
		if teamID == nil || ghosts[*teamID] {
			return
		}
		if _, ok := places[*teamID]; ok {
			return
		}
		places[*teamID] = next
		next++
	}

	assign(terminal.WinnerID())
	assign(terminal.LoserID())

	eliminations := make([]*store.Match, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		if m.Status == shared.MatchCompleted && m.RoundType != shared.RoundChampionship {
			eliminations = append(eliminations, m)
		}
	}
	sort.Slice(eliminations, func(i, j int) bool {
		return eliminations[i].MatchOrder > eliminations[j].MatchOrder
	})
	for _, m := range eliminations {
		assign(m.LoserID())
	}

	return places, nil
}

// PointsForTeam computes a team's seasonal points for one tournament: one
// for showing up, one per non bye win, two more for a top four finish and
// three more for going undefeated
func PointsForTeam(stats TeamStats, finalPlace *int) int {
	points := 1 + stats.Wins
	if finalPlace != nil && *finalPlace <= 4 {
		points += 2
	}
	if stats.Undefeated {
		points += 3
	}
	return points
}

// CashSchedule is the cash award for the top two places
type CashSchedule struct {
	First  float64
	Second float64
}

// ComputeCashSchedule splits the pot between first and second place. The pot
// is five dollars per registered player; small pots pay second a flat twenty
// and larger pots cap second at forty
func ComputeCashSchedule(registrations int) CashSchedule {
	pot := float64(5 * registrations)
	if pot <= 60 {
		return CashSchedule{First: pot - 20, Second: 20}
	}
	second := math.Min(40, pot-40)
	return CashSchedule{First: pot - second, Second: second}
}

// HistoryAdd folds a new final place observation into a directed teammate
// history row as a running mean
func HistoryAdd(h *store.TeamHistory, finalPlace int) {
	total := h.AveragePlace*float64(h.TimesPaired) + float64(finalPlace)
	h.TimesPaired++
	h.AveragePlace = total / float64(h.TimesPaired)
}

// HistoryRemove rewinds one final place observation from a directed teammate
// history row. It returns false when this was the row's only observation and
// the row should be deleted instead
func HistoryRemove(h *store.TeamHistory, finalPlace int) bool {
	if h.TimesPaired <= 1 {
		return false
	}
	total := h.AveragePlace*float64(h.TimesPaired) - float64(finalPlace)
	h.TimesPaired--
	h.AveragePlace = total / float64(h.TimesPaired)
	return true
}

// Round2 rounds a dollar amount to the nearest cent
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
