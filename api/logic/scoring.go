/* scoring.go
 * Contains the match scoring state machine: result validation, team
 * advancement along bracket edges, re-score rollback, automatic bye
 * resolution and championship bracket reset handling
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"

	"putting-league/api/shared"
	"putting-league/api/store"
)

// Advancement records a team placed into a downstream match slot
type Advancement struct {
	MatchID int    `json:"match_id"`
	Slot    int    `json:"slot"`
	TeamID  string `json:"team_id"`
}

// Rollback records a downstream slot cleared while re-scoring
type Rollback struct {
	MatchID int    `json:"match_id"`
	Slot    int    `json:"slot"`
	TeamID  string `json:"team_id"`
}

// ScoreOutcome summarises the effects of scoring one match. The caller
// persists every match the bracket now holds plus any created or removed
// match, then acts on TournamentOver
type ScoreOutcome struct {
	Match          *store.Match
	WinnerTeamID   string
	LoserTeamID    string
	IsRescore      bool
	Advancements   []Advancement
	Rollbacks      []Rollback
	AutoAdvanced   []*store.Match
	CreatedMatch   *store.Match
	RemovedMatch   *store.Match
	TournamentOver bool
	Warnings       []string
}

// ApplyScore validates and records a result for the given match and advances
// teams through the bracket.
// Preconditions: receives the tournament's bracket, the match id and the two
// scores. The caller has already checked the tournament status
// Postconditions: mutates the bracket in place and returns the outcome, or an
// error if the match cannot be scored. Re-scoring a completed match with a
// changed winner rolls the previous occupants out of their downstream slots,
// cascading through any downstream results they invalidated, before the new
// winner and loser advance
func ApplyScore(b *Bracket, matchID, team1Score, team2Score int) (*ScoreOutcome, error) {
	m, ok := b.Get(matchID)
	if !ok {
		return nil, fmt.Errorf("%w: match %d", shared.ErrNotFound, matchID)
	}

	// Championship rows that merely hold group stage survivors are never
	// scored directly
	if m.RoundType == shared.RoundChampionship && m.Stage != shared.StageFinals {
		return nil, fmt.Errorf("%w: match %d holds group stage survivors", shared.ErrUnscoreableMatch, matchID)
	}

	out := &ScoreOutcome{Match: m}

	// A single team match is a bye: no score is required and it resolves 1-0
	if m.Team1ID == nil && m.Team2ID == nil {
		return nil, fmt.Errorf("%w: match %d has no teams assigned yet", shared.ErrInvalidState, matchID)
	}
	if m.Team1ID == nil || m.Team2ID == nil {
		if m.Status == shared.MatchCompleted {
			out.WinnerTeamID = *m.WinnerID()
			out.IsRescore = true
			return out, nil
		}
		if canReceiveTeam(b, m) {
			return nil, fmt.Errorf("%w: match %d is still waiting on its second team", shared.ErrInvalidState, matchID)
		}
		resolveBye(b, m)
		out.WinnerTeamID = *m.Team1ID
		out.AutoAdvanced = SweepByes(b)
		if BracketComplete(b) {
			out.TournamentOver = true
		}
		return out, nil
	}

	if m.Status != shared.MatchInProgress && m.Status != shared.MatchCompleted {
		return nil, fmt.Errorf("%w: match %d must be started before scoring (status %s)", shared.ErrInvalidState, matchID, m.Status)
	}
	if team1Score < 0 || team2Score < 0 {
		return nil, fmt.Errorf("%w: scores must be non-negative integers", shared.ErrInvalidInput)
	}
	if team1Score == team2Score {
		return nil, fmt.Errorf("%w: ties are not allowed", shared.ErrInvalidInput)
	}

	isRescore := m.Status == shared.MatchCompleted
	out.IsRescore = isRescore

	var prevWinner, prevLoser *string
	if isRescore {
		prevWinner, prevLoser = m.WinnerID(), m.LoserID()
		if m.Team1Score == team1Score && m.Team2Score == team2Score {
			// Identical result: succeed without touching the graph so the
			// caller can still re-emit the broadcast
			out.WinnerTeamID = *prevWinner
			out.LoserTeamID = *prevLoser
			return out, nil
		}
	}

	m.Team1Score = team1Score
	m.Team2Score = team2Score
	m.Status = shared.MatchCompleted
	m.Station = nil

	winner := *m.WinnerID()
	loser := *m.LoserID()
	out.WinnerTeamID = winner
	out.LoserTeamID = loser

	// A changed winner invalidates the previous occupants downstream. The
	// rollback cascades: a completed downstream match that held a rolled back
	// team has a result based on the wrong team, so it reverts to unplayed
	// and its own advancements unwind first
	if isRescore && prevWinner != nil && *prevWinner != winner {
		rollbackEdge(b, m.WinnerAdvancesTo, *prevWinner, out)
		if prevLoser != nil {
			rollbackEdge(b, m.LoserAdvancesTo, *prevLoser, out)
		}
	}

	advanceTeam(b, m.WinnerAdvancesTo, winner, out)
	advanceTeam(b, m.LoserAdvancesTo, loser, out)

	out.AutoAdvanced = SweepByes(b)

	if m.RoundType == shared.RoundChampionship {
		resolveChampionship(b, m, winner, out)
	} else if BracketComplete(b) {
		out.TournamentOver = true
	}

	return out, nil
}

// resolveBye completes a single team match 1-0 and advances the lone team.
// The team is normalised into slot 1 first
func resolveBye(b *Bracket, m *store.Match) {
	if m.Team1ID == nil {
		m.Team1ID, m.Team2ID = m.Team2ID, nil
	}
	m.Team1Score = 1
	m.Team2Score = 0
	m.Status = shared.MatchCompleted
	m.Station = nil
	advanceTeam(b, m.WinnerAdvancesTo, *m.Team1ID, nil)
}

// SweepByes auto completes every pending match that can never receive a
// second team. A pending match holding exactly one team is a bye once all
// upstream matches that could deliver the missing team have completed; it
// resolves (1, 0) and the lone team advances along the winner edge. Repeats
// until no further byes resolve and returns the matches it completed
func SweepByes(b *Bracket) []*store.Match {
	var completed []*store.Match
	for {
		progressed := false
		for _, m := range b.List() {
			if m.Status != shared.MatchPending {
				continue
			}
			if (m.Team1ID == nil) == (m.Team2ID == nil) {
				continue
			}
			if canReceiveTeam(b, m) {
				continue
			}
			resolveBye(b, m)
			completed = append(completed, m)
			progressed = true
		}
		if !progressed {
			return completed
		}
	}
}

// canReceiveTeam reports whether any upstream match could still deliver a
// team into the given match
func canReceiveTeam(b *Bracket, m *store.Match) bool {
	for _, up := range b.Upstreams(m.MatchID) {
		if up.Status != shared.MatchCompleted {
			return true
		}
	}
	return false
}

// rollbackEdge removes the occupant from the edge target and cascades. A
// target that already completed produced a result involving the wrong team,
// so its own winner and loser are rolled out of their downstream slots first,
// then the target reverts to an unplayed state awaiting a replacement team.
// The bracket edges only point forward, so the recursion terminates
func rollbackEdge(b *Bracket, target *int, occupant string, out *ScoreOutcome) {
	if target == nil {
		return
	}
	t, ok := b.Get(*target)
	if !ok {
		return
	}
	if !t.HasTeam(occupant) {
		return
	}

	if t.Status == shared.MatchCompleted {
		w, l := t.WinnerID(), t.LoserID()
		if w != nil {
			rollbackEdge(b, t.WinnerAdvancesTo, *w, out)
		}
		if l != nil {
			rollbackEdge(b, t.LoserAdvancesTo, *l, out)
		}
		// Reverting championship game 1 makes a dynamically created game 2
		// meaningless
		if t.RoundType == shared.RoundChampionship && t.Stage == shared.StageFinals && t.RoundNumber == 0 {
			if game2 := championshipGame2(b); game2 != nil {
				if game2.Status == shared.MatchCompleted {
					out.Warnings = append(out.Warnings, fmt.Sprintf("championship game %d is already completed but its game 1 was rolled back; re-score or remove it manually", game2.MatchID))
				} else {
					delete(b.Matches, game2.MatchID)
					out.RemovedMatch = game2
				}
			}
		}
		t.Team1Score = 0
		t.Team2Score = 0
	}

	if t.Team1ID != nil && *t.Team1ID == occupant {
		t.Team1ID = nil
		out.Rollbacks = append(out.Rollbacks, Rollback{MatchID: t.MatchID, Slot: 1, TeamID: occupant})
	} else {
		t.Team2ID = nil
		out.Rollbacks = append(out.Rollbacks, Rollback{MatchID: t.MatchID, Slot: 2, TeamID: occupant})
	}
	t.Status = shared.MatchPending
	t.Station = nil
}

// advanceTeam places a team into the first open slot of the edge target.
// Filling the second slot promotes the target from pending to scheduled. The
// placement is skipped when the team already occupies a slot there
func advanceTeam(b *Bracket, target *int, teamID string, out *ScoreOutcome) {
	if target == nil {
		return
	}
	t, ok := b.Get(*target)
	if !ok {
		return
	}
	if t.HasTeam(teamID) {
		return
	}
	if t.Status == shared.MatchCompleted {
		if out != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("match %d is already completed, team %s could not advance into it", t.MatchID, teamID))
		}
		return
	}
	slot := 0
	if t.Team1ID == nil {
		t.Team1ID = strRef(teamID)
		slot = 1
	} else if t.Team2ID == nil {
		t.Team2ID = strRef(teamID)
		slot = 2
	} else {
		if out != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("no open slot in match %d for team %s", t.MatchID, teamID))
		}
		return
	}
	if out != nil {
		out.Advancements = append(out.Advancements, Advancement{MatchID: t.MatchID, Slot: slot, TeamID: teamID})
	}
	if t.Team1ID != nil && t.Team2ID != nil && t.Status == shared.MatchPending {
		t.Status = shared.MatchScheduled
	}
}

// resolveChampionship applies the championship rules after a championship
// match completes. The winners bracket finalist has not lost a match before
// the championship, so a losers bracket finalist winning game 1 forces a
// deciding game 2; game 2 always crowns the champion
func resolveChampionship(b *Bracket, m *store.Match, winner string, out *ScoreOutcome) {
	if m.RoundNumber > 0 {
		out.TournamentOver = true
		return
	}

	wbFinalist := winnersFinalist(b, m.MatchID)
	game2 := championshipGame2(b)

	if wbFinalist == nil || *wbFinalist == winner {
		// No reset needed. A game 2 left over from a re-scored game 1 is
		// removed while it is still playable
		if game2 != nil {
			if game2.Status == shared.MatchCompleted {
				out.Warnings = append(out.Warnings, fmt.Sprintf("championship game %d is already completed and no longer applies after the re-score; delete or re-score it manually", game2.MatchID))
				return
			}
			delete(b.Matches, game2.MatchID)
			out.RemovedMatch = game2
		}
		out.TournamentOver = true
		return
	}

	if game2 != nil {
		// Already materialised by a previous scoring of game 1
		return
	}

	id := b.MaxMatchID() + 1
	g2 := &store.Match{
		TournamentID:    m.TournamentID,
		MatchID:         id,
		Stage:           shared.StageFinals,
		RoundType:       shared.RoundChampionship,
		RoundNumber:     m.RoundNumber + 1,
		PositionInRound: 0,
		MatchOrder:      b.MaxMatchOrder() + 1,
		Team1ID:         strRef(*wbFinalist),
		Team2ID:         strRef(winner),
		Status:          shared.MatchScheduled,
	}
	b.Matches[id] = g2
	out.CreatedMatch = g2
}

// winnersFinalist returns the team that won the winners bracket final feeding
// the given championship match
func winnersFinalist(b *Bracket, champID int) *string {
	for _, m := range b.Matches {
		if m.RoundType == shared.RoundWinners && m.WinnerAdvancesTo != nil && *m.WinnerAdvancesTo == champID {
			return m.WinnerID()
		}
	}
	return nil
}

// championshipGame2 returns the dynamically created deciding match, if any
func championshipGame2(b *Bracket) *store.Match {
	for _, m := range b.Matches {
		if m.RoundType == shared.RoundChampionship && m.Stage == shared.StageFinals && m.RoundNumber > 0 {
			return m
		}
	}
	return nil
}

// BracketComplete reports whether no playable or in flight match remains
func BracketComplete(b *Bracket) bool {
	for _, m := range b.Matches {
		switch m.Status {
		case shared.MatchScheduled, shared.MatchInProgress:
			return false
		case shared.MatchPending:
			if m.Team1ID != nil || m.Team2ID != nil {
				return false
			}
		}
	}
	return true
}
