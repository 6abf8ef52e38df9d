/* bracket.go
 * Contains the double elimination bracket builder and the in memory match
 * graph it produces. The graph is keyed by integer match ids; advancement
 * edges are nullable references to those ids
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"math/bits"
	"sort"

	"putting-league/api/shared"
	"putting-league/api/store"
)

// MaxTeams is the largest field the bracket builder accepts
const MaxTeams = 64

// Bracket is an in memory view of one tournament's match graph, keyed by
// match id. Logic functions mutate the matches in place; callers persist the
// touched documents afterwards
type Bracket struct {
	Matches map[int]*store.Match
}

// NewBracket builds a Bracket from stored match documents. The matches are
// copied so the caller's slice is not aliased
func NewBracket(matches []store.Match) *Bracket {
	b := &Bracket{Matches: make(map[int]*store.Match, len(matches))}
	for i := range matches {
		m := matches[i]
		b.Matches[m.MatchID] = &m
	}
	return b
}

// Get returns the match with the given id
func (b *Bracket) Get(id int) (*store.Match, bool) {
	m, ok := b.Matches[id]
	return m, ok
}

// List returns the matches sorted by match id
func (b *Bracket) List() []*store.Match {
	out := make([]*store.Match, 0, len(b.Matches))
	for _, m := range b.Matches {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out
}

// Upstreams returns the matches whose winner or loser edge targets the given
// match id, in match id order
func (b *Bracket) Upstreams(id int) []*store.Match {
	var ups []*store.Match
	for _, m := range b.List() {
		if (m.WinnerAdvancesTo != nil && *m.WinnerAdvancesTo == id) ||
			(m.LoserAdvancesTo != nil && *m.LoserAdvancesTo == id) {
			ups = append(ups, m)
		}
	}
	return ups
}

// MaxMatchID returns the highest match id in the bracket
func (b *Bracket) MaxMatchID() int {
	max := 0
	for id := range b.Matches {
		if id > max {
			max = id
		}
	}
	return max
}

// MaxMatchOrder returns the highest match order in the bracket
func (b *Bracket) MaxMatchOrder() int {
	max := 0
	for _, m := range b.Matches {
		if m.MatchOrder > max {
			max = m.MatchOrder
		}
	}
	return max
}

// BuildBracket materialises a full double elimination match graph for the
// given teams.
// Preconditions: receives the tournament id and its teams with seed numbers
// 1..T assigned. Requires 4 <= T <= MaxTeams
// Postconditions: returns the complete match set with all advancement edges
// assigned, first round byes completed with score (1, 0) and their winners
// pre advanced, unreachable losers bracket matches elided, and a global match
// order assigned. The championship match is last; the bracket reset match is
// never pre materialised
func BuildBracket(tournamentID string, teams []store.Team) ([]store.Match, error) {
	t := len(teams)
	if t < 4 {
		return nil, fmt.Errorf("%w: at least 4 teams are required to generate a bracket, got %d", shared.ErrInvalidInput, t)
	}
	if t > MaxTeams {
		return nil, fmt.Errorf("%w: team count %d exceeds the maximum of %d", shared.ErrNotSupported, t, MaxTeams)
	}

	seeded := make([]store.Team, len(teams))
	copy(seeded, teams)
	sort.Slice(seeded, func(i, j int) bool { return seeded[i].SeedNumber < seeded[j].SeedNumber })

	size := nextPowerOfTwo(t)
	wbRounds := bits.Len(uint(size)) - 1

	nextID := 1
	newMatch := func(roundType shared.RoundType, round, pos int) *store.Match {
		m := &store.Match{
			TournamentID:    tournamentID,
			MatchID:         nextID,
			Stage:           shared.StageFinals,
			RoundType:       roundType,
			RoundNumber:     round,
			PositionInRound: pos,
			Status:          shared.MatchPending,
		}
		nextID++
		return m
	}

	// Winners bracket: round r holds size/2^(r+1) matches
	wb := make([][]*store.Match, wbRounds)
	for r := 0; r < wbRounds; r++ {
		n := size >> (r + 1)
		wb[r] = make([]*store.Match, n)
		for p := 0; p < n; p++ {
			wb[r][p] = newMatch(shared.RoundWinners, r, p)
		}
	}

	// Losers bracket: alternating drop in rounds (receive winners bracket
	// losers) and consolidation rounds, size-2 matches in total
	lbRounds := 2*wbRounds - 2
	lb := make([][]*store.Match, lbRounds)
	for r := 0; r < lbRounds; r++ {
		n := lbRoundSize(size, r)
		lb[r] = make([]*store.Match, n)
		for p := 0; p < n; p++ {
			lb[r][p] = newMatch(shared.RoundLosers, r, p)
		}
	}

	champ := newMatch(shared.RoundChampionship, 0, 0)

	// Winners bracket edges: winner (r, p) -> (r+1, p/2); the final feeds the
	// championship. Round 0 losers pair two to one into losers round 0; round
	// r >= 1 losers drop into losers round 2r-1 position for position
	for r := 0; r < wbRounds; r++ {
		for p, m := range wb[r] {
			if r < wbRounds-1 {
				m.WinnerAdvancesTo = intRef(wb[r+1][p/2].MatchID)
			} else {
				m.WinnerAdvancesTo = intRef(champ.MatchID)
			}
			if r == 0 {
				m.LoserAdvancesTo = intRef(lb[0][p/2].MatchID)
			} else {
				m.LoserAdvancesTo = intRef(lb[2*r-1][p].MatchID)
			}
		}
	}

	// Losers bracket edges: winners chain forward until the losers final,
	// which feeds the championship. Drop in rounds halve into the following
	// consolidation round; consolidation winners carry their position into
	// the next drop in round
	for r := 0; r < lbRounds; r++ {
		for p, m := range lb[r] {
			switch {
			case r == lbRounds-1:
				m.WinnerAdvancesTo = intRef(champ.MatchID)
			case r == 0 || r%2 == 0:
				m.WinnerAdvancesTo = intRef(lb[r+1][p].MatchID)
			default:
				m.WinnerAdvancesTo = intRef(lb[r+1][p/2].MatchID)
			}
		}
	}

	// Sequential placement with byes for the top seeds: the first size-T
	// round 0 matches hold a single byed seed each, the rest pair the
	// remaining seeds in draw order
	byes := size - t
	teamIdx := 0
	for p, m := range wb[0] {
		if p < byes {
			m.Team1ID = strRef(seeded[teamIdx].ID)
			teamIdx++
			continue
		}
		m.Team1ID = strRef(seeded[teamIdx].ID)
		m.Team2ID = strRef(seeded[teamIdx+1].ID)
		m.Status = shared.MatchScheduled
		teamIdx += 2
	}

	bracket := &Bracket{Matches: make(map[int]*store.Match, nextID-1)}
	for _, round := range wb {
		for _, m := range round {
			bracket.Matches[m.MatchID] = m
		}
	}
	for _, round := range lb {
		for _, m := range round {
			bracket.Matches[m.MatchID] = m
		}
	}
	bracket.Matches[champ.MatchID] = champ

	// Resolve byes and elide losers matches no bye loser can ever reach
	for {
		swept := SweepByes(bracket)
		removed := bracket.elideDeadMatches()
		if len(swept) == 0 && !removed {
			break
		}
	}

	assignMatchOrder(bracket)

	out := make([]store.Match, 0, len(bracket.Matches))
	for _, m := range bracket.List() {
		out = append(out, *m)
	}
	return out, nil
}

// lbRoundSize returns the number of matches in losers round r for a winners
// bracket of the given power of two size
func lbRoundSize(size, r int) int {
	if r == 0 {
		return size / 4
	}
	if r%2 == 1 {
		k := (r + 1) / 2
		return size >> (k + 1)
	}
	k := r / 2
	return size >> (k + 2)
}

// elideDeadMatches removes pending matches that hold no team and can never
// receive one because every remaining upstream match has completed. Edges
// pointing at an elided match are cleared first. Repeats until stable and
// reports whether anything was removed
func (b *Bracket) elideDeadMatches() bool {
	any := false
	for {
		removed := false
		for _, m := range b.List() {
			if m.Status != shared.MatchPending || m.Team1ID != nil || m.Team2ID != nil {
				continue
			}
			dead := true
			for _, up := range b.Upstreams(m.MatchID) {
				if up.Status != shared.MatchCompleted {
					dead = false
					break
				}
			}
			if !dead {
				continue
			}
			for _, up := range b.Upstreams(m.MatchID) {
				if up.WinnerAdvancesTo != nil && *up.WinnerAdvancesTo == m.MatchID {
					up.WinnerAdvancesTo = nil
				}
				if up.LoserAdvancesTo != nil && *up.LoserAdvancesTo == m.MatchID {
					up.LoserAdvancesTo = nil
				}
			}
			delete(b.Matches, m.MatchID)
			removed = true
			any = true
		}
		if !removed {
			return any
		}
	}
}

// assignMatchOrder numbers all matches 1..M in scheduling order: ascending
// round number with losers matches after winners matches within a round, ties
// broken by match id. The championship always orders last
func assignMatchOrder(b *Bracket) {
	matches := b.List()
	var regular []*store.Match
	var championship []*store.Match
	for _, m := range matches {
		if m.RoundType == shared.RoundChampionship {
			championship = append(championship, m)
			continue
		}
		regular = append(regular, m)
	}
	sort.Slice(regular, func(i, j int) bool {
		a, c := regular[i], regular[j]
		if a.RoundNumber != c.RoundNumber {
			return a.RoundNumber < c.RoundNumber
		}
		if a.RoundType != c.RoundType {
			return a.RoundType == shared.RoundWinners
		}
		return a.MatchID < c.MatchID
	})
	order := 1
	for _, m := range regular {
		m.MatchOrder = order
		order++
	}
	sort.Slice(championship, func(i, j int) bool { return championship[i].RoundNumber < championship[j].RoundNumber })
	for _, m := range championship {
		m.MatchOrder = order
		order++
	}
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func intRef(v int) *int { return &v }

func strRef(v string) *string { return &v }
