/* bracket_test.go
 * Contains unit tests for bracket.go functions
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"testing"

	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/stretchr/testify/assert"
)

// makeTeams builds n seeded teams named team-1..team-n
func makeTeams(n int) []store.Team {
	teams := make([]store.Team, n)
	for i := 0; i < n; i++ {
		teams[i] = store.Team{
			ID:           fmt.Sprintf("team-%d", i+1),
			TournamentID: "t1",
			Player1ID:    fmt.Sprintf("p%d", i+1),
			SeedNumber:   i + 1,
		}
	}
	return teams
}

// deref unwraps a nullable edge for comparisons, -1 meaning unset
func deref(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

// team unwraps a nullable team slot for comparisons
func team(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// TestBuildBracket_FourTeams tests the full graph for the smallest field
func TestBuildBracket_FourTeams(t *testing.T) {
	matches, err := BuildBracket("t1", makeTeams(4))
	assert.NoError(t, err)
	assert.Len(t, matches, 6)

	b := NewBracket(matches)
	m1, _ := b.Get(1)
	m2, _ := b.Get(2)
	m3, _ := b.Get(3)
	m4, _ := b.Get(4)
	m5, _ := b.Get(5)
	m6, _ := b.Get(6)

	// Round 0 pairs seeds sequentially and is ready to play
	assert.Equal(t, "team-1", team(m1.Team1ID))
	assert.Equal(t, "team-2", team(m1.Team2ID))
	assert.Equal(t, "team-3", team(m2.Team1ID))
	assert.Equal(t, "team-4", team(m2.Team2ID))
	assert.Equal(t, shared.MatchScheduled, m1.Status)
	assert.Equal(t, shared.MatchScheduled, m2.Status)
	assert.Equal(t, shared.MatchPending, m3.Status)
	assert.Equal(t, shared.MatchPending, m6.Status)

	// Winners bracket feeds the final and drops into the losers bracket
	assert.Equal(t, 3, deref(m1.WinnerAdvancesTo))
	assert.Equal(t, 4, deref(m1.LoserAdvancesTo))
	assert.Equal(t, 3, deref(m2.WinnerAdvancesTo))
	assert.Equal(t, 4, deref(m2.LoserAdvancesTo))
	assert.Equal(t, 6, deref(m3.WinnerAdvancesTo))
	assert.Equal(t, 5, deref(m3.LoserAdvancesTo))

	// Losers bracket chains to the championship and never has loser edges
	assert.Equal(t, 5, deref(m4.WinnerAdvancesTo))
	assert.Nil(t, m4.LoserAdvancesTo)
	assert.Equal(t, 6, deref(m5.WinnerAdvancesTo))
	assert.Nil(t, m5.LoserAdvancesTo)

	// Championship is terminal
	assert.Equal(t, shared.RoundChampionship, m6.RoundType)
	assert.Nil(t, m6.WinnerAdvancesTo)
	assert.Nil(t, m6.LoserAdvancesTo)
}

// TestBuildBracket_FourTeams_MatchOrder tests the global scheduling order
func TestBuildBracket_FourTeams_MatchOrder(t *testing.T) {
	matches, err := BuildBracket("t1", makeTeams(4))
	assert.NoError(t, err)

	order := make(map[int]int)
	for _, m := range matches {
		order[m.MatchID] = m.MatchOrder
	}
	assert.Equal(t, 1, order[1])
	assert.Equal(t, 2, order[2])
	assert.Equal(t, 3, order[4]) // losers round 0 follows the winners round 0 pair
	assert.Equal(t, 4, order[3])
	assert.Equal(t, 5, order[5])
	assert.Equal(t, 6, order[6]) // championship always last
}

// TestBuildBracket_EightTeams_Structure tests bracket shape for a full field
func TestBuildBracket_EightTeams_Structure(t *testing.T) {
	matches, err := BuildBracket("t1", makeTeams(8))
	assert.NoError(t, err)
	assert.Len(t, matches, 14)

	var winners, losers, championship int
	for _, m := range matches {
		switch m.RoundType {
		case shared.RoundWinners:
			winners++
		case shared.RoundLosers:
			losers++
		case shared.RoundChampionship:
			championship++
		}
		if m.RoundType == shared.RoundLosers {
			assert.Nil(t, m.LoserAdvancesTo)
		} else if m.RoundType == shared.RoundWinners {
			assert.NotNil(t, m.WinnerAdvancesTo)
			assert.NotNil(t, m.LoserAdvancesTo)
		}
	}
	assert.Equal(t, 7, winners)
	assert.Equal(t, 6, losers)
	assert.Equal(t, 1, championship)

	b := NewBracket(matches)
	final, _ := b.Get(7)
	assert.Equal(t, shared.RoundWinners, final.RoundType)
	assert.Equal(t, 14, deref(final.WinnerAdvancesTo))
	assert.Equal(t, 13, deref(final.LoserAdvancesTo))

	lbFinal, _ := b.Get(13)
	assert.Equal(t, 14, deref(lbFinal.WinnerAdvancesTo))
}

// TestBuildBracket_FiveTeams_ByesResolved tests bye completion and dead match elision
func TestBuildBracket_FiveTeams_ByesResolved(t *testing.T) {
	matches, err := BuildBracket("t1", makeTeams(5))
	assert.NoError(t, err)

	b := NewBracket(matches)

	// Top three seeds receive byes which complete at build time
	for id := 1; id <= 3; id++ {
		m, ok := b.Get(id)
		assert.True(t, ok)
		assert.Equal(t, shared.MatchCompleted, m.Status)
		assert.Equal(t, 1, m.Team1Score)
		assert.Equal(t, 0, m.Team2Score)
		assert.Nil(t, m.Team2ID)
	}

	// Seeds 4 and 5 play the only real round 0 match
	m4, _ := b.Get(4)
	assert.Equal(t, "team-4", team(m4.Team1ID))
	assert.Equal(t, "team-5", team(m4.Team2ID))
	assert.Equal(t, shared.MatchScheduled, m4.Status)

	// Byed seeds 1 and 2 meet directly in winners round 1
	m5, _ := b.Get(5)
	assert.Equal(t, "team-1", team(m5.Team1ID))
	assert.Equal(t, "team-2", team(m5.Team2ID))
	assert.Equal(t, shared.MatchScheduled, m5.Status)

	m6, _ := b.Get(6)
	assert.Equal(t, "team-3", team(m6.Team1ID))
	assert.Nil(t, m6.Team2ID)
	assert.Equal(t, shared.MatchPending, m6.Status)

	// The losers match fed only by the two bye losers can never fill and is
	// elided, with the feeder edges cleared
	_, ok := b.Get(8)
	assert.False(t, ok)
	m1, _ := b.Get(1)
	m2, _ := b.Get(2)
	assert.Nil(t, m1.LoserAdvancesTo)
	assert.Nil(t, m2.LoserAdvancesTo)

	// The other losers round 0 match still awaits the real round 0 loser
	m9, _ := b.Get(9)
	assert.Equal(t, shared.MatchPending, m9.Status)
}

// TestBuildBracket_MatchOrdersAreSequential tests that orders run 1..M with no gaps
func TestBuildBracket_MatchOrdersAreSequential(t *testing.T) {
	for _, n := range []int{4, 5, 8, 13, 16} {
		matches, err := BuildBracket("t1", makeTeams(n))
		assert.NoError(t, err)

		seen := make(map[int]bool)
		maxOrder := 0
		var champOrder int
		for _, m := range matches {
			assert.False(t, seen[m.MatchOrder], "duplicate order for %d teams", n)
			seen[m.MatchOrder] = true
			if m.MatchOrder > maxOrder {
				maxOrder = m.MatchOrder
			}
			if m.RoundType == shared.RoundChampionship {
				champOrder = m.MatchOrder
			}
		}
		assert.Equal(t, len(matches), maxOrder)
		assert.Equal(t, maxOrder, champOrder)
	}
}

// TestBuildBracket_TooFewTeams tests the minimum field size check
func TestBuildBracket_TooFewTeams(t *testing.T) {
	_, err := BuildBracket("t1", makeTeams(3))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

// TestBuildBracket_TooManyTeams tests the platform maximum
func TestBuildBracket_TooManyTeams(t *testing.T) {
	_, err := BuildBracket("t1", makeTeams(65))
	assert.ErrorIs(t, err, shared.ErrNotSupported)
}

// TestLbRoundSize tests losers bracket round sizing across field sizes
func TestLbRoundSize(t *testing.T) {
	assert.Equal(t, []int{1, 1}, lbSizes(4))
	assert.Equal(t, []int{2, 2, 1, 1}, lbSizes(8))
	assert.Equal(t, []int{4, 4, 2, 2, 1, 1}, lbSizes(16))
}

// lbSizes collects losers round sizes for a winners bracket size
func lbSizes(size int) []int {
	rounds := 0
	for s := size; s > 1; s >>= 1 {
		rounds++
	}
	var sizes []int
	for r := 0; r < 2*rounds-2; r++ {
		sizes = append(sizes, lbRoundSize(size, r))
	}
	return sizes
}

// TestNextPowerOfTwo tests bracket size rounding
func TestNextPowerOfTwo(t *testing.T) {
	assert.Equal(t, 4, nextPowerOfTwo(4))
	assert.Equal(t, 8, nextPowerOfTwo(5))
	assert.Equal(t, 8, nextPowerOfTwo(8))
	assert.Equal(t, 16, nextPowerOfTwo(9))
	assert.Equal(t, 64, nextPowerOfTwo(64))
}

// TestNewBracket_CopiesMatches tests that the caller's slice is not aliased
func TestNewBracket_CopiesMatches(t *testing.T) {
	matches, err := BuildBracket("t1", makeTeams(4))
	assert.NoError(t, err)

	b := NewBracket(matches)
	m1, _ := b.Get(1)
	m1.Team1Score = 99

	assert.Equal(t, 0, matches[0].Team1Score)
}
