/* teams.go
 * Contains the logic for forming doubles teams from a tournament's registered players
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"math/rand"

	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/google/uuid"
)

// FormTeams pairs registered players into doubles teams using a uniformly
// random draw without replacement.
// Preconditions: receives the tournament id, the registered player ids and the
// random source to draw from. The source is injectable so callers can pin
// seeds for reproducible draws
// Postconditions: returns the teams in draw order with seed numbers 1..T; an
// odd player count produces a final single player ghost team. Returns an
// error if fewer than two players are supplied
func FormTeams(tournamentID string, playerIDs []string, rng *rand.Rand) ([]store.Team, error) {
	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("%w: at least 2 players are required to form teams, got %d", shared.ErrInvalidInput, len(playerIDs))
	}

	pool := make([]string, len(playerIDs))
	copy(pool, playerIDs)

	var teams []store.Team
	seed := 1
	for len(pool) >= 2 {
		// Take the next captain from the end of the pool, then draw their
		// partner at random and swap remove it so the pool stays compact
		p1 := pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		i := rng.Intn(len(pool))
		p2 := pool[i]
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		teams = append(teams, store.Team{
			ID:           uuid.NewString(),
			TournamentID: tournamentID,
			Player1ID:    p1,
			Player2ID:    &p2,
			SeedNumber:   seed,
		})
		seed++
	}

	// The leftover player plays solo as a ghost team
	if len(pool) == 1 {
		teams = append(teams, store.Team{
			ID:           uuid.NewString(),
			TournamentID: tournamentID,
			Player1ID:    pool[0],
			IsGhostTeam:  true,
			SeedNumber:   seed,
		})
	}

	return teams, nil
}
