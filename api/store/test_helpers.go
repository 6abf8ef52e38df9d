/* test_helpers.go
 * Contains test helper functions and sample data for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"
	"time"

	"putting-league/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewStore("test_putting_league", mongoURI)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureIndexes(context.TODO()); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSamplePlayers creates n sample players with ids p1..pn.
func CreateSamplePlayers(n int) []Player {
	players := make([]Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, Player{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Player %d", i),
			Division: shared.DivisionAm,
		})
	}
	return players
}

// CreateSampleTournament creates a sample tournament for testing.
func CreateSampleTournament(id, date string) Tournament {
	return Tournament{
		ID:           id,
		Date:         date,
		Status:       shared.TournamentScheduled,
		StationCount: 6,
		CreatedAt:    time.Now().UTC(),
	}
}
