/* players.go
 * Contains the methods for interacting with the players collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"putting-league/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePlayer inserts a new player document.
// Preconditions: receives a player with its id and division already set
// Postconditions: returns a conflict error when the name is already taken
func (s *Store) CreatePlayer(ctx context.Context, player Player) error {
	_, err := s.Collections.Players.InsertOne(ctx, player)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: player name %q already exists", shared.ErrConflict, player.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// GetPlayer fetches one player by id
func (s *Store) GetPlayer(ctx context.Context, id string) (Player, error) {
	var player Player
	err := s.Collections.Players.FindOne(ctx, bson.M{"_id": id}).Decode(&player)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Player{}, fmt.Errorf("%w: player %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to fetch player: %w", err)
	}
	return player, nil
}

// GetPlayerByName fetches one player by exact name
func (s *Store) GetPlayerByName(ctx context.Context, name string) (Player, error) {
	var player Player
	err := s.Collections.Players.FindOne(ctx, bson.M{"name": name}).Decode(&player)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Player{}, fmt.Errorf("%w: player %q", shared.ErrNotFound, name)
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to fetch player by name: %w", err)
	}
	return player, nil
}

// ListPlayers returns all players sorted by name
func (s *Store) ListPlayers(ctx context.Context) ([]Player, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.Collections.Players.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	var players []Player
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// ListPlayersByIDs returns the players with the given ids, unordered
func (s *Store) ListPlayersByIDs(ctx context.Context, ids []string) ([]Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := s.Collections.Players.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list players by ids: %w", err)
	}
	var players []Player
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// AddPlayerTotals adjusts a player's seasonal aggregates by the given deltas.
// Points are floored at zero so reversals can never leave a negative total
func (s *Store) AddPlayerTotals(ctx context.Context, id string, points int, cash float64) error {
	res, err := s.Collections.Players.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"seasonal_points": points, "seasonal_cash": cash},
	})
	if err != nil {
		return fmt.Errorf("failed to update player totals: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: player %s", shared.ErrNotFound, id)
	}
	if points < 0 {
		_, err = s.Collections.Players.UpdateOne(ctx,
			bson.M{"_id": id, "seasonal_points": bson.M{"$lt": 0}},
			bson.M{"$set": bson.M{"seasonal_points": 0}})
		if err != nil {
			return fmt.Errorf("failed to floor player points: %w", err)
		}
	}
	return nil
}
