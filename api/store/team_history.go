/* team_history.go
 * Contains the methods for interacting with the team_history collection.
 * Pairing records are directed, so each teammate pair is stored twice,
 * once from each player's side
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

// GetTeamHistory fetches one directed pairing record
func (s *Store) GetTeamHistory(ctx context.Context, playerID, teammateID string) (TeamHistory, error) {
	var history TeamHistory
	err := s.Collections.TeamHistory.FindOne(ctx, bson.M{
		"player_id":   playerID,
		"teammate_id": teammateID,
	}).Decode(&history)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return TeamHistory{}, fmt.Errorf("%w: no pairing history for %s with %s", shared.ErrNotFound, playerID, teammateID)
	}
	if err != nil {
		return TeamHistory{}, fmt.Errorf("failed to fetch team history: %w", err)
	}
	return history, nil
}

// UpsertTeamHistory writes one directed pairing record
func (s *Store) UpsertTeamHistory(ctx context.Context, history TeamHistory) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.TeamHistory.ReplaceOne(ctx, bson.M{
		"player_id":   history.PlayerID,
		"teammate_id": history.TeammateID,
	}, history, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert team history: %w", err)
	}
	return nil
}

// DeleteTeamHistory removes one directed pairing record
func (s *Store) DeleteTeamHistory(ctx context.Context, playerID, teammateID string) error {
	_, err := s.Collections.TeamHistory.DeleteOne(ctx, bson.M{
		"player_id":   playerID,
		"teammate_id": teammateID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete team history: %w", err)
	}
	return nil
}
