/* matches.go
 * Contains the methods for interacting with the matches collection
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

// InsertMatches bulk inserts a generated bracket
func (s *Store) InsertMatches(ctx context.Context, matches []Match) error {
	if len(matches) == 0 {
		return nil
	}
	docs := make([]interface{}, len(matches))
	for i, match := range matches {
		docs[i] = match
	}
	_, err := s.Collections.Matches.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert matches: %w", err)
	}
	return nil
}

// ListMatches returns every match in a tournament sorted by match order
func (s *Store) ListMatches(ctx context.Context, tournamentID string) ([]Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "match_order", Value: 1}})
	cursor, err := s.Collections.Matches.Find(ctx, bson.M{"tournament_id": tournamentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	var matches []Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return matches, nil
}

// GetMatch fetches one match by its in-bracket id
func (s *Store) GetMatch(ctx context.Context, tournamentID string, matchID int) (Match, error) {
	var match Match
	err := s.Collections.Matches.FindOne(ctx, bson.M{
		"tournament_id": tournamentID,
		"match_id":      matchID,
	}).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Match{}, fmt.Errorf("%w: match %d in tournament %s", shared.ErrNotFound, matchID, tournamentID)
	}
	if err != nil {
		return Match{}, fmt.Errorf("failed to fetch match: %w", err)
	}
	return match, nil
}

// SaveMatch upserts one match keyed by (tournament_id, match_id).
// Used both to persist score updates and to create the championship
// second game mid tournament
func (s *Store) SaveMatch(ctx context.Context, match Match) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.Collections.Matches.ReplaceOne(ctx, bson.M{
		"tournament_id": match.TournamentID,
		"match_id":      match.MatchID,
	}, match, opts)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	return nil
}

// DeleteMatch removes a single match, used when a rescore retracts the
// championship second game
func (s *Store) DeleteMatch(ctx context.Context, tournamentID string, matchID int) error {
	res, err := s.Collections.Matches.DeleteOne(ctx, bson.M{
		"tournament_id": tournamentID,
		"match_id":      matchID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: match %d in tournament %s", shared.ErrNotFound, matchID, tournamentID)
	}
	return nil
}

// ClearMatchEdges nulls the advancement ids of every match in a tournament.
// Run before DeleteMatches during bracket regeneration so no document is ever
// left pointing at a deleted match
func (s *Store) ClearMatchEdges(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.Matches.UpdateMany(ctx, bson.M{"tournament_id": tournamentID}, bson.M{
		"$unset": bson.M{"winner_advances_to": "", "loser_advances_to": ""},
	})
	if err != nil {
		return fmt.Errorf("failed to clear match edges: %w", err)
	}
	return nil
}

// DeleteMatches removes every match in a tournament
func (s *Store) DeleteMatches(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.Matches.DeleteMany(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}
