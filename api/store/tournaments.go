/* tournaments.go
 * Contains the methods for interacting with the tournaments collection
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

// CreateTournament inserts a new tournament document
func (s *Store) CreateTournament(ctx context.Context, tournament Tournament) error {
	_, err := s.Collections.Tournaments.InsertOne(ctx, tournament)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: tournament %s already exists", shared.ErrConflict, tournament.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

// GetTournament fetches one tournament by id
func (s *Store) GetTournament(ctx context.Context, id string) (Tournament, error) {
	var tournament Tournament
	err := s.Collections.Tournaments.FindOne(ctx, bson.M{"_id": id}).Decode(&tournament)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Tournament{}, fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return Tournament{}, fmt.Errorf("failed to fetch tournament: %w", err)
	}
	return tournament, nil
}

// GetTournamentByDate fetches the tournament scheduled on a YYYY-MM-DD date
func (s *Store) GetTournamentByDate(ctx context.Context, date string) (Tournament, error) {
	var tournament Tournament
	err := s.Collections.Tournaments.FindOne(ctx, bson.M{"date": date}).Decode(&tournament)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Tournament{}, fmt.Errorf("%w: no tournament on %s", shared.ErrNotFound, date)
	}
	if err != nil {
		return Tournament{}, fmt.Errorf("failed to fetch tournament by date: %w", err)
	}
	return tournament, nil
}

// ListTournaments returns all tournaments sorted by date descending
func (s *Store) ListTournaments(ctx context.Context) ([]Tournament, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.Collections.Tournaments.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	var tournaments []Tournament
	if err := cursor.All(ctx, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to decode tournaments: %w", err)
	}
	return tournaments, nil
}

// UpdateTournamentStatus sets the lifecycle status of a tournament
func (s *Store) UpdateTournamentStatus(ctx context.Context, id string, status shared.TournamentStatus) error {
	res, err := s.Collections.Tournaments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return fmt.Errorf("failed to update tournament status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	return nil
}

// SetStationCount records the number of putting stations available at a
// tournament
func (s *Store) SetStationCount(ctx context.Context, id string, stationCount int) error {
	res, err := s.Collections.Tournaments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"station_count": stationCount},
	})
	if err != nil {
		return fmt.Errorf("failed to set station count: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	return nil
}

// SetTotalTeams records the size of the generated team set
func (s *Store) SetTotalTeams(ctx context.Context, id string, totalTeams int) error {
	res, err := s.Collections.Tournaments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"total_teams": totalTeams},
	})
	if err != nil {
		return fmt.Errorf("failed to set total teams: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	return nil
}

// SetAcePotPayout records the ace pot amount paid out by a tournament,
// zero when the pot was not won
func (s *Store) SetAcePotPayout(ctx context.Context, id string, amount float64) error {
	res, err := s.Collections.Tournaments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"ace_pot_payout": amount},
	})
	if err != nil {
		return fmt.Errorf("failed to set ace pot payout: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	return nil
}

// DeleteTournament removes one tournament document
func (s *Store) DeleteTournament(ctx context.Context, id string) error {
	res, err := s.Collections.Tournaments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	return nil
}
