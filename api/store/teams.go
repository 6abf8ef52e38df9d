/* teams.go
 * Contains the methods for interacting with the teams collection
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

// InsertTeams bulk inserts the teams generated for a tournament
func (s *Store) InsertTeams(ctx context.Context, teams []Team) error {
	if len(teams) == 0 {
		return nil
	}
	docs := make([]interface{}, len(teams))
	for i, team := range teams {
		docs[i] = team
	}
	_, err := s.Collections.Teams.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert teams: %w", err)
	}
	return nil
}

// ListTeams returns every team in a tournament sorted by seed
func (s *Store) ListTeams(ctx context.Context, tournamentID string) ([]Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seed_number", Value: 1}})
	cursor, err := s.Collections.Teams.Find(ctx, bson.M{"tournament_id": tournamentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	var teams []Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// GetTeam fetches one team by id
func (s *Store) GetTeam(ctx context.Context, id string) (Team, error) {
	var team Team
	err := s.Collections.Teams.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Team{}, fmt.Errorf("%w: team %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return Team{}, fmt.Errorf("failed to fetch team: %w", err)
	}
	return team, nil
}

// UpdateTeamPlace overrides the final place of one team.
// A nil place clears the field
func (s *Store) UpdateTeamPlace(ctx context.Context, id string, place *int) error {
	update := bson.M{"$set": bson.M{"final_place": place}}
	if place == nil {
		update = bson.M{"$unset": bson.M{"final_place": ""}}
	}
	res, err := s.Collections.Teams.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update team place: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: team %s", shared.ErrNotFound, id)
	}
	return nil
}

// UpdateTeamResult sets the points earned by one team and, when place is
// non-nil, its final place. Ghost teams earn points but never a place
func (s *Store) UpdateTeamResult(ctx context.Context, id string, place *int, points int) error {
	set := bson.M{"points_earned": points}
	if place != nil {
		set["final_place"] = *place
	}
	res, err := s.Collections.Teams.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update team result: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: team %s", shared.ErrNotFound, id)
	}
	return nil
}

// DeleteTeams removes every team in a tournament
func (s *Store) DeleteTeams(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.Teams.DeleteMany(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return fmt.Errorf("failed to delete teams: %w", err)
	}
	return nil
}
