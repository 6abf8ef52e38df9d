/* registrations.go
 * Contains the methods for interacting with the registrations collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"putting-league/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateRegistration inserts one registration.
// Preconditions: the unique (tournament_id, player_id) index must exist
// Postconditions: registering the same player twice returns a conflict error
func (s *Store) CreateRegistration(ctx context.Context, registration Registration) error {
	_, err := s.Collections.Registrations.InsertOne(ctx, registration)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: player %s is already registered", shared.ErrConflict, registration.PlayerID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

// ListRegistrations returns every registration for a tournament
func (s *Store) ListRegistrations(ctx context.Context, tournamentID string) ([]Registration, error) {
	cursor, err := s.Collections.Registrations.Find(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	var registrations []Registration
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}
	return registrations, nil
}

// CountRegistrations returns the number of players registered for a tournament
func (s *Store) CountRegistrations(ctx context.Context, tournamentID string) (int, error) {
	count, err := s.Collections.Registrations.CountDocuments(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return int(count), nil
}

// DeleteRegistrations removes every registration for a tournament
func (s *Store) DeleteRegistrations(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.Registrations.DeleteMany(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return fmt.Errorf("failed to delete registrations: %w", err)
	}
	return nil
}
