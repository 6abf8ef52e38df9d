/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split per
 * collection: players, tournaments, registrations, teams, matches, team_history, ace_pot, users
 * and ledger. Each of these files contains the methods for interacting with that part of the
 * database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Players       *mongo.Collection
		Tournaments   *mongo.Collection
		Registrations *mongo.Collection
		Teams         *mongo.Collection
		Matches       *mongo.Collection
		TeamHistory   *mongo.Collection
		AcePot        *mongo.Collection
		Users         *mongo.Collection
		PayoutLedger  *mongo.Collection
	}
}

// Function for initialising Store. Connects to the database and binds the collections
// Preconditions: Receives strings containing the database name and the mongo connection URI
// Postconditions: Returns a pointer to the Store object, or an error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("database name or mongo URI cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Players = db.Collection("players")
	s.Collections.Tournaments = db.Collection("tournaments")
	s.Collections.Registrations = db.Collection("registrations")
	s.Collections.Teams = db.Collection("teams")
	s.Collections.Matches = db.Collection("matches")
	s.Collections.TeamHistory = db.Collection("team_history")
	s.Collections.AcePot = db.Collection("ace_pot")
	s.Collections.Users = db.Collection("users")
	s.Collections.PayoutLedger = db.Collection("payout_ledger")
	return s, nil
}

// EnsureIndexes creates the unique and lookup indexes the store relies on.
// Registrations are unique per (tournament, player), matches per
// (tournament, match id), team history per directed pair and users per
// username. Safe to call repeatedly
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Registrations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tournament_id", Value: 1}, {Key: "player_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create registrations index: %w", err)
	}

	_, err = s.Collections.Matches.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tournament_id", Value: 1}, {Key: "match_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create matches index: %w", err)
	}

	_, err = s.Collections.Teams.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tournament_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create teams index: %w", err)
	}

	_, err = s.Collections.TeamHistory.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "player_id", Value: 1}, {Key: "teammate_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create team history index: %w", err)
	}

	_, err = s.Collections.Players.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create players index: %w", err)
	}

	_, err = s.Collections.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = s.Collections.PayoutLedger.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tournament_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger index: %w", err)
	}
	return nil
}

// WithTransaction runs fn inside a single mongo transaction. Every store call
// made with the context fn receives joins the transaction; any error aborts
// the transaction and rolls back the whole set of writes
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
