/* ace_pot.go
 * Contains the methods for interacting with the ace_pot ledger collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertAcePotEntry appends one entry to the ace pot ledger
func (s *Store) InsertAcePotEntry(ctx context.Context, entry AcePotEntry) error {
	_, err := s.Collections.AcePot.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert ace pot entry: %w", err)
	}
	return nil
}

// ListAcePotEntries returns the full ace pot ledger, oldest first
func (s *Store) ListAcePotEntries(ctx context.Context) ([]AcePotEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.Collections.AcePot.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ace pot entries: %w", err)
	}
	var entries []AcePotEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ace pot entries: %w", err)
	}
	return entries, nil
}

// AcePotBalance sums every ledger entry to produce the rolling balance
func (s *Store) AcePotBalance(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}
	cursor, err := s.Collections.AcePot.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate ace pot balance: %w", err)
	}
	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode ace pot balance: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// DeleteAcePotPayouts removes the negative payout entries recorded by a
// tournament's completion while leaving the buy-in contributions in place.
// Used by recalculation so the balance reverts to its pre-payout value
func (s *Store) DeleteAcePotPayouts(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.AcePot.DeleteMany(ctx, bson.M{
		"tournament_id": tournamentID,
		"amount":        bson.M{"$lt": 0},
	})
	if err != nil {
		return fmt.Errorf("failed to delete ace pot payouts: %w", err)
	}
	return nil
}

// DeleteAcePotEntriesForTournament removes every ledger entry recorded by a
// tournament, both the buy-in contribution and any payout
func (s *Store) DeleteAcePotEntriesForTournament(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.AcePot.DeleteMany(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return fmt.Errorf("failed to delete ace pot entries: %w", err)
	}
	return nil
}
