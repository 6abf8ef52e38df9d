/* ledger.go
 * Contains the methods for interacting with the payout_ledger collection.
 * The ledger records every aggregate written by tournament completion so
 * recalculation and deletion can reverse them exactly
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertLedgerEntries bulk inserts the payouts recorded by one completion run
func (s *Store) InsertLedgerEntries(ctx context.Context, entries []LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		docs[i] = entry
	}
	_, err := s.Collections.PayoutLedger.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entries: %w", err)
	}
	return nil
}

// ListLedgerEntries returns every ledger entry written by a tournament
func (s *Store) ListLedgerEntries(ctx context.Context, tournamentID string) ([]LedgerEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.Collections.PayoutLedger.Find(ctx, bson.M{"tournament_id": tournamentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	var entries []LedgerEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}
	return entries, nil
}

// DeleteLedgerEntries removes every ledger entry written by a tournament
func (s *Store) DeleteLedgerEntries(ctx context.Context, tournamentID string) error {
	_, err := s.Collections.PayoutLedger.DeleteMany(ctx, bson.M{"tournament_id": tournamentID})
	if err != nil {
		return fmt.Errorf("failed to delete ledger entries: %w", err)
	}
	return nil
}
