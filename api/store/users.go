/* users.go
 * Contains the methods for interacting with the users collection
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

// CreateUser inserts a new user document
func (s *Store) CreateUser(ctx context.Context, user User) error {
	_, err := s.Collections.Users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: username %q already exists", shared.ErrConflict, user.Username)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser fetches one user by id
func (s *Store) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	err := s.Collections.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// GetUserByUsername fetches one user by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.Collections.Users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, fmt.Errorf("%w: user %q", shared.ErrNotFound, username)
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user by username: %w", err)
	}
	return user, nil
}

// ListUsers returns all users sorted by username
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := s.Collections.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces one user document
func (s *Store) UpdateUser(ctx context.Context, user User) error {
	res, err := s.Collections.Users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: username %q already exists", shared.ErrConflict, user.Username)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, user.ID)
	}
	return nil
}

// DeleteUser removes one user document
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.Collections.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	return nil
}

// CountAdmins returns the number of users holding the admin role
func (s *Store) CountAdmins(ctx context.Context) (int, error) {
	count, err := s.Collections.Users.CountDocuments(ctx, bson.M{"role": shared.RoleAdmin})
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return int(count), nil
}
