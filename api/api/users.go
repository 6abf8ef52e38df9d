/* users.go
 * User account management for the web console: bcrypt credential checks and
 * role gated CRUD with last admin protection
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies a username and password pair against the stored
// bcrypt hash. An unknown username and a wrong password are indistinguishable
// to the caller
func (a *API) Authenticate(ctx context.Context, username, password string) (store.User, error) {
	if username == "" || password == "" {
		return store.User{}, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}
	user, err := a.Store.GetUserByUsername(ctx, username)
	if errors.Is(err, shared.ErrNotFound) {
		return store.User{}, fmt.Errorf("%w: invalid username or password", shared.ErrAuthRequired)
	}
	if err != nil {
		return store.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return store.User{}, fmt.Errorf("%w: invalid username or password", shared.ErrAuthRequired)
	}
	return user, nil
}

// CreateUser creates an account. Only Admins may create users and the role
// must be Admin or Director; Viewer is the implicit role of anyone without a
// session and is never stored
func (a *API) CreateUser(ctx context.Context, actor store.User, username, displayName, password string, role shared.Role) (store.User, error) {
	if actor.Role != shared.RoleAdmin {
		return store.User{}, fmt.Errorf("%w: only Admins can create users", shared.ErrForbidden)
	}
	if username == "" || password == "" {
		return store.User{}, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}
	if role != shared.RoleAdmin && role != shared.RoleDirector {
		return store.User{}, fmt.Errorf("%w: role must be Admin or Director", shared.ErrInvalidInput)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return store.User{}, err
	}
	if displayName == "" {
		displayName = username
	}
	user := store.User{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.Store.CreateUser(ctx, user); err != nil {
		return store.User{}, err
	}
	return user, nil
}

// ListUsers returns every account. Password hashes are stripped before the
// result leaves the facade
func (a *API) ListUsers(ctx context.Context) ([]store.User, error) {
	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// UpdateUser applies a partial update to an account. Directors may only edit
// themselves and role changes are silently dropped unless the actor is an
// Admin. Demoting the last Admin is refused
func (a *API) UpdateUser(ctx context.Context, actor store.User, userID string, update UserUpdate) (store.User, error) {
	if actor.Role == shared.RoleDirector && actor.ID != userID {
		return store.User{}, fmt.Errorf("%w: Directors can only edit their own account", shared.ErrForbidden)
	}
	if actor.Role != shared.RoleAdmin && actor.Role != shared.RoleDirector {
		return store.User{}, fmt.Errorf("%w: operator session required", shared.ErrForbidden)
	}

	user, err := a.Store.GetUser(ctx, userID)
	if err != nil {
		return store.User{}, err
	}
	if update.Username != nil && *update.Username != "" {
		user.Username = *update.Username
	}
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := hashPassword(*update.Password)
		if err != nil {
			return store.User{}, err
		}
		user.PasswordHash = hash
	}
	if update.Role != nil && actor.Role == shared.RoleAdmin {
		newRole := *update.Role
		if newRole != shared.RoleAdmin && newRole != shared.RoleDirector {
			return store.User{}, fmt.Errorf("%w: role must be Admin or Director", shared.ErrInvalidInput)
		}
		if user.Role == shared.RoleAdmin && newRole != shared.RoleAdmin {
			admins, err := a.Store.CountAdmins(ctx)
			if err != nil {
				return store.User{}, err
			}
			if admins <= 1 {
				return store.User{}, fmt.Errorf("%w: cannot demote the last Admin", shared.ErrInvalidState)
			}
		}
		user.Role = newRole
	}

	if err := a.Store.UpdateUser(ctx, user); err != nil {
		return store.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes an account. Only Admins may delete users and the last
// Admin cannot be removed
func (a *API) DeleteUser(ctx context.Context, actor store.User, userID string) error {
	if actor.Role != shared.RoleAdmin {
		return fmt.Errorf("%w: only Admins can delete users", shared.ErrForbidden)
	}
	user, err := a.Store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == shared.RoleAdmin {
		admins, err := a.Store.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return fmt.Errorf("%w: cannot delete the last Admin", shared.ErrInvalidState)
		}
	}
	return a.Store.DeleteUser(ctx, userID)
}

// EnsureBootstrapAdmin seeds the initial Admin account when no users exist.
// Called once at startup so a fresh deployment can be logged into
func (a *API) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return a.Store.CreateUser(ctx, store.User{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  username,
		PasswordHash: hash,
		Role:         shared.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
