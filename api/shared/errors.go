/* errors.go
 * Domain error kinds shared between sub packages. The web layer maps these
 * onto HTTP status codes
 * Authors: Zachary Bower
 */

package shared

import "errors"

var (
	// ErrInvalidInput covers malformed payloads, bad dates, bad divisions,
	// negative or tied scores and undersized player or team lists
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers unknown tournament, match, team, player and user ids
	ErrNotFound = errors.New("not found")

	// ErrInvalidState covers operations attempted in the wrong lifecycle
	// state, such as scoring a match that is not in progress
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict covers duplicate player names and duplicate registrations
	ErrConflict = errors.New("conflict")

	// ErrNoStationAvailable is returned when every station is in use
	ErrNoStationAvailable = errors.New("no station available")

	// ErrUnscoreableMatch is returned for championship matches that merely
	// hold group stage survivors and must never be scored directly
	ErrUnscoreableMatch = errors.New("match cannot be scored")

	// ErrNotSupported is returned for team counts beyond the platform maximum
	ErrNotSupported = errors.New("not supported")

	// ErrAuthRequired and ErrForbidden cover the role gating layer
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
)
