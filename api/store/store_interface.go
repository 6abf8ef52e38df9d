/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"putting-league/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Players
	CreatePlayer(ctx context.Context, player Player) error
	GetPlayer(ctx context.Context, id string) (Player, error)
	GetPlayerByName(ctx context.Context, name string) (Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	ListPlayersByIDs(ctx context.Context, ids []string) ([]Player, error)
	AddPlayerTotals(ctx context.Context, id string, points int, cash float64) error

	// Tournaments
	CreateTournament(ctx context.Context, tournament Tournament) error
	GetTournament(ctx context.Context, id string) (Tournament, error)
	GetTournamentByDate(ctx context.Context, date string) (Tournament, error)
	ListTournaments(ctx context.Context) ([]Tournament, error)
	UpdateTournamentStatus(ctx context.Context, id string, status shared.TournamentStatus) error
	SetStationCount(ctx context.Context, id string, stationCount int) error
	SetTotalTeams(ctx context.Context, id string, totalTeams int) error
	SetAcePotPayout(ctx context.Context, id string, amount float64) error
	DeleteTournament(ctx context.Context, id string) error

	// Registrations
	CreateRegistration(ctx context.Context, registration Registration) error
	ListRegistrations(ctx context.Context, tournamentID string) ([]Registration, error)
	CountRegistrations(ctx context.Context, tournamentID string) (int, error)
	DeleteRegistrations(ctx context.Context, tournamentID string) error

	// Teams
	InsertTeams(ctx context.Context, teams []Team) error
	ListTeams(ctx context.Context, tournamentID string) ([]Team, error)
	GetTeam(ctx context.Context, id string) (Team, error)
	UpdateTeamPlace(ctx context.Context, id string, place *int) error
	UpdateTeamResult(ctx context.Context, id string, place *int, points int) error
	DeleteTeams(ctx context.Context, tournamentID string) error

	// Matches
	InsertMatches(ctx context.Context, matches []Match) error
	ListMatches(ctx context.Context, tournamentID string) ([]Match, error)
	GetMatch(ctx context.Context, tournamentID string, matchID int) (Match, error)
	SaveMatch(ctx context.Context, match Match) error
	DeleteMatch(ctx context.Context, tournamentID string, matchID int) error
	ClearMatchEdges(ctx context.Context, tournamentID string) error
	DeleteMatches(ctx context.Context, tournamentID string) error

	// Team history
	GetTeamHistory(ctx context.Context, playerID, teammateID string) (TeamHistory, error)
	UpsertTeamHistory(ctx context.Context, history TeamHistory) error
	DeleteTeamHistory(ctx context.Context, playerID, teammateID string) error

	// Ace pot
	InsertAcePotEntry(ctx context.Context, entry AcePotEntry) error
	ListAcePotEntries(ctx context.Context) ([]AcePotEntry, error)
	AcePotBalance(ctx context.Context) (float64, error)
	DeleteAcePotPayouts(ctx context.Context, tournamentID string) error
	DeleteAcePotEntriesForTournament(ctx context.Context, tournamentID string) error

	// Users
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, id string) error
	CountAdmins(ctx context.Context) (int, error)

	// Payout ledger
	InsertLedgerEntries(ctx context.Context, entries []LedgerEntry) error
	ListLedgerEntries(ctx context.Context, tournamentID string) ([]LedgerEntry, error)
	DeleteLedgerEntries(ctx context.Context, tournamentID string) error

	// Transactions
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
