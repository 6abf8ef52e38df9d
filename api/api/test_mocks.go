/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"sort"

	"putting-league/api/shared"
	"putting-league/api/store"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	// Storage for mock data
	Players       map[string]store.Player
	Tournaments   map[string]store.Tournament
	Registrations map[string][]store.Registration
	Teams         map[string]store.Team
	Matches       map[string]store.Match
	Histories     map[string]store.TeamHistory
	AcePotEntries []store.AcePotEntry
	Users         map[string]store.User
	Ledger        []store.LedgerEntry

	// Error injection for testing error paths
	CreatePlayerError           error
	GetPlayerError              error
	GetPlayerByNameError        error
	ListPlayersError            error
	ListPlayersByIDsError       error
	AddPlayerTotalsError        error
	CreateTournamentError       error
	GetTournamentError          error
	GetTournamentByDateError    error
	ListTournamentsError        error
	UpdateTournamentStatusError error
	SetStationCountError        error
	SetTotalTeamsError          error
	SetAcePotPayoutError        error
	DeleteTournamentError       error
	CreateRegistrationError     error
	ListRegistrationsError      error
	CountRegistrationsError     error
	DeleteRegistrationsError    error
	InsertTeamsError            error
	ListTeamsError              error
	GetTeamError                error
	UpdateTeamPlaceError        error
	UpdateTeamResultError       error
	DeleteTeamsError            error
	InsertMatchesError          error
	ListMatchesError            error
	GetMatchError               error
	SaveMatchError              error
	DeleteMatchError            error
	ClearMatchEdgesError        error
	DeleteMatchesError          error
	GetTeamHistoryError         error
	UpsertTeamHistoryError      error
	DeleteTeamHistoryError      error
	InsertAcePotEntryError      error
	ListAcePotEntriesError      error
	AcePotBalanceError          error
	DeleteAcePotPayoutsError    error
	DeleteAcePotForTournError   error
	CreateUserError             error
	GetUserError                error
	GetUserByUsernameError      error
	ListUsersError              error
	UpdateUserError             error
	DeleteUserError             error
	CountAdminsError            error
	InsertLedgerEntriesError    error
	ListLedgerEntriesError      error
	DeleteLedgerEntriesError    error
	WithTransactionError        error

	// Database info
	DatabaseName string
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements the minimal Client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with empty collections
func NewMockStore() *MockStore {
	return &MockStore{
		Players:       make(map[string]store.Player),
		Tournaments:   make(map[string]store.Tournament),
		Registrations: make(map[string][]store.Registration),
		Teams:         make(map[string]store.Team),
		Matches:       make(map[string]store.Match),
		Histories:     make(map[string]store.TeamHistory),
		Users:         make(map[string]store.User),
		DatabaseName:  "test_db",
	}
}

func matchKey(tournamentID string, matchID int) string {
	return fmt.Sprintf("%s/%d", tournamentID, matchID)
}

func historyKey(playerID, teammateID string) string {
	return fmt.Sprintf("%s/%s", playerID, teammateID)
}

// CreatePlayer mock implementation
func (m *MockStore) CreatePlayer(ctx context.Context, player store.Player) error {
	if m.CreatePlayerError != nil {
		return m.CreatePlayerError
	}
	for _, p := range m.Players {
		if p.Name == player.Name {
			return fmt.Errorf("%w: player %q already exists", shared.ErrConflict, player.Name)
		}
	}
	m.Players[player.ID] = player
	return nil
}

// GetPlayer mock implementation
func (m *MockStore) GetPlayer(ctx context.Context, id string) (store.Player, error) {
	if m.GetPlayerError != nil {
		return store.Player{}, m.GetPlayerError
	}
	player, ok := m.Players[id]
	if !ok {
		return store.Player{}, fmt.Errorf("%w: player %s", shared.ErrNotFound, id)
	}
	return player, nil
}

// GetPlayerByName mock implementation
func (m *MockStore) GetPlayerByName(ctx context.Context, name string) (store.Player, error) {
	if m.GetPlayerByNameError != nil {
		return store.Player{}, m.GetPlayerByNameError
	}
	for _, p := range m.Players {
		if p.Name == name {
			return p, nil
		}
	}
	return store.Player{}, fmt.Errorf("%w: player %q", shared.ErrNotFound, name)
}

// ListPlayers mock implementation
func (m *MockStore) ListPlayers(ctx context.Context) ([]store.Player, error) {
	if m.ListPlayersError != nil {
		return nil, m.ListPlayersError
	}
	players := make([]store.Player, 0, len(m.Players))
	for _, p := range m.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

// ListPlayersByIDs mock implementation
func (m *MockStore) ListPlayersByIDs(ctx context.Context, ids []string) ([]store.Player, error) {
	if m.ListPlayersByIDsError != nil {
		return nil, m.ListPlayersByIDsError
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var players []store.Player
	for _, id := range ids {
		if p, ok := m.Players[id]; ok {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

// AddPlayerTotals mock implementation
func (m *MockStore) AddPlayerTotals(ctx context.Context, id string, points int, cash float64) error {
	if m.AddPlayerTotalsError != nil {
		return m.AddPlayerTotalsError
	}
	player, ok := m.Players[id]
	if !ok {
		return fmt.Errorf("%w: player %s", shared.ErrNotFound, id)
	}
	player.SeasonalPoints += points
	if player.SeasonalPoints < 0 {
		player.SeasonalPoints = 0
	}
	player.SeasonalCash += cash
	m.Players[id] = player
	return nil
}

// CreateTournament mock implementation
func (m *MockStore) CreateTournament(ctx context.Context, tournament store.Tournament) error {
	if m.CreateTournamentError != nil {
		return m.CreateTournamentError
	}
	if _, ok := m.Tournaments[tournament.ID]; ok {
		return fmt.Errorf("%w: tournament %s already exists", shared.ErrConflict, tournament.ID)
	}
	m.Tournaments[tournament.ID] = tournament
	return nil
}

// GetTournament mock implementation
func (m *MockStore) GetTournament(ctx context.Context, id string) (store.Tournament, error) {
	if m.GetTournamentError != nil {
		return store.Tournament{}, m.GetTournamentError
	}
	tournament, ok := m.Tournaments[id]
	if !ok {
		return store.Tournament{}, fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	return tournament, nil
}

// GetTournamentByDate mock implementation
func (m *MockStore) GetTournamentByDate(ctx context.Context, date string) (store.Tournament, error) {
	if m.GetTournamentByDateError != nil {
		return store.Tournament{}, m.GetTournamentByDateError
	}
	for _, t := range m.Tournaments {
		if t.Date == date {
			return t, nil
		}
	}
	return store.Tournament{}, fmt.Errorf("%w: tournament on %s", shared.ErrNotFound, date)
}

// ListTournaments mock implementation
func (m *MockStore) ListTournaments(ctx context.Context) ([]store.Tournament, error) {
	if m.ListTournamentsError != nil {
		return nil, m.ListTournamentsError
	}
	tournaments := make([]store.Tournament, 0, len(m.Tournaments))
	for _, t := range m.Tournaments {
		tournaments = append(tournaments, t)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].Date > tournaments[j].Date })
	return tournaments, nil
}

// UpdateTournamentStatus mock implementation
func (m *MockStore) UpdateTournamentStatus(ctx context.Context, id string, status shared.TournamentStatus) error {
	if m.UpdateTournamentStatusError != nil {
		return m.UpdateTournamentStatusError
	}
	tournament, ok := m.Tournaments[id]
	if !ok {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	tournament.Status = status
	m.Tournaments[id] = tournament
	return nil
}

// SetStationCount mock implementation
func (m *MockStore) SetStationCount(ctx context.Context, id string, stationCount int) error {
	if m.SetStationCountError != nil {
		return m.SetStationCountError
	}
	tournament, ok := m.Tournaments[id]
	if !ok {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	tournament.StationCount = stationCount
	m.Tournaments[id] = tournament
	return nil
}

// SetTotalTeams mock implementation
func (m *MockStore) SetTotalTeams(ctx context.Context, id string, totalTeams int) error {
	if m.SetTotalTeamsError != nil {
		return m.SetTotalTeamsError
	}
	tournament, ok := m.Tournaments[id]
	if !ok {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	tournament.TotalTeams = totalTeams
	m.Tournaments[id] = tournament
	return nil
}

// SetAcePotPayout mock implementation
func (m *MockStore) SetAcePotPayout(ctx context.Context, id string, amount float64) error {
	if m.SetAcePotPayoutError != nil {
		return m.SetAcePotPayoutError
	}
	tournament, ok := m.Tournaments[id]
	if !ok {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	tournament.AcePotPayout = amount
	m.Tournaments[id] = tournament
	return nil
}

// DeleteTournament mock implementation
func (m *MockStore) DeleteTournament(ctx context.Context, id string) error {
	if m.DeleteTournamentError != nil {
		return m.DeleteTournamentError
	}
	if _, ok := m.Tournaments[id]; !ok {
		return fmt.Errorf("%w: tournament %s", shared.ErrNotFound, id)
	}
	delete(m.Tournaments, id)
	return nil
}

// CreateRegistration mock implementation
func (m *MockStore) CreateRegistration(ctx context.Context, registration store.Registration) error {
	if m.CreateRegistrationError != nil {
		return m.CreateRegistrationError
	}
	for _, r := range m.Registrations[registration.TournamentID] {
		if r.PlayerID == registration.PlayerID {
			return fmt.Errorf("%w: player %s is already registered", shared.ErrConflict, registration.PlayerID)
		}
	}
	m.Registrations[registration.TournamentID] = append(m.Registrations[registration.TournamentID], registration)
	return nil
}

// ListRegistrations mock implementation
func (m *MockStore) ListRegistrations(ctx context.Context, tournamentID string) ([]store.Registration, error) {
	if m.ListRegistrationsError != nil {
		return nil, m.ListRegistrationsError
	}
	return append([]store.Registration(nil), m.Registrations[tournamentID]...), nil
}

// CountRegistrations mock implementation
func (m *MockStore) CountRegistrations(ctx context.Context, tournamentID string) (int, error) {
	if m.CountRegistrationsError != nil {
		return 0, m.CountRegistrationsError
	}
	return len(m.Registrations[tournamentID]), nil
}

// DeleteRegistrations mock implementation
func (m *MockStore) DeleteRegistrations(ctx context.Context, tournamentID string) error {
	if m.DeleteRegistrationsError != nil {
		return m.DeleteRegistrationsError
	}
	delete(m.Registrations, tournamentID)
	return nil
}

// InsertTeams mock implementation
func (m *MockStore) InsertTeams(ctx context.Context, teams []store.Team) error {
	if m.InsertTeamsError != nil {
		return m.InsertTeamsError
	}
	for _, t := range teams {
		m.Teams[t.ID] = t
	}
	return nil
}

// ListTeams mock implementation
func (m *MockStore) ListTeams(ctx context.Context, tournamentID string) ([]store.Team, error) {
	if m.ListTeamsError != nil {
		return nil, m.ListTeamsError
	}
	var teams []store.Team
	for _, t := range m.Teams {
		if t.TournamentID == tournamentID {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].SeedNumber < teams[j].SeedNumber })
	return teams, nil
}

// GetTeam mock implementation
func (m *MockStore) GetTeam(ctx context.Context, id string) (store.Team, error) {
	if m.GetTeamError != nil {
		return store.Team{}, m.GetTeamError
	}
	team, ok := m.Teams[id]
	if !ok {
		return store.Team{}, fmt.Errorf("%w: team %s", shared.ErrNotFound, id)
	}
	return team, nil
}

// UpdateTeamPlace mock implementation
func (m *MockStore) UpdateTeamPlace(ctx context.Context, id string, place *int) error {
	if m.UpdateTeamPlaceError != nil {
		return m.UpdateTeamPlaceError
	}
	team, ok := m.Teams[id]
	if !ok {
		return fmt.Errorf("%w: team %s", shared.ErrNotFound, id)
	}
	team.FinalPlace = place
	m.Teams[id] = team
	return nil
}

// UpdateTeamResult mock implementation
func (m *MockStore) UpdateTeamResult(ctx context.Context, id string, place *int, points int) error {
	if m.UpdateTeamResultError != nil {
		return m.UpdateTeamResultError
	}
	team, ok := m.Teams[id]
	if !ok {
		return fmt.Errorf("%w: team %s", shared.ErrNotFound, id)
	}
	if place != nil {
		team.FinalPlace = place
	}
	team.PointsEarned = points
	m.Teams[id] = team
	return nil
}

// DeleteTeams mock implementation
func (m *MockStore) DeleteTeams(ctx context.Context, tournamentID string) error {
	if m.DeleteTeamsError != nil {
		return m.DeleteTeamsError
	}
	for id, t := range m.Teams {
		if t.TournamentID == tournamentID {
			delete(m.Teams, id)
		}
	}
	return nil
}

// InsertMatches mock implementation
func (m *MockStore) InsertMatches(ctx context.Context, matches []store.Match) error {
	if m.InsertMatchesError != nil {
		return m.InsertMatchesError
	}
	for _, match := range matches {
		m.Matches[matchKey(match.TournamentID, match.MatchID)] = match
	}
	return nil
}

// ListMatches mock implementation
func (m *MockStore) ListMatches(ctx context.Context, tournamentID string) ([]store.Match, error) {
	if m.ListMatchesError != nil {
		return nil, m.ListMatchesError
	}
	var matches []store.Match
	for _, match := range m.Matches {
		if match.TournamentID == tournamentID {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].MatchOrder < matches[j].MatchOrder })
	return matches, nil
}

// GetMatch mock implementation
func (m *MockStore) GetMatch(ctx context.Context, tournamentID string, matchID int) (store.Match, error) {
	if m.GetMatchError != nil {
		return store.Match{}, m.GetMatchError
	}
	match, ok := m.Matches[matchKey(tournamentID, matchID)]
	if !ok {
		return store.Match{}, fmt.Errorf("%w: match %d in tournament %s", shared.ErrNotFound, matchID, tournamentID)
	}
	return match, nil
}

// SaveMatch mock implementation
func (m *MockStore) SaveMatch(ctx context.Context, match store.Match) error {
	if m.SaveMatchError != nil {
		return m.SaveMatchError
	}
	m.Matches[matchKey(match.TournamentID, match.MatchID)] = match
	return nil
}

// DeleteMatch mock implementation
func (m *MockStore) DeleteMatch(ctx context.Context, tournamentID string, matchID int) error {
	if m.DeleteMatchError != nil {
		return m.DeleteMatchError
	}
	key := matchKey(tournamentID, matchID)
	if _, ok := m.Matches[key]; !ok {
		return fmt.Errorf("%w: match %d in tournament %s", shared.ErrNotFound, matchID, tournamentID)
	}
	delete(m.Matches, key)
	return nil
}

// ClearMatchEdges mock implementation
func (m *MockStore) ClearMatchEdges(ctx context.Context, tournamentID string) error {
	if m.ClearMatchEdgesError != nil {
		return m.ClearMatchEdgesError
	}
	for key, match := range m.Matches {
		if match.TournamentID == tournamentID {
			match.WinnerAdvancesTo = nil
			match.LoserAdvancesTo = nil
			m.Matches[key] = match
		}
	}
	return nil
}

// DeleteMatches mock implementation
func (m *MockStore) DeleteMatches(ctx context.Context, tournamentID string) error {
	if m.DeleteMatchesError != nil {
		return m.DeleteMatchesError
	}
	for key, match := range m.Matches {
		if match.TournamentID == tournamentID {
			delete(m.Matches, key)
		}
	}
	return nil
}

// GetTeamHistory mock implementation
func (m *MockStore) GetTeamHistory(ctx context.Context, playerID, teammateID string) (store.TeamHistory, error) {
	if m.GetTeamHistoryError != nil {
		return store.TeamHistory{}, m.GetTeamHistoryError
	}
	history, ok := m.Histories[historyKey(playerID, teammateID)]
	if !ok {
		return store.TeamHistory{}, fmt.Errorf("%w: no pairing history for %s and %s", shared.ErrNotFound, playerID, teammateID)
	}
	return history, nil
}

// UpsertTeamHistory mock implementation
func (m *MockStore) UpsertTeamHistory(ctx context.Context, history store.TeamHistory) error {
	if m.UpsertTeamHistoryError != nil {
		return m.UpsertTeamHistoryError
	}
	m.Histories[historyKey(history.PlayerID, history.TeammateID)] = history
	return nil
}

// DeleteTeamHistory mock implementation
func (m *MockStore) DeleteTeamHistory(ctx context.Context, playerID, teammateID string) error {
	if m.DeleteTeamHistoryError != nil {
		return m.DeleteTeamHistoryError
	}
	key := historyKey(playerID, teammateID)
	if _, ok := m.Histories[key]; !ok {
		return fmt.Errorf("%w: no pairing history for %s and %s", shared.ErrNotFound, playerID, teammateID)
	}
	delete(m.Histories, key)
	return nil
}

// InsertAcePotEntry mock implementation
func (m *MockStore) InsertAcePotEntry(ctx context.Context, entry store.AcePotEntry) error {
	if m.InsertAcePotEntryError != nil {
		return m.InsertAcePotEntryError
	}
	m.AcePotEntries = append(m.AcePotEntries, entry)
	return nil
}

// ListAcePotEntries mock implementation
func (m *MockStore) ListAcePotEntries(ctx context.Context) ([]store.AcePotEntry, error) {
	if m.ListAcePotEntriesError != nil {
		return nil, m.ListAcePotEntriesError
	}
	entries := append([]store.AcePotEntry(nil), m.AcePotEntries...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

// AcePotBalance mock implementation
func (m *MockStore) AcePotBalance(ctx context.Context) (float64, error) {
	if m.AcePotBalanceError != nil {
		return 0, m.AcePotBalanceError
	}
	balance := 0.0
	for _, entry := range m.AcePotEntries {
		balance += entry.Amount
	}
	return balance, nil
}

// DeleteAcePotPayouts mock implementation
func (m *MockStore) DeleteAcePotPayouts(ctx context.Context, tournamentID string) error {
	if m.DeleteAcePotPayoutsError != nil {
		return m.DeleteAcePotPayoutsError
	}
	var kept []store.AcePotEntry
	for _, entry := range m.AcePotEntries {
		if entry.TournamentID != nil && *entry.TournamentID == tournamentID && entry.Amount < 0 {
			continue
		}
		kept = append(kept, entry)
	}
	m.AcePotEntries = kept
	return nil
}

// DeleteAcePotEntriesForTournament mock implementation
func (m *MockStore) DeleteAcePotEntriesForTournament(ctx context.Context, tournamentID string) error {
	if m.DeleteAcePotForTournError != nil {
		return m.DeleteAcePotForTournError
	}
	var kept []store.AcePotEntry
	for _, entry := range m.AcePotEntries {
		if entry.TournamentID != nil && *entry.TournamentID == tournamentID {
			continue
		}
		kept = append(kept, entry)
	}
	m.AcePotEntries = kept
	return nil
}

// CreateUser mock implementation
func (m *MockStore) CreateUser(ctx context.Context, user store.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	for _, u := range m.Users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username %q already exists", shared.ErrConflict, user.Username)
		}
	}
	m.Users[user.ID] = user
	return nil
}

// GetUser mock implementation
func (m *MockStore) GetUser(ctx context.Context, id string) (store.User, error) {
	if m.GetUserError != nil {
		return store.User{}, m.GetUserError
	}
	user, ok := m.Users[id]
	if !ok {
		return store.User{}, fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	return user, nil
}

// GetUserByUsername mock implementation
func (m *MockStore) GetUserByUsername(ctx context.Context, username string) (store.User, error) {
	if m.GetUserByUsernameError != nil {
		return store.User{}, m.GetUserByUsernameError
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return store.User{}, fmt.Errorf("%w: user %q", shared.ErrNotFound, username)
}

// ListUsers mock implementation
func (m *MockStore) ListUsers(ctx context.Context) ([]store.User, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}
	users := make([]store.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// UpdateUser mock implementation
func (m *MockStore) UpdateUser(ctx context.Context, user store.User) error {
	if m.UpdateUserError != nil {
		return m.UpdateUserError
	}
	if _, ok := m.Users[user.ID]; !ok {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, user.ID)
	}
	for id, u := range m.Users {
		if id != user.ID && u.Username == user.Username {
			return fmt.Errorf("%w: username %q already exists", shared.ErrConflict, user.Username)
		}
	}
	m.Users[user.ID] = user
	return nil
}

// DeleteUser mock implementation
func (m *MockStore) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserError != nil {
		return m.DeleteUserError
	}
	if _, ok := m.Users[id]; !ok {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	delete(m.Users, id)
	return nil
}

// CountAdmins mock implementation
func (m *MockStore) CountAdmins(ctx context.Context) (int, error) {
	if m.CountAdminsError != nil {
		return 0, m.CountAdminsError
	}
	count := 0
	for _, u := range m.Users {
		if u.Role == shared.RoleAdmin {
			count++
		}
	}
	return count, nil
}

// InsertLedgerEntries mock implementation
func (m *MockStore) InsertLedgerEntries(ctx context.Context, entries []store.LedgerEntry) error {
	if m.InsertLedgerEntriesError != nil {
		return m.InsertLedgerEntriesError
	}
	m.Ledger = append(m.Ledger, entries...)
	return nil
}

// ListLedgerEntries mock implementation
func (m *MockStore) ListLedgerEntries(ctx context.Context, tournamentID string) ([]store.LedgerEntry, error) {
	if m.ListLedgerEntriesError != nil {
		return nil, m.ListLedgerEntriesError
	}
	var entries []store.LedgerEntry
	for _, entry := range m.Ledger {
		if entry.TournamentID == tournamentID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// DeleteLedgerEntries mock implementation
func (m *MockStore) DeleteLedgerEntries(ctx context.Context, tournamentID string) error {
	if m.DeleteLedgerEntriesError != nil {
		return m.DeleteLedgerEntriesError
	}
	var kept []store.LedgerEntry
	for _, entry := range m.Ledger {
		if entry.TournamentID != tournamentID {
			kept = append(kept, entry)
		}
	}
	m.Ledger = kept
	return nil
}

// recordingNotifier captures every notification for assertions
type recordingNotifier struct {
	MatchEvents []shared.MatchEvent
	Brackets    []string
	Completions []CompletionSummary
}

func (r *recordingNotifier) MatchUpdated(event shared.MatchEvent) {
	r.MatchEvents = append(r.MatchEvents, event)
}

func (r *recordingNotifier) BracketGenerated(tournamentID string, teams int, matches int) {
	r.Brackets = append(r.Brackets, fmt.Sprintf("%s:%d:%d", tournamentID, teams, matches))
}

func (r *recordingNotifier) TournamentCompleted(summary CompletionSummary) {
	r.Completions = append(r.Completions, summary)
}

// WithTransaction mock implementation. The mock has no transactional
// semantics so the callback runs against live state
func (m *MockStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithTransactionError != nil {
		return m.WithTransactionError
	}
	return fn(ctx)
}

// GetDatabase mock implementation
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: m.DatabaseName}
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)
