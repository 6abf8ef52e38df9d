/* api.go
 * This file contains the public methods for interacting with this package. For consistent results,
 * functions should only be called from this file, not the logic or store sub packages. Mutations
 * run inside a store transaction and notifications are emitted only after the transaction commits
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"putting-league/api/logic"
	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// API provides methods for interacting with the putting league data layer
type API struct {
	Store  store.Interface
	Notify Notifier
	Rand   *rand.Rand
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string) (*API, error) {
	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := s.EnsureIndexes(context.TODO()); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return &API{
		Store: s,
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// CreateTournament creates a Scheduled tournament on the given date and
// registers its initial player list.
// Preconditions: receives a YYYY-MM-DD date and at least two player names
// Postconditions: returns the created tournament and the registration outcome
func (a *API) CreateTournament(ctx context.Context, date string, players []RegistrationRequest) (store.Tournament, *RegistrationResult, error) {
	if _, err := time.Parse(shared.DateLayout, date); err != nil {
		return store.Tournament{}, nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", shared.ErrInvalidInput)
	}
	if len(players) < 2 {
		return store.Tournament{}, nil, fmt.Errorf("%w: at least two players are required", shared.ErrInvalidInput)
	}

	tournament := store.Tournament{
		ID:           uuid.NewString(),
		Date:         date,
		Status:       shared.TournamentScheduled,
		StationCount: 6,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.Store.CreateTournament(ctx, tournament); err != nil {
		return store.Tournament{}, nil, err
	}

	result, err := a.RegisterPlayers(ctx, tournament.ID, players)
	if err != nil {
		return tournament, result, err
	}
	return tournament, result, nil
}

// GetTournament fetches one tournament with its registered players
func (a *API) GetTournament(ctx context.Context, id string) (*TournamentDetail, error) {
	var (
		tournament    store.Tournament
		registrations []store.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := a.Store.GetTournament(gctx, id)
		tournament = t
		return err
	})
	g.Go(func() error {
		regs, err := a.Store.ListRegistrations(gctx, id)
		registrations = regs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a.tournamentDetail(ctx, tournament, registrations)
}

// GetTournamentByDate fetches the tournament on a YYYY-MM-DD date with its
// registered players
func (a *API) GetTournamentByDate(ctx context.Context, date string) (*TournamentDetail, error) {
	tournament, err := a.Store.GetTournamentByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	registrations, err := a.Store.ListRegistrations(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}
	return a.tournamentDetail(ctx, tournament, registrations)
}

func (a *API) tournamentDetail(ctx context.Context, tournament store.Tournament, registrations []store.Registration) (*TournamentDetail, error) {
	ids := make([]string, 0, len(registrations))
	acePot := make(map[string]bool, len(registrations))
	for _, reg := range registrations {
		ids = append(ids, reg.PlayerID)
		acePot[reg.PlayerID] = reg.BoughtAcePot
	}
	players, err := a.Store.ListPlayersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return &TournamentDetail{Tournament: tournament, Players: players, AcePotFlag: acePot}, nil
}

// ListTournaments returns all tournaments, newest first
func (a *API) ListTournaments(ctx context.Context) ([]store.Tournament, error) {
	return a.Store.ListTournaments(ctx)
}

// RegisterPlayers appends registrations to a tournament. Entries referencing
// an unknown name create the player (division defaults to Am); entries that
// fail individually are reported in the result while the rest register. One
// ace pot contribution entry is recorded covering all buy-ins in the call.
// Preconditions: receives a tournament id and a non-empty list of requests
// Postconditions: returns the registration outcome; the error is non-nil only
// when nothing could be registered
func (a *API) RegisterPlayers(ctx context.Context, tournamentID string, requests []RegistrationRequest) (*RegistrationResult, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: registrations list is required", shared.ErrInvalidInput)
	}
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	known, err := a.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	knownNames := make([]string, 0, len(known))
	for _, p := range known {
		knownNames = append(knownNames, p.Name)
	}

	result := &RegistrationResult{
		TournamentID: tournamentID,
		Suggestions:  make(map[string][]string),
	}

	err = a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		for i, req := range requests {
			player, ok := a.resolveRegistration(ctx, i, req, &knownNames, result)
			if !ok {
				continue
			}
			reg := store.Registration{
				TournamentID: tournamentID,
				PlayerID:     player.ID,
				BoughtAcePot: req.BoughtAcePot,
			}
			if err := a.Store.CreateRegistration(ctx, reg); err != nil {
				if errors.Is(err, shared.ErrConflict) {
					result.Errors = append(result.Errors, fmt.Sprintf("registration %d: player %q already registered", i+1, player.Name))
					continue
				}
				return err
			}
			result.RegisteredPlayers = append(result.RegisteredPlayers, player)
			if req.BoughtAcePot {
				result.AcePotBuyIns++
			}
		}

		if len(result.RegisteredPlayers) == 0 {
			return fmt.Errorf("%w: no registrations applied", shared.ErrInvalidInput)
		}

		if result.AcePotBuyIns > 0 {
			result.AcePotAmount = float64(result.AcePotBuyIns)
			entry := store.AcePotEntry{
				ID:           uuid.NewString(),
				TournamentID: &tournament.ID,
				Date:         tournament.Date,
				Description:  fmt.Sprintf("Tournament %s: %d buy-ins", tournament.Date, result.AcePotBuyIns),
				Amount:       result.AcePotAmount,
			}
			if err := a.Store.InsertAcePotEntry(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// resolveRegistration turns one request into a player record, creating the
// player when the name is unknown. Per entry failures are collected on the
// result and reported by returning ok=false
func (a *API) resolveRegistration(ctx context.Context, i int, req RegistrationRequest, knownNames *[]string, result *RegistrationResult) (store.Player, bool) {
	switch {
	case req.PlayerName != "":
		division := req.Division
		if division == "" {
			division = shared.DivisionAm
		}
		if !division.IsValid() {
			result.Errors = append(result.Errors, fmt.Sprintf("registration %d: division must be Pro, Am or Junior", i+1))
			return store.Player{}, false
		}
		existing, err := a.Store.GetPlayerByName(ctx, req.PlayerName)
		if err == nil {
			return existing, true
		}
		if !errors.Is(err, shared.ErrNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("registration %d: %v", i+1, err))
			return store.Player{}, false
		}
		// Unknown name: surface close existing names so typos are caught,
		// then create the player
		if _, suggestions := logic.MatchPlayerNames([]string{req.PlayerName}, *knownNames); len(suggestions[req.PlayerName]) > 0 {
			result.Suggestions[req.PlayerName] = suggestions[req.PlayerName]
		}
		player := store.Player{
			ID:       uuid.NewString(),
			Name:     req.PlayerName,
			Nickname: req.Nickname,
			Division: division,
		}
		if err := a.Store.CreatePlayer(ctx, player); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("registration %d: %v", i+1, err))
			return store.Player{}, false
		}
		result.NewPlayersCreated++
		*knownNames = append(*knownNames, player.Name)
		return player, true

	case req.PlayerID != "":
		player, err := a.Store.GetPlayer(ctx, req.PlayerID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("registration %d: player %s not found", i+1, req.PlayerID))
			return store.Player{}, false
		}
		return player, true

	default:
		result.Errors = append(result.Errors, fmt.Sprintf("registration %d: must provide either player_id or player_name", i+1))
		return store.Player{}, false
	}
}

// ImportRoster parses CSV style roster text and registers every entry.
// Lines are `name,division[,nickname]`; blank lines and #-comments are skipped
func (a *API) ImportRoster(ctx context.Context, tournamentID string, text string) (*RegistrationResult, error) {
	entries, err := logic.ParseRoster(text)
	if err != nil {
		return nil, err
	}
	requests := make([]RegistrationRequest, 0, len(entries))
	for _, entry := range entries {
		requests = append(requests, RegistrationRequest{
			PlayerName: entry.Name,
			Division:   entry.Division,
			Nickname:   entry.Nickname,
		})
	}
	return a.RegisterPlayers(ctx, tournamentID, requests)
}

// GenerateTeams draws random doubles pairs from the tournament's registered
// players, replacing any previous team set.
// Preconditions: the tournament exists and has at least two registrations
// Postconditions: existing matches and teams are purged, new teams are
// persisted seeded in draw order and total_teams is updated
func (a *API) GenerateTeams(ctx context.Context, tournamentID string) ([]store.Team, error) {
	if _, err := a.Store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	registrations, err := a.Store.ListRegistrations(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(registrations) == 0 {
		return nil, fmt.Errorf("%w: no players registered for this tournament", shared.ErrInvalidInput)
	}
	playerIDs := make([]string, 0, len(registrations))
	for _, reg := range registrations {
		playerIDs = append(playerIDs, reg.PlayerID)
	}

	teams, err := logic.FormTeams(tournamentID, playerIDs, a.Rand)
	if err != nil {
		return nil, err
	}

	err = a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		// Matches reference teams through their slots, so the bracket goes
		// first and its advancement ids are cleared before deletion
		if err := a.Store.ClearMatchEdges(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteMatches(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteTeams(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.InsertTeams(ctx, teams); err != nil {
			return err
		}
		return a.Store.SetTotalTeams(ctx, tournamentID, len(teams))
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GenerateMatches materializes the double elimination bracket for the
// tournament's current team set, replacing any previous bracket.
// Preconditions: the tournament is Scheduled and has at least four teams;
// stations overrides the station count when positive
// Postconditions: the bracket is persisted with byes resolved and observers
// are notified
func (a *API) GenerateMatches(ctx context.Context, tournamentID string, stations int) ([]store.Match, error) {
	tournament, err := a.Store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != shared.TournamentScheduled {
		return nil, fmt.Errorf("%w: matches can only be generated for a Scheduled tournament (status %s)", shared.ErrInvalidState, tournament.Status)
	}
	teams, err := a.Store.ListTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	matches, err := logic.BuildBracket(tournamentID, teams)
	if err != nil {
		return nil, err
	}

	err = a.Store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := a.Store.ClearMatchEdges(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.DeleteMatches(ctx, tournamentID); err != nil {
			return err
		}
		if err := a.Store.InsertMatches(ctx, matches); err != nil {
			return err
		}
		if stations > 0 {
			return a.Store.SetStationCount(ctx, tournamentID, stations)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if a.Notify != nil {
		a.Notify.BracketGenerated(tournamentID, len(teams), len(matches))
	}
	return matches, nil
}

// ListMatches returns the tournament's matches ordered by match_order
func (a *API) ListMatches(ctx context.Context, tournamentID string) ([]store.Match, error) {
	if _, err := a.Store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return a.Store.ListMatches(ctx, tournamentID)
}

// ListTeams returns the tournament's teams ordered by seed with member names
// resolved
func (a *API) ListTeams(ctx context.Context, tournamentID string) ([]TeamDetail, error) {
	if _, err := a.Store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	teams, err := a.Store.ListTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(teams)*2)
	for _, team := range teams {
		ids = append(ids, team.PlayerIDs()...)
	}
	players, err := a.Store.ListPlayersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(players))
	for _, p := range players {
		nameByID[p.ID] = p.Name
	}

	details := make([]TeamDetail, 0, len(teams))
	for _, team := range teams {
		detail := TeamDetail{Team: team}
		for _, id := range team.PlayerIDs() {
			detail.PlayerNames = append(detail.PlayerNames, nameByID[id])
		}
		details = append(details, detail)
	}
	return details, nil
}

// UpdateTournamentStatus applies an operator status change
func (a *API) UpdateTournamentStatus(ctx context.Context, tournamentID string, status shared.TournamentStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown tournament status %q", shared.ErrInvalidInput, status)
	}
	return a.Store.UpdateTournamentStatus(ctx, tournamentID, status)
}

// Standings returns every player ordered by seasonal points, ties broken by
// seasonal cash then name
func (a *API) Standings(ctx context.Context) ([]store.Player, error) {
	players, err := a.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].SeasonalPoints != players[j].SeasonalPoints {
			return players[i].SeasonalPoints > players[j].SeasonalPoints
		}
		if players[i].SeasonalCash != players[j].SeasonalCash {
			return players[i].SeasonalCash > players[j].SeasonalCash
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// AcePot returns the full ace pot ledger and its rolling balance
func (a *API) AcePot(ctx context.Context) (*AcePotReport, error) {
	var (
		entries []store.AcePotEntry
		balance float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := a.Store.ListAcePotEntries(gctx)
		entries = e
		return err
	})
	g.Go(func() error {
		b, err := a.Store.AcePotBalance(gctx)
		balance = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &AcePotReport{Entries: entries, Balance: balance}, nil
}

// AddAcePotEntry records a manual ace pot adjustment. The resulting balance
// must not go negative
func (a *API) AddAcePotEntry(ctx context.Context, date string, description string, amount float64) (store.AcePotEntry, error) {
	if _, err := time.Parse(shared.DateLayout, date); err != nil {
		return store.AcePotEntry{}, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", shared.ErrInvalidInput)
	}
	if description == "" {
		return store.AcePotEntry{}, fmt.Errorf("%w: description is required", shared.ErrInvalidInput)
	}
	balance, err := a.Store.AcePotBalance(ctx)
	if err != nil {
		return store.AcePotEntry{}, err
	}
	if balance+amount < 0 {
		return store.AcePotEntry{}, fmt.Errorf("%w: entry would drive the ace pot balance negative", shared.ErrInvalidInput)
	}
	entry := store.AcePotEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount,
	}
	if err := a.Store.InsertAcePotEntry(ctx, entry); err != nil {
		return store.AcePotEntry{}, err
	}
	return entry, nil
}
