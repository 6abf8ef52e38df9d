/* models.go
 * This file contain the interfaces, structs and helper functions that are used by api consumers
 * Authors: Zachary Bower
 */

package api

import (
	"putting-league/api/logic"
	"putting-league/api/shared"
	"putting-league/api/store"
)

// Notifier receives fire and forget notifications after a mutation commits.
// Implementations must not block; a dropped notification never affects
// correctness
type Notifier interface {
	MatchUpdated(event shared.MatchEvent)
	BracketGenerated(tournamentID string, teams int, matches int)
	TournamentCompleted(summary CompletionSummary)
}

// MultiNotifier fans every notification out to a list of notifiers
type MultiNotifier []Notifier

func (m MultiNotifier) MatchUpdated(event shared.MatchEvent) {
	for _, n := range m {
		n.MatchUpdated(event)
	}
}

func (m MultiNotifier) BracketGenerated(tournamentID string, teams int, matches int) {
	for _, n := range m {
		n.BracketGenerated(tournamentID, teams, matches)
	}
}

func (m MultiNotifier) TournamentCompleted(summary CompletionSummary) {
	for _, n := range m {
		n.TournamentCompleted(summary)
	}
}

// RegistrationRequest is one entry of a register-players call. Either an
// existing player id or a player name must be set; unknown names create a new
// player
type RegistrationRequest struct {
	PlayerID     string          `json:"player_id,omitempty"`
	PlayerName   string          `json:"player_name,omitempty"`
	Division     shared.Division `json:"division,omitempty"`
	Nickname     string          `json:"nickname,omitempty"`
	BoughtAcePot bool            `json:"bought_ace_pot,omitempty"`
}

// RegistrationResult reports the outcome of a register-players call. Entries
// that fail individually are collected in Errors while the rest register;
// Suggestions holds fuzzy near matches for names that created a new player
type RegistrationResult struct {
	TournamentID      string              `json:"tournament_id"`
	RegisteredPlayers []store.Player      `json:"players"`
	NewPlayersCreated int                 `json:"new_players_created,omitempty"`
	AcePotBuyIns      int                 `json:"ace_pot_buyins"`
	AcePotAmount      float64             `json:"ace_pot_amount"`
	Suggestions       map[string][]string `json:"suggestions,omitempty"`
	Errors            []string            `json:"errors,omitempty"`
}

// TournamentDetail is a tournament together with its registered players
type TournamentDetail struct {
	Tournament store.Tournament `json:"tournament"`
	Players    []store.Player   `json:"players"`
	AcePotFlag map[string]bool  `json:"ace_pot_by_player,omitempty"`
}

// TeamDetail is a team with its member names resolved
type TeamDetail struct {
	Team        store.Team `json:"team"`
	PlayerNames []string   `json:"player_names"`
}

// AuditReport is the complete tournament state in one payload, used by
// admins to verify results before or after a recalculation
type AuditReport struct {
	Tournament store.Tournament `json:"tournament"`
	Teams      []TeamDetail     `json:"teams"`
	Matches    []store.Match    `json:"matches"`
}

// ScoreReport is the result of scoring one match
type ScoreReport struct {
	Match          store.Match         `json:"match"`
	WinnerTeamID   string              `json:"winner_team_id"`
	IsRescore      bool                `json:"is_rescore"`
	Advancements   []logic.Advancement `json:"advancements,omitempty"`
	Rollbacks      []logic.Rollback    `json:"rollbacks,omitempty"`
	AutoAdvanced   []store.Match       `json:"auto_advanced,omitempty"`
	CreatedMatch   *store.Match        `json:"created_match,omitempty"`
	RemovedMatchID *int                `json:"removed_match_id,omitempty"`
	TournamentOver bool                `json:"tournament_over"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// CompletionSummary describes a finished tournament for observers
type CompletionSummary struct {
	TournamentID   string   `json:"tournament_id"`
	Date           string   `json:"date"`
	ChampionTeamID string   `json:"champion_team_id"`
	ChampionNames  []string `json:"champion_names"`
	AcePotPayout   float64  `json:"ace_pot_payout"`
}

// AcePotReport is the full ledger plus its rolling balance
type AcePotReport struct {
	Entries []store.AcePotEntry `json:"entries"`
	Balance float64             `json:"balance"`
}

// UserUpdate carries the mutable fields of a user edit. Nil fields are left
// unchanged
type UserUpdate struct {
	Username    *string      `json:"username,omitempty"`
	DisplayName *string      `json:"display_name,omitempty"`
	Password    *string      `json:"password,omitempty"`
	Role        *shared.Role `json:"role,omitempty"`
}
