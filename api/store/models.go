/* models.go
 * This file contain the structs and helper functions that relate to DB objects
 * Authors: Zachary Bower
 */

package store

import (
	"time"

	"putting-league/api/shared"
)

// Player is a league member. Seasonal aggregates accumulate across completed
// tournaments and are only ever mutated through the payout ledger
type Player struct {
	ID             string          `bson:"_id" json:"player_id"`
	Name           string          `bson:"name" json:"player_name"`
	Nickname       string          `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Division       shared.Division `bson:"division" json:"division"`
	SeasonalPoints int             `bson:"seasonal_points" json:"seasonal_points"`
	SeasonalCash   float64         `bson:"seasonal_cash" json:"seasonal_cash"`
}

// Tournament is a single event. StationCount is the number of physical
// putting stations available for concurrent matches
type Tournament struct {
	ID           string                  `bson:"_id" json:"tournament_id"`
	Date         string                  `bson:"date" json:"tournament_date"`
	Status       shared.TournamentStatus `bson:"status" json:"status"`
	TotalTeams   int                     `bson:"total_teams" json:"total_teams"`
	AcePotPayout float64                 `bson:"ace_pot_payout" json:"ace_pot_payout"`
	StationCount int                     `bson:"station_count" json:"station_count"`
	CreatedAt    time.Time               `bson:"created_at" json:"created_at"`
}

// Registration links a player to a tournament. BoughtAcePot marks an ace pot
// buy in that contributes to the rolling balance
type Registration struct {
	TournamentID string `bson:"tournament_id" json:"tournament_id"`
	PlayerID     string `bson:"player_id" json:"player_id"`
	BoughtAcePot bool   `bson:"bought_ace_pot" json:"bought_ace_pot"`
}

// Team is a doubles pairing for one tournament. Player2ID is nil exactly when
// the team is a ghost team. FinalPlace stays nil until completion or a manual
// override
type Team struct {
	ID           string  `bson:"_id" json:"team_id"`
	TournamentID string  `bson:"tournament_id" json:"tournament_id"`
	Player1ID    string  `bson:"player1_id" json:"player1_id"`
	Player2ID    *string `bson:"player2_id,omitempty" json:"player2_id,omitempty"`
	IsGhostTeam  bool    `bson:"is_ghost_team" json:"is_ghost_team"`
	SeedNumber   int     `bson:"seed_number" json:"seed_number"`
	FinalPlace   *int    `bson:"final_place,omitempty" json:"final_place,omitempty"`
	PointsEarned int     `bson:"points_earned" json:"points_earned"`
}

// PlayerIDs returns the member ids of the team, one entry for a ghost team
func (t Team) PlayerIDs() []string {
	if t.Player2ID == nil {
		return []string{t.Player1ID}
	}
	return []string{t.Player1ID, *t.Player2ID}
}

// Match is a node in a tournament's double elimination graph. MatchID is
// unique within the tournament; the advancement edges reference MatchIDs and
// are nil at the ends of the bracket
type Match struct {
	TournamentID     string             `bson:"tournament_id" json:"tournament_id"`
	MatchID          int                `bson:"match_id" json:"match_id"`
	Stage            shared.Stage       `bson:"stage" json:"stage"`
	RoundType        shared.RoundType   `bson:"round_type" json:"round_type"`
	RoundNumber      int                `bson:"round_number" json:"round_number"`
	PositionInRound  int                `bson:"position_in_round" json:"position_in_round"`
	MatchOrder       int                `bson:"match_order" json:"match_order"`
	Team1ID          *string            `bson:"team1_id,omitempty" json:"team1_id,omitempty"`
	Team2ID          *string            `bson:"team2_id,omitempty" json:"team2_id,omitempty"`
	Team1Score       int                `bson:"team1_score" json:"team1_score"`
	Team2Score       int                `bson:"team2_score" json:"team2_score"`
	Status           shared.MatchStatus `bson:"status" json:"status"`
	Station          *int               `bson:"station_assignment,omitempty" json:"station_assignment,omitempty"`
	WinnerAdvancesTo *int               `bson:"winner_advances_to,omitempty" json:"winner_advances_to,omitempty"`
	LoserAdvancesTo  *int               `bson:"loser_advances_to,omitempty" json:"loser_advances_to,omitempty"`
}

// IsBye reports whether the match is a bye, a single team match whose second
// slot can never be filled
func (m Match) IsBye() bool {
	return m.Team1ID != nil && m.Team2ID == nil && m.Status == shared.MatchCompleted
}

// WinnerID returns the id of the winning team of a completed match, or nil
func (m Match) WinnerID() *string {
	if m.Status != shared.MatchCompleted {
		return nil
	}
	if m.Team2ID == nil {
		return m.Team1ID
	}
	if m.Team1Score > m.Team2Score {
		return m.Team1ID
	}
	return m.Team2ID
}

// LoserID returns the id of the losing team of a completed match, or nil for
// byes and unfinished matches
func (m Match) LoserID() *string {
	if m.Status != shared.MatchCompleted || m.Team1ID == nil || m.Team2ID == nil {
		return nil
	}
	if m.Team1Score > m.Team2Score {
		return m.Team2ID
	}
	return m.Team1ID
}

// HasTeam reports whether the given team occupies either slot of the match
func (m Match) HasTeam(teamID string) bool {
	return (m.Team1ID != nil && *m.Team1ID == teamID) || (m.Team2ID != nil && *m.Team2ID == teamID)
}

// TeamHistory is one direction of a teammate pairing record. AveragePlace is
// the running mean of the pair's final places, 2 dp
type TeamHistory struct {
	PlayerID     string  `bson:"player_id" json:"player_id"`
	TeammateID   string  `bson:"teammate_id" json:"teammate_id"`
	TimesPaired  int     `bson:"times_paired" json:"times_paired"`
	AveragePlace float64 `bson:"average_place" json:"average_place"`
}

// AcePotEntry is a single movement of the rolling ace pot balance. Positive
// amounts are buy ins, negative amounts are payouts
type AcePotEntry struct {
	ID           string  `bson:"_id" json:"ace_pot_id"`
	TournamentID *string `bson:"tournament_id,omitempty" json:"tournament_id,omitempty"`
	Date         string  `bson:"date" json:"date"`
	Description  string  `bson:"description" json:"description"`
	Amount       float64 `bson:"amount" json:"amount"`
}

// User is an operator account. PasswordHash is a bcrypt hash and never leaves
// the store layer
type User struct {
	ID           string      `bson:"_id" json:"user_id"`
	Username     string      `bson:"username" json:"username"`
	DisplayName  string      `bson:"display_name" json:"display_name"`
	PasswordHash string      `bson:"password_hash" json:"-"`
	Role         shared.Role `bson:"role" json:"role"`
	CreatedAt    time.Time   `bson:"created_at" json:"created_at"`
}

// Ledger entry kinds
const (
	LedgerPoints = "points"
	LedgerCash   = "cash"
	LedgerAcePot = "ace_pot"
)

// LedgerEntry records one credit applied to a player by a tournament's
// completion. Deleting or recalculating a tournament reverses exactly the
// entries recorded here
type LedgerEntry struct {
	TournamentID string    `bson:"tournament_id" json:"tournament_id"`
	PlayerID     string    `bson:"player_id" json:"player_id"`
	Kind         string    `bson:"kind" json:"kind"`
	Amount       float64   `bson:"amount" json:"amount"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
