/* models.go
 * This file contain the enums, structs and helper functions that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

// DateLayout is the wire and storage format for tournament dates
const DateLayout = "2006-01-02"

// Division is a player's competitive division
type Division string

const (
	DivisionPro    Division = "Pro"
	DivisionAm     Division = "Am"
	DivisionJunior Division = "Junior"
)

// IsValid reports whether d is one of the known divisions
func (d Division) IsValid() bool {
	switch d {
	case DivisionPro, DivisionAm, DivisionJunior:
		return true
	}
	return false
}

// TournamentStatus is the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentScheduled  TournamentStatus = "Scheduled"
	TournamentInProgress TournamentStatus = "In_Progress"
	TournamentCompleted  TournamentStatus = "Completed"
	TournamentCancelled  TournamentStatus = "Cancelled"
)

// IsValid reports whether s is one of the known tournament statuses
func (s TournamentStatus) IsValid() bool {
	switch s {
	case TournamentScheduled, TournamentInProgress, TournamentCompleted, TournamentCancelled:
		return true
	}
	return false
}

// Stage identifies which bracket a match belongs to. Single stage tournaments
// use Finals for every match; Group_A and Group_B exist for imported
// multi group data
type Stage string

const (
	StageGroupA Stage = "Group_A"
	StageGroupB Stage = "Group_B"
	StageFinals Stage = "Finals"
)

// RoundType identifies which side of a double elimination bracket a match sits on
type RoundType string

const (
	RoundWinners      RoundType = "Winners"
	RoundLosers       RoundType = "Losers"
	RoundChampionship RoundType = "Championship"
)

// MatchStatus is the lifecycle state of a match
type MatchStatus string

const (
	MatchPending    MatchStatus = "Pending"
	MatchScheduled  MatchStatus = "Scheduled"
	MatchInProgress MatchStatus = "In_Progress"
	MatchCompleted  MatchStatus = "Completed"
)

// Role is an operator's permission level
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleDirector Role = "Director"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleDirector
}

// Event names pushed over the live channel
const (
	EventMatchUpdated        = "match_updated"
	EventTournamentCompleted = "tournament_completed"
)

// MatchEvent is the payload broadcast to live observers whenever a match
// changes state. Optional fields are omitted when they do not apply
type MatchEvent struct {
	Type         string `json:"type"`
	TournamentID string `json:"tournament_id"`
	MatchID      int    `json:"match_id,omitempty"`
	Status       string `json:"status,omitempty"`
	Station      *int   `json:"station,omitempty"`
	Team1Score   *int   `json:"team1_score,omitempty"`
	Team2Score   *int   `json:"team2_score,omitempty"`
	WinnerTeamID string `json:"winner_team_id,omitempty"`
	IsRescore    bool   `json:"is_rescore,omitempty"`
}
