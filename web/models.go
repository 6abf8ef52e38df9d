/* models.go
 * Contains the web server configuration, the Server struct and the request
 * body types bound by the handlers
 * Authors: Zachary Bower
 */

package web

import (
	"putting-league/api/api"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Config holds the configuration for the web server
type Config struct {
	Addr         string
	API          *api.API
	JWTSecret    string
	AllowOrigins []string
	Logger       zerolog.Logger
}

// Server is the HTTP server exposing the league API, the live match
// WebSocket hub and the operator console endpoints
type Server struct {
	addr         string
	api          *api.API
	hub          *Hub
	sessions     *sessionManager
	allowOrigins []string
	upgrader     websocket.Upgrader
	log          zerolog.Logger
}

type createTournamentRequest struct {
	Date    string                    `json:"date"`
	Players []api.RegistrationRequest `json:"players"`
}

type registerPlayersRequest struct {
	Players []api.RegistrationRequest `json:"players"`
}

type importRosterRequest struct {
	Roster string `json:"roster"`
}

type generateMatchesRequest struct {
	Stations int `json:"stations"`
}

// scoreRequest uses pointers so a legitimate score of zero survives binding
type scoreRequest struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type placeRequest struct {
	Place int `json:"place"`
}

type acePotEntryRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}
