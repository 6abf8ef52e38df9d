/* ws.go
 * Contains the WebSocket hub that fans live match events out to clients
 * subscribed to tournament rooms
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"putting-league/api/api"
	"putting-league/api/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// clientMessage is what a connected client may send: joining a tournament
// room is the only supported action
type clientMessage struct {
	Action       string `json:"action"`
	TournamentID string `json:"tournament_id"`
}

// Client is one WebSocket connection. Writes go through the send channel so
// a slow consumer drops events instead of blocking a broadcast
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks which clients are subscribed to which tournament rooms and
// implements the api notifier so committed mutations reach the rooms
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool), log: log}
}

var _ api.Notifier = (*Hub)(nil)

func (h *Hub) join(tournamentID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[tournamentID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[tournamentID] = room
	}
	room[c] = true
}

// leave removes a client from every room and drops empty rooms
func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, id)
		}
	}
}

// broadcast marshals a payload once and queues it to every client in the
// room. Clients with a full send buffer miss the event
func (h *Hub) broadcast(tournamentID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal broadcast")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[tournamentID] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// MatchUpdated broadcasts a match_updated event to the tournament's room
func (h *Hub) MatchUpdated(event shared.MatchEvent) {
	h.broadcast(event.TournamentID, event)
}

// BracketGenerated announces a freshly generated bracket to the room
func (h *Hub) BracketGenerated(tournamentID string, teams int, matches int) {
	h.broadcast(tournamentID, map[string]interface{}{
		"type":          "bracket_generated",
		"tournament_id": tournamentID,
		"teams":         teams,
		"matches":       matches,
	})
}

// TournamentCompleted announces the champion and payouts to the room
func (h *Hub) TournamentCompleted(summary api.CompletionSummary) {
	h.broadcast(summary.TournamentID, map[string]interface{}{
		"type":             shared.EventTournamentCompleted,
		"tournament_id":    summary.TournamentID,
		"date":             summary.Date,
		"champion_team_id": summary.ChampionTeamID,
		"champion_names":   summary.ChampionNames,
		"ace_pot_payout":   summary.AcePotPayout,
	})
}

func websocketUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
}

// handleSocket upgrades the connection and starts the client pumps. Reads are
// public so the socket carries no authentication
func (s *Server) handleSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &Client{conn: conn, send: make(chan []byte, 16)}
	wsClients.Inc()
	go client.writePump()
	go client.readPump(s.hub)
}

// readPump consumes client messages until the connection drops
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.leave(c)
		wsClients.Dec()
		close(c.send)
	}()
	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Action == "join_tournament" && msg.TournamentID != "" {
			hub.join(msg.TournamentID, c)
		}
	}
}

// writePump drains the send channel onto the connection
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
