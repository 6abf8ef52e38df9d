/* handlers.go
 * Contains the HTTP handlers for tournaments, live matches, teams, season
 * standings and the ace pot
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"strconv"

	"putting-league/api/shared"

	"github.com/gin-gonic/gin"
)

// handleGetTournaments lists tournaments, or fetches one by id or date when
// the corresponding query parameter is set
func (s *Server) handleGetTournaments(c *gin.Context) {
	ctx := c.Request.Context()
	if id := c.Query("id"); id != "" {
		detail, err := s.api.GetTournament(ctx, id)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
		return
	}
	if date := c.Query("date"); date != "" {
		detail, err := s.api.GetTournamentByDate(ctx, date)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
		return
	}
	tournaments, err := s.api.ListTournaments(ctx)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": tournaments})
}

func (s *Server) handleCreateTournament(c *gin.Context) {
	var req createTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	tournament, result, err := s.api.CreateTournament(c.Request.Context(), req.Date, req.Players)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tournament": tournament, "registration": result})
}

func (s *Server) handleRegisterPlayers(c *gin.Context) {
	var req registerPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := s.api.RegisterPlayers(c.Request.Context(), c.Param("id"), req.Players)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleImportRoster(c *gin.Context) {
	var req importRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := s.api.ImportRoster(c.Request.Context(), c.Param("id"), req.Roster)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGenerateTeams(c *gin.Context) {
	teams, err := s.api.GenerateTeams(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) handleGenerateMatches(c *gin.Context) {
	var req generateMatchesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	matches, err := s.api.GenerateMatches(c.Request.Context(), c.Param("id"), req.Stations)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (s *Server) handleListMatches(c *gin.Context) {
	matches, err := s.api.ListMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (s *Server) handleListTeams(c *gin.Context) {
	teams, err := s.api.ListTeams(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) handleStartMatch(c *gin.Context) {
	matchID, err := strconv.Atoi(c.Param("mid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match id must be an integer"})
		return
	}
	match, err := s.api.StartMatch(c.Request.Context(), c.Param("id"), matchID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (s *Server) handleScoreMatch(c *gin.Context) {
	matchID, err := strconv.Atoi(c.Param("mid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match id must be an integer"})
		return
	}
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Team1Score == nil || req.Team2Score == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team1_score and team2_score are required"})
		return
	}
	report, err := s.api.ScoreMatch(c.Request.Context(), c.Param("id"), matchID, *req.Team1Score, *req.Team2Score)
	if err != nil {
		s.writeError(c, err)
		return
	}
	matchScoresTotal.Inc()
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleUpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.api.UpdateTournamentStatus(c.Request.Context(), c.Param("id"), shared.TournamentStatus(req.Status)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (s *Server) handleDeleteTournament(c *gin.Context) {
	if err := s.api.DeleteTournament(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tournament deleted"})
}

func (s *Server) handleAudit(c *gin.Context) {
	report, err := s.api.TournamentAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleRecalculate(c *gin.Context) {
	if err := s.api.RecalculateTournament(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tournament recalculated"})
}

func (s *Server) handleTeamPlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.api.UpdateTeamPlace(c.Request.Context(), c.Param("id"), c.Param("teamId"), req.Place); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "final place updated"})
}

func (s *Server) handleStandings(c *gin.Context) {
	players, err := s.api.Standings(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *Server) handleAcePot(c *gin.Context) {
	report, err := s.api.AcePot(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleAddAcePotEntry(c *gin.Context) {
	var req acePotEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := s.api.AddAcePotEntry(c.Request.Context(), req.Date, req.Description, req.Amount)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}
