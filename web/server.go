/* server.go
 * Contains the router setup and the Start function that listens for incoming
 * connections
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer wires a Server from its configuration. The WebSocket hub is
// created here so the caller can register it as a notifier before starting
func NewServer(cfg Config) *Server {
	return &Server{
		addr:         cfg.Addr,
		api:          cfg.API,
		hub:          NewHub(cfg.Logger),
		sessions:     newSessionManager(cfg.JWTSecret),
		allowOrigins: cfg.AllowOrigins,
		upgrader:     websocketUpgrader(),
		log:          cfg.Logger,
	}
}

// Hub returns the live match hub so it can be fanned into the API notifier
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router builds the gin engine with all routes and middleware attached.
// Reads are public; mutations require an Admin or Director session and the
// admin group requires Admin
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), requestMetrics())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(s.allowOrigins) > 0 {
		corsConfig.AllowOrigins = s.allowOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", s.handleSocket)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/tournaments", s.handleGetTournaments)
		apiGroup.GET("/tournaments/:id/matches", s.handleListMatches)
		apiGroup.GET("/tournaments/:id/teams", s.handleListTeams)
		apiGroup.GET("/players", s.handleStandings)
		apiGroup.GET("/ace-pot", s.handleAcePot)

		apiGroup.POST("/auth/login", s.handleLogin)
		apiGroup.POST("/auth/logout", s.handleLogout)
		apiGroup.GET("/auth/me", s.handleMe)

		operator := apiGroup.Group("/", s.requireOperator())
		{
			operator.POST("/tournaments", s.handleCreateTournament)
			operator.POST("/tournaments/:id/register-players", s.handleRegisterPlayers)
			operator.POST("/tournaments/:id/import-roster", s.handleImportRoster)
			operator.POST("/tournaments/:id/generate-teams", s.handleGenerateTeams)
			operator.POST("/tournaments/:id/generate-matches", s.handleGenerateMatches)
			operator.POST("/tournaments/:id/matches/:mid/start", s.handleStartMatch)
			operator.POST("/tournaments/:id/matches/:mid/score", s.handleScoreMatch)
			operator.PUT("/tournaments/:id/status", s.handleUpdateStatus)
			operator.DELETE("/tournaments/:id", s.handleDeleteTournament)
			operator.PUT("/users/:id", s.handleUpdateUser)
		}

		admin := apiGroup.Group("/", s.requireAdmin())
		{
			admin.GET("/admin/tournaments/:id/audit", s.handleAudit)
			admin.POST("/admin/tournaments/:id/recalculate", s.handleRecalculate)
			admin.PUT("/admin/tournaments/:id/teams/:teamId/place", s.handleTeamPlace)
			admin.POST("/ace-pot", s.handleAddAcePotEntry)
			admin.GET("/users", s.handleListUsers)
			admin.POST("/users", s.handleCreateUser)
			admin.DELETE("/users/:id", s.handleDeleteUser)
		}
	}

	return r
}

// Start blocks serving HTTP on the configured address.
// No read or write deadlines are set because /ws connections stay open
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Str("addr", s.addr).Msg("http server listening")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger emits one structured log line per request
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
