/* auth.go
 * Session cookie handling and the auth endpoints: login, logout, me and the
 * role gating middleware for operator and admin routes
 * Authors: Zachary Bower
 */

package web

import (
	"errors"
	"net/http"
	"time"

	"putting-league/api/api"
	"putting-league/api/shared"
	"putting-league/api/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionCookie = "putting_league_session"

// contextUserKey is where the gating middleware stores the resolved account
const contextUserKey = "session_user"

// sessionManager signs and verifies the JWT carried in the session cookie
type sessionManager struct {
	secret []byte
	ttl    time.Duration
}

func newSessionManager(secret string) *sessionManager {
	return &sessionManager{secret: []byte(secret), ttl: 24 * time.Hour}
}

// issue signs a session token for a user id
func (m *sessionManager) issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// parse verifies a session token and returns the user id it was issued to
func (m *sessionManager) parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid token claims")
	}
	return userID, nil
}

// currentUser resolves the session cookie to a stored account. Missing,
// invalid and stale sessions all resolve to the implicit Viewer (ok false)
func (s *Server) currentUser(c *gin.Context) (store.User, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return store.User{}, false
	}
	userID, err := s.sessions.parse(token)
	if err != nil {
		return store.User{}, false
	}
	user, err := s.api.Store.GetUser(c.Request.Context(), userID)
	if err != nil {
		return store.User{}, false
	}
	return user, true
}

// requireOperator gates mutations to Admin and Director sessions
func (s *Server) requireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if user.Role != shared.RoleAdmin && user.Role != shared.RoleDirector {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operator role required"})
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// requireAdmin gates the admin group to Admin sessions
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if user.Role != shared.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// actorFrom returns the account the gating middleware resolved
func actorFrom(c *gin.Context) store.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(store.User); ok {
			return user
		}
	}
	return store.User{}
}

// handleLogin verifies credentials and sets the session cookie
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := s.api.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	token, err := s.sessions.issue(user.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.SetCookie(sessionCookie, token, int(s.sessions.ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user, "role": user.Role})
}

// handleLogout clears the session cookie
func (s *Server) handleLogout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// handleMe reports the current session. Anyone without a valid session is the
// implicit Viewer
func (s *Server) handleMe(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"role": "Viewer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "role": user.Role})
}

// handleListUsers returns every account, hashes stripped
func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.api.ListUsers(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := s.api.CreateUser(c.Request.Context(), actorFrom(c), req.Username, req.DisplayName, req.Password, shared.Role(req.Role))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var update api.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := s.api.UpdateUser(c.Request.Context(), actorFrom(c), c.Param("id"), update)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.api.DeleteUser(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
