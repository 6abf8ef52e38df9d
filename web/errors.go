/* errors.go
 * Maps domain errors onto HTTP status codes
 * Authors: Zachary Bower
 */

package web

import (
	"errors"
	"net/http"

	"putting-league/api/shared"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidState),
		errors.Is(err, shared.ErrConflict),
		errors.Is(err, shared.ErrNoStationAvailable),
		errors.Is(err, shared.ErrUnscoreableMatch),
		errors.Is(err, shared.ErrNotSupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain error as {"error": ...}. Internal failures are
// logged and their details kept out of the response
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
