/* metrics.go
 * Prometheus collectors for the HTTP surface and the live match hub
 * Authors: Zachary Bower
 */

package web

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "putting_league_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	matchScoresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "putting_league_match_scores_total",
		Help: "Match results recorded, re-scores included",
	})

	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "putting_league_ws_clients",
		Help: "Currently connected WebSocket clients",
	})
)

// requestMetrics counts every finished request against its registered route
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
