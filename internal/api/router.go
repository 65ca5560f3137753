// Package api implements the read-only HTTP surface: health, readiness, and
// the latest-signal query endpoint. It never calls the evaluation pipeline
// directly; internal/runtime.Engine is the only writer to the store this
// surface reads from.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/perpsignal/signal-engine/internal/store"
)

// Server wires the gin engine to a SignalSink.
type Server struct {
	router *gin.Engine
	sink   store.SignalSink
}

// NewServer constructs the router with middleware and routes mounted.
func NewServer(sink store.SignalSink) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.New().String()
	})))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}))

	s := &Server{router: router, sink: sink}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealthz)
	s.router.GET("/readyz", s.handleReadyz)
	s.router.GET("/signals/:symbol", s.handleLatestSignal)
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Handler returns the underlying http.Handler, for use with http.Server.
func (s *Server) Handler() http.Handler { return s.router }

// handleHealthz reports liveness.
//
//	@Summary	Liveness probe
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/healthz [get]
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleReadyz reports readiness: the store must be reachable.
//
//	@Summary	Readiness probe
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/readyz [get]
func (s *Server) handleReadyz(c *gin.Context) {
	if _, err := s.sink.Latest(c.Request.Context(), "__readyz_probe__"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleLatestSignal returns the most recently persisted signal for a
// symbol.
//
//	@Summary	Latest signal for a symbol
//	@Produce	json
//	@Param		symbol	path		string	true	"Instrument symbol"
//	@Success	200		{object}	model.SignalOutput
//	@Failure	404		{object}	map[string]string
//	@Router		/signals/{symbol} [get]
func (s *Server) handleLatestSignal(c *gin.Context) {
	symbol := c.Param("symbol")
	out, err := s.sink.Latest(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no signal for symbol " + symbol})
		return
	}
	c.JSON(http.StatusOK, out)
}
