package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the read-only status endpoints.
// Public: /health, /ready, events, signups (including closed events) and confirmation checks.
func NewRouter(
	events input.EventUseCase,
	signups input.SignupUseCase,
	confirmations input.ConfirmationUseCase,
	pinger output.Pinger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID())

	// Liveness: the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: the store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	h := &handlers{events: events, signups: signups, confirmations: confirmations}
	r.GET("/guilds/:guildID/channels/:channelID/events", h.listActiveEvents)
	r.GET("/events/:id", h.getEvent)
	r.GET("/events/:id/signups", h.listSignups)
	r.GET("/events/:id/checks", h.listChecks)
	r.GET("/signups/:id", h.getSignup)

	return r
}

// Server serves the status API until its context ends.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 Status API listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
