// Package web serves step-by-step search playback over HTTP. Every session
// owns its own grid and stepper; sessions share no mutable state.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridpath"
)

// DefaultSessionTTL is how long an untouched session survives when
// Config.SessionTTL is zero.
const DefaultSessionTTL = 10 * time.Minute

type Config struct {
	Addr       string
	FrameDelay time.Duration
	SessionTTL time.Duration
}

type Server struct {
	engine     *gin.Engine
	srv        *http.Server
	logger     *zap.Logger
	frameDelay atomic.Int64
	upgrader   websocket.Upgrader
	sessionTTL time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// session serializes access to one stepper.
type session struct {
	mu       sync.Mutex
	scenario *gridpath.Scenario
	stepper  *gridpath.Stepper
	lastUsed time.Time // guarded by Server.mu
}

func NewServer(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog(logger))

	s := &Server{
		engine:   engine,
		logger:   logger,
		sessions: make(map[uuid.UUID]*session),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = DefaultSessionTTL
	}
	s.SetFrameDelay(cfg.FrameDelay)
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	group := engine.Group("/sessions")
	group.POST("", s.handleCreate)
	group.GET("/:id/next", s.withSession(s.handleNext))
	group.GET("/:id/path", s.withSession(s.handlePath))
	group.GET("/:id/ws", s.withSession(s.handleStream))
	group.DELETE("/:id", s.handleDelete)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// SetFrameDelay changes the pacing of websocket streams opened afterwards.
func (s *Server) SetFrameDelay(d time.Duration) {
	s.frameDelay.Store(int64(d))
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.sweepSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("playback server listening", zap.String("addr", ln.Addr().String()))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	scenario, err := buildScenario(req)
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	stepper, err := gridpath.NewStepper(scenario.Grid, scenario.Start, scenario.Goal, gridpath.WithLogger(s.logger))
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	id := uuid.New()
	s.evictIdle()
	s.mu.Lock()
	s.sessions[id] = &session{scenario: scenario, stepper: stepper, lastUsed: s.now()}
	s.mu.Unlock()
	s.logger.Info("session created",
		zap.String("session", id.String()),
		zap.String("kind", req.Kind),
		zap.Stringer("start", scenario.Start),
		zap.Stringer("goal", scenario.Goal),
	)

	c.JSON(http.StatusCreated, createSessionResponse{
		ID:    id.String(),
		Rows:  scenario.Grid.Rows(),
		Cols:  scenario.Grid.Cols(),
		Start: toPoint(scenario.Start),
		Goal:  toPoint(scenario.Goal),
		Walls: wallsOf(scenario.Grid),
	})
}

func (s *Server) handleNext(c *gin.Context, sess *session) {
	sess.mu.Lock()
	st := sess.stepper.Step()
	sess.mu.Unlock()
	c.JSON(http.StatusOK, toSnapshot(st))
}

// handlePath finishes the search and returns the validated path.
func (s *Server) handlePath(c *gin.Context, sess *session) {
	sess.mu.Lock()
	sess.stepper.Run()
	result := sess.stepper.Result()
	sess.mu.Unlock()

	valid := true
	if result.Found {
		if err := gridpath.CheckPath(result.Path, sess.scenario.Grid); err != nil {
			s.logger.Error("path failed validation", zap.Error(err))
			valid = false
		}
	}
	c.JSON(http.StatusOK, pathResponse{
		Found:    result.Found,
		Cost:     result.Cost,
		Expanded: result.ExpandedNodes,
		Valid:    valid,
		Path:     pathToList(result.Path),
	})
}

// handleStream pushes one snapshot per frame until the search is done.
func (s *Server) handleStream(c *gin.Context, sess *session) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var tick <-chan time.Time
	if delay := time.Duration(s.frameDelay.Load()); delay > 0 {
		ticker := time.NewTicker(delay)
		defer ticker.Stop()
		tick = ticker.C
	}
	ctx := c.Request.Context()
	for {
		sess.mu.Lock()
		st := sess.stepper.Step()
		sess.mu.Unlock()

		if err := conn.WriteJSON(toSnapshot(st)); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
		if st.Done {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
			return
		}
		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-tick:
		}
	}
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !found {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) withSession(h func(*gin.Context, *session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		s.mu.Lock()
		sess, found := s.sessions[id]
		if found {
			sess.lastUsed = s.now()
		}
		s.mu.Unlock()
		if !found {
			c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
			return
		}
		h(c, sess)
	}
}

// evictIdle drops sessions nobody has touched for longer than the TTL.
func (s *Server) evictIdle() int {
	cutoff := s.now().Add(-s.sessionTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Debug("idle sessions evicted", zap.Int("evicted", evicted), zap.Int("remaining", len(s.sessions)))
	}
	return evicted
}

func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.sessionTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid session id"})
		return uuid.UUID{}, false
	}
	return id, true
}

func buildScenario(req createSessionRequest) (*gridpath.Scenario, error) {
	rng := gridpath.NewSeededRand(req.Seed)

	switch req.Kind {
	case "polygon":
		rows, cols := orDefault(req.Rows, gridpath.PolygonRows), orDefault(req.Cols, gridpath.PolygonCols)
		if len(req.Vertices) != 4 {
			return nil, errors.New("polygon scenario needs exactly 4 vertices")
		}
		var vertices [4]gridpath.Cell
		for i, v := range req.Vertices {
			vertices[i] = toCell(v)
		}
		return gridpath.NewPolygonScenario(rows, cols, vertices, rng)
	default:
		rows, cols := orDefault(req.Rows, gridpath.ScatterRows), orDefault(req.Cols, gridpath.ScatterCols)
		var opts []gridpath.ScatterOption
		if req.Obstacles != nil {
			opts = append(opts, gridpath.WithObstacleCount(*req.Obstacles))
		}
		return gridpath.NewScatterScenario(rows, cols, toCell(req.Start), toCell(req.Goal), rng, opts...)
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, gridpath.ErrOutOfBounds),
		errors.Is(err, gridpath.ErrBlockedEndpoint),
		errors.Is(err, gridpath.ErrTooManyObstacles),
		errors.Is(err, gridpath.ErrNoFreeStart),
		errors.Is(err, gridpath.ErrInvalidDimensions):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
