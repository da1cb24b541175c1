// Package server hosts the reducer core behind a small HTTP API. All state
// access funnels through a single dispatch goroutine, so transitions never
// race and the document needs no internal locking.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"soloquest/arise"
	"soloquest/store"
)

const maxCoverSize = 8 << 20

// Server owns the state document and serves it over HTTP.
type Server struct {
	cfg     Config
	hub     arise.Arise
	st      *store.Store
	saver   *store.DebouncedSaver
	metrics *Metrics
	registry *prometheus.Registry
	logger  *zap.Logger

	state    *arise.State
	requests chan request

	engine  *gin.Engine
	httpSrv *http.Server
}

type request struct {
	name     string
	mutating bool
	fn       func(*arise.State) (any, []arise.Event, error)
	reply    chan response
}

type response struct {
	payload any
	events  []arise.Event
	err     error
}

// New loads the persisted documents and wires the HTTP surface. The
// dispatch loop starts immediately; Run only blocks on the listener.
func New(cfg Config, hub arise.Arise, st *store.Store, logger *zap.Logger) (*Server, error) {
	state, err := st.LoadState()
	if err != nil {
		return nil, err
	}
	// The library and settings live in their own documents. Fold them into
	// the in-memory state so the reducer sees one world.
	library, err := st.LoadLibrary()
	if err != nil {
		return nil, err
	}
	if len(library) > 0 {
		state.Library = library
	}
	settings, err := st.LoadSettings()
	if err != nil {
		return nil, err
	}
	state.LibraryFilter = settings.LibraryFilter
	if state.Theme == "" || state.Theme == "default" {
		state.Theme = settings.Theme
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		hub:      hub,
		st:       st,
		saver:    store.NewDebouncedSaver(st, cfg.SaveDebounce, logger),
		metrics:  NewMetrics(registry),
		registry: registry,
		logger:   logger,
		state:    state,
		requests: make(chan request),
	}
	s.engine = s.buildRouter()
	s.httpSrv = &http.Server{Addr: cfg.Addr, Handler: s.engine}

	go s.dispatchLoop()
	return s, nil
}

// Run serves HTTP until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener and flushes the pending state snapshot.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	close(s.requests)
	s.saver.Flush()
	return err
}

// Sweep runs the periodic maintenance pass through the dispatch loop. Safe
// to call from the cron goroutine.
func (s *Server) Sweep() {
	s.metrics.SweepRunsTotal.Inc()
	resp := s.dispatch("RUN_SWEEP", true, func(state *arise.State) (any, []arise.Event, error) {
		return nil, s.hub.GetMetricsSystem().RunSweep(state), nil
	})
	for _, ev := range resp.events {
		s.logger.Info("sweep event", zap.String("type", string(ev.Type)), zap.String("message", ev.Message))
	}
}

func (s *Server) dispatchLoop() {
	for req := range s.requests {
		start := time.Now()
		payload, events, err := req.fn(s.state)
		if req.mutating {
			s.saver.Schedule(s.state.Snapshot())
		}

		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.ActionsTotal.WithLabelValues(req.name, status).Inc()
		s.metrics.ActionDuration.WithLabelValues(req.name).Observe(time.Since(start).Seconds())
		for _, ev := range events {
			s.metrics.EventsEmitted.WithLabelValues(string(ev.Type)).Inc()
		}

		req.reply <- response{payload: payload, events: events, err: err}
	}
}

func (s *Server) dispatch(name string, mutating bool, fn func(*arise.State) (any, []arise.Event, error)) response {
	reply := make(chan response, 1)
	s.requests <- request{name: name, mutating: mutating, fn: fn, reply: reply}
	return <-reply
}

func (s *Server) buildRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggingMiddleware(s.logger))
	engine.Use(MetricsMiddleware(s.metrics))

	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api")
	{
		api.GET("/quests", s.handleGetState)
		api.POST("/quests", s.handleReplaceState)
		api.POST("/actions", s.handleAction)
		api.GET("/settings", s.handleGetSettings)
		api.POST("/settings", s.handleSaveSettings)
		api.GET("/library", s.handleGetLibrary)
		api.POST("/library", s.handleAddLibraryItem)
		api.PATCH("/library/:id", s.handleUpdateLibraryItem)
		api.DELETE("/library/:id", s.handleRemoveLibraryItem)
		api.POST("/upload", s.handleUpload)
	}

	engine.Static("/covers", s.cfg.CoversDir)
	return engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetState(c *gin.Context) {
	resp := s.dispatch("GET_STATE", false, func(state *arise.State) (any, []arise.Event, error) {
		return state.Snapshot(), nil, nil
	})
	c.JSON(http.StatusOK, resp.payload)
}

// handleReplaceState swaps in a full document, used for restores and
// imports. The incoming document is normalized before it becomes live.
func (s *Server) handleReplaceState(c *gin.Context) {
	incoming := arise.NewState()
	if err := c.ShouldBindJSON(incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state document"})
		return
	}
	incoming.Normalize()

	resp := s.dispatch("REPLACE_STATE", true, func(state *arise.State) (any, []arise.Event, error) {
		*state = *incoming
		return nil, nil, nil
	})
	if resp.err != nil {
		s.writeError(c, resp.err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAction(c *gin.Context) {
	var action Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action payload"})
		return
	}

	resp := s.dispatch(action.Type, true, func(state *arise.State) (any, []arise.Event, error) {
		return applyAction(s.hub, state, action)
	})
	if resp.err != nil {
		s.writeError(c, resp.err)
		return
	}

	s.persistSideDocuments(action.Type)

	snapshot := s.dispatch("GET_STATE", false, func(state *arise.State) (any, []arise.Event, error) {
		return state.Snapshot(), nil, nil
	})
	events := resp.events
	if events == nil {
		events = []arise.Event{}
	}
	c.JSON(http.StatusOK, gin.H{
		"result": resp.payload,
		"events": events,
		"state":  snapshot.payload,
	})
}

// persistSideDocuments mirrors library and settings mutations into their
// own files, which bypass the debounced state saver.
func (s *Server) persistSideDocuments(actionType string) {
	switch actionType {
	case ActionLibraryAdd, ActionLibraryUpdate, ActionLibraryRemove, ActionLibrarySyncQuests:
		resp := s.dispatch("SNAPSHOT_LIBRARY", false, func(state *arise.State) (any, []arise.Event, error) {
			items := make([]arise.LibraryItem, len(state.Library))
			copy(items, state.Library)
			return items, nil, nil
		})
		if items, ok := resp.payload.([]arise.LibraryItem); ok {
			if err := s.st.SaveLibrary(items); err != nil {
				s.logger.Error("library save failed", zap.Error(err))
			}
		}
	case ActionSetTheme, ActionLibrarySetFilter:
		resp := s.dispatch("SNAPSHOT_SETTINGS", false, func(state *arise.State) (any, []arise.Event, error) {
			return store.SettingsDoc{LibraryFilter: state.LibraryFilter, Theme: state.Theme}, nil, nil
		})
		if doc, ok := resp.payload.(store.SettingsDoc); ok {
			if err := s.st.SaveSettings(doc); err != nil {
				s.logger.Error("settings save failed", zap.Error(err))
			}
		}
	}
}

func (s *Server) handleGetSettings(c *gin.Context) {
	resp := s.dispatch("GET_SETTINGS", false, func(state *arise.State) (any, []arise.Event, error) {
		return store.SettingsDoc{LibraryFilter: state.LibraryFilter, Theme: state.Theme}, nil, nil
	})
	c.JSON(http.StatusOK, resp.payload)
}

func (s *Server) handleSaveSettings(c *gin.Context) {
	var doc store.SettingsDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}

	s.dispatch("SAVE_SETTINGS", true, func(state *arise.State) (any, []arise.Event, error) {
		if doc.Theme != "" {
			state.Theme = doc.Theme
		}
		s.hub.GetLibrarySystem().SetFilter(state, doc.LibraryFilter)
		return nil, nil, nil
	})
	if err := s.st.SaveSettings(doc); err != nil {
		s.logger.Error("settings save failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleGetLibrary(c *gin.Context) {
	resp := s.dispatch("GET_LIBRARY", false, func(state *arise.State) (any, []arise.Event, error) {
		items := make([]arise.LibraryItem, len(state.Library))
		copy(items, state.Library)
		return items, nil, nil
	})
	c.JSON(http.StatusOK, gin.H{"items": resp.payload})
}

func (s *Server) handleAddLibraryItem(c *gin.Context) {
	var item arise.LibraryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid library item"})
		return
	}

	resp := s.dispatch(ActionLibraryAdd, true, func(state *arise.State) (any, []arise.Event, error) {
		created, err := s.hub.GetLibrarySystem().AddItem(state, item)
		return created, nil, err
	})
	if resp.err != nil {
		s.writeError(c, resp.err)
		return
	}
	s.persistSideDocuments(ActionLibraryAdd)
	c.JSON(http.StatusCreated, resp.payload)
}

func (s *Server) handleUpdateLibraryItem(c *gin.Context) {
	id := c.Param("id")
	var patch arise.LibraryItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid library patch"})
		return
	}

	s.dispatch(ActionLibraryUpdate, true, func(state *arise.State) (any, []arise.Event, error) {
		s.hub.GetLibrarySystem().UpdateItem(state, id, patch)
		return nil, nil, nil
	})
	s.persistSideDocuments(ActionLibraryUpdate)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRemoveLibraryItem(c *gin.Context) {
	id := c.Param("id")
	s.dispatch(ActionLibraryRemove, true, func(state *arise.State) (any, []arise.Event, error) {
		s.hub.GetLibrarySystem().RemoveItem(state, id)
		return nil, nil, nil
	})
	s.persistSideDocuments(ActionLibraryRemove)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCoverSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	if len(data) > maxCoverSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "cover image too large"})
		return
	}

	path, err := s.st.SaveCover(data, header.Filename)
	if err != nil {
		s.logger.Error("cover save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store cover"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch arise.ErrorCode(err) {
	case arise.INVALID_ARGUMENT_ERROR_CODE:
		status = http.StatusBadRequest
	case arise.NOT_FOUND_ERROR_CODE:
		status = http.StatusNotFound
	case arise.FAILED_PRECONDITION_ERROR_CODE:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": arise.ErrorCode(err)})
}
