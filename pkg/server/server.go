// Package server exposes schedule persistence over HTTP for remote gateways.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

// Server serves the schedule API backed by a store.Persistence.
type Server struct {
	p       store.Persistence
	version string
	engine  *gin.Engine
}

// New builds the router.
func New(p store.Persistence, version string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{p: p, version: version, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLog)

	s.engine.GET("/health", s.health)
	s.engine.GET("/members/:member/schedules", s.listSchedules)
	s.engine.GET("/members/:member/pills", s.listPills)
	s.engine.GET("/schedules/:id/stickers", s.listStickers)
	s.engine.PUT("/schedules/:id/check", s.setChecked)
	s.engine.POST("/schedules/:id/stickers", s.addSticker)
	s.engine.PUT("/likes/:id", s.changeSticker)
	return s
}

// Handler returns the http.Handler for the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
	})
}

func (s *Server) listSchedules(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.p.Schedules(c.Request.Context(), c.Param("member"), day))
}

func (s *Server) listPills(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.p.Pills(c.Request.Context(), c.Param("member"), day, c.Query("viewer")))
}

func (s *Server) listStickers(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.p.Likes(c.Request.Context(), id, c.Query("viewer")))
}

func (s *Server) setChecked(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Checked *bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Checked == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"checked\": bool}"})
		return
	}
	if err := s.p.SetChecked(c.Request.Context(), id, *req.Checked); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addSticker(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		StickerID  int    `json:"stickerId"`
		Sender     string `json:"sender"`
		SenderName string `json:"senderName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Sender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must name a sender and stickerId"})
		return
	}
	like, err := s.p.AddLike(c.Request.Context(), id, req.Sender, req.SenderName, req.StickerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule.StickerReaction{
		ScheduleID:     like.ScheduleID,
		LikeScheduleID: like.ID,
		StickerID:      like.StickerID,
		SenderIsLiked:  true,
		SenderName:     like.SenderName,
		Created:        like.Created,
	})
}

func (s *Server) changeSticker(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		StickerID int `json:"stickerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"stickerId\": int}"})
		return
	}
	if err := s.p.ChangeLike(c.Request.Context(), id, req.StickerID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func dayParam(c *gin.Context) (schedule.Day, bool) {
	day, err := schedule.ParseDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return schedule.Day{}, false
	}
	return day, true
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("server: request failed", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	log.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"elapsed", time.Since(start),
	)
}
