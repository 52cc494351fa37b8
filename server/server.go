package server

import (
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"

	"github.com/chaos-io/photo2gif/rembg"
	"github.com/chaos-io/photo2gif/scratch"
)

//go:embed index.html
var indexPage []byte

type Server struct {
	remover rembg.Remover
	scratch *scratch.Dir
	log     *slog.Logger
}

func New(remover rembg.Remover, dir *scratch.Dir, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		remover: remover,
		scratch: dir,
		log:     logger,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.POST("/convert", s.handleConvert)

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "GIF converter is running",
	})
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = ksuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		c.Next()

		status := c.Writer.Status()
		logger := s.log.With(
			"request_id", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
		if status >= http.StatusInternalServerError {
			logger.Error("http request failed")
		} else {
			logger.Info("http request")
		}
	}
}
