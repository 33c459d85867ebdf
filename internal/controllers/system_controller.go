package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conversly/embedding-gateway/internal/config"
	"github.com/Conversly/embedding-gateway/internal/embedder"
)

type SystemController struct {
	cfg      *config.Config
	embedder embedder.Provider
}

func NewSystemController(cfg *config.Config, emb embedder.Provider) *SystemController {
	return &SystemController{cfg: cfg, embedder: emb}
}

// Status godoc
// @Summary Get system status
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/status [get]
func (s *SystemController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.ServiceName,
		"version":     "1.0.0",
		"environment": s.cfg.Environment,
		"hostname":    s.cfg.Hostname,
		"provider":    s.embedder.Info().Name,
		"timestamp":   time.Now().UTC(),
	})
}

// Info godoc
// @Summary Get system information
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/info [get]
func (s *SystemController) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.ServiceName,
		"version":     "1.0.0",
		"environment": s.cfg.Environment,
		"hostname":    s.cfg.Hostname,
		"debug":       s.cfg.Debug,
		"log_level":   s.cfg.LogLevel,
		"provider":    s.embedder.Info().Name,
		"timestamp":   time.Now().UTC(),
	})
}
