// Package server exposes the datasheet library over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/r0tools/datasheet-libs/config"
	"github.com/r0tools/datasheet-libs/datasheet"
	"github.com/r0tools/datasheet-libs/releases"
)

var logger = slog.Default().WithGroup("server")

type Server struct {
	engine *gin.Engine
	sheets *datasheet.Client
	tags   releases.TagOptions
}

func New(cfg *config.Config, sheets *datasheet.Client) *Server {
	if cfg.Mode == config.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), AccessLog(), gzip.Gzip(gzip.DefaultCompression))

	s := &Server{
		engine: engine,
		sheets: sheets,
		tags: releases.TagOptions{
			Client:   &http.Client{Timeout: httpTimeout},
			Endpoint: cfg.TagsEndpoint,
			Token:    cfg.AccessToken,
			PerPage:  tagsPerPage,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api/v1")
	api.GET("/releases", s.handleReleases)
	api.GET("/releases/latest", s.handleLatestRelease)
	api.GET("/datasheet/:version/commit-hash", s.handleCommitHash)
	api.GET("/datasheet/:version/sheets/:name", s.handleSheet)
	api.POST("/cache/invalidate/:tag", s.handleInvalidate)
	api.GET("/cache/stats", s.handleStats)
}

// Run blocks serving HTTP on `addr`.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
