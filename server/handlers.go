package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gin-gonic/gin"

	"github.com/r0tools/datasheet-libs/common"
	"github.com/r0tools/datasheet-libs/datasheet"
	libErrs "github.com/r0tools/datasheet-libs/errors"
	"github.com/r0tools/datasheet-libs/releases"
)

const (
	httpTimeout = 10 * time.Second
	tagsPerPage = 100
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCommitHash(c *gin.Context) {
	version := c.Param("version")
	hash, err := s.sheets.CommitHash(c.Request.Context(), version)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": version, "commit_hash": hash})
}

func (s *Server) handleSheet(c *gin.Context) {
	version := c.Param("version")
	name := c.Param("name")

	art, err := s.sheets.Sheet(c.Request.Context(), version, name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	sheet, err := datasheet.LoadSheet(art.Data)
	if err != nil {
		abortWithError(c, err)
		return
	}
	entries, err := sheet.GetEntries()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"version": version,
		"name":    name,
		"digest":  art.Digest.String(),
		"entries": entries,
	})
}

func (s *Server) handleReleases(c *gin.Context) {
	idx, err := s.releaseIndex(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	rels, err := idx.GetReleases()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"releases": common.Map(rels, (*semver.Version).String),
	})
}

func (s *Server) handleLatestRelease(c *gin.Context) {
	idx, err := s.releaseIndex(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	latest, err := idx.Latest()
	if err != nil {
		abortWithError(c, err)
		return
	}
	commit, err := idx.GetCommit(latest)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": latest.String(), "commit": commit})
}

func (s *Server) handleInvalidate(c *gin.Context) {
	tag := c.Param("tag")
	removed := s.sheets.Invalidate(tag)
	c.JSON(http.StatusOK, gin.H{"tag": tag, "invalidated": removed})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"caches": s.sheets.Stats()})
}

func (s *Server) releaseIndex(c *gin.Context) (*releases.ReleaseIndex, error) {
	data, err := releases.DownloadTags(c.Request.Context(), s.tags)
	if err != nil {
		return nil, err
	}
	return releases.NewReleaseIndex(data)
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var kerr *libErrs.Error
	switch {
	case errors.Is(err, libErrs.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &kerr) && (kerr.Kind() == libErrs.TransportErrorKind || kerr.Kind() == libErrs.ResponseErrorKind):
		status = http.StatusBadGateway
	}
	logger.Error("request failed",
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
