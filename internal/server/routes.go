package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guidekit-labs/guidekit/internal/facts"
	"github.com/guidekit-labs/guidekit/internal/validate"
)

// resolveRequest is the body of POST /api/v1/resolve.
type resolveRequest struct {
	Facts facts.Facts `json:"facts"`
}

// resolveResponse carries the resolved load order plus the checksum of the
// manifest it was computed from, so callers can pin what they resolved
// against.
type resolveResponse struct {
	Checksum string      `json:"checksum"`
	Facts    facts.Facts `json:"facts"`
	Guides   []string    `json:"guides"`
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", s.handleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.POST("/resolve", s.handleResolve)
	api.GET("/manifest", s.handleManifest)
	api.POST("/reload", s.handleReload)
	api.GET("/validate", s.handleValidate)
}

func (s *Server) handleHealthz(c *gin.Context) {
	m, err := s.cfg.Store.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "no manifest loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checksum": m.Checksum})
}

func (s *Server) handleResolve(c *gin.Context) {
	m, err := s.cfg.Store.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Facts == nil {
		req.Facts = facts.Facts{}
	}

	hitsBefore, _ := s.cache.Stats()
	guides := s.cache.Resolve(m, req.Facts)
	hitsAfter, _ := s.cache.Stats()

	RegisterMetrics()
	resolves.Inc()
	if hitsAfter > hitsBefore {
		cacheHits.Inc()
	}

	c.JSON(http.StatusOK, resolveResponse{
		Checksum: m.Checksum,
		Facts:    req.Facts,
		Guides:   guides,
	})
}

func (s *Server) handleManifest(c *gin.Context) {
	m, err := s.cfg.Store.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	categories := make([]gin.H, 0, len(m.Categories))
	for _, cat := range m.Categories {
		categories = append(categories, gin.H{
			"name":    cat.Name,
			"entries": len(cat.Entries),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"checksum":   m.Checksum,
		"version":    m.Meta.Version,
		"categories": categories,
		"entries":    m.EntryCount(),
		"disabled":   m.DisabledCount(),
	})
}

func (s *Server) handleReload(c *gin.Context) {
	m, err := s.reload()
	if err != nil {
		// The previous manifest stays active; the caller learns why.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checksum": m.Checksum, "entries": m.EntryCount()})
}

func (s *Server) handleValidate(c *gin.Context) {
	m, err := s.cfg.Store.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	report := validate.Check(m, s.cfg.GuidesRoot)
	status := http.StatusOK
	if report.Failed() {
		// Drift is data, not an internal error, but CI probes keying on
		// status codes get a distinguishable one.
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{
		"failed":  report.Failed(),
		"records": report.Records,
	})
}
