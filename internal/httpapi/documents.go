// ABOUTME: Document processing, listing, deletion, and stats endpoints
// ABOUTME: Forwards to the document manager, one route per operation
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type processRequest struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	Force    bool   `json:"force"`
}

func (r processRequest) input() string {
	if r.FilePath != "" {
		return r.FilePath
	}
	return r.FileName
}

func (s *Server) processDocument(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.input() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file_path or file_name is required"})
		return
	}

	result, err := s.manager.ProcessFile(c.Request.Context(), req.input(), req.Force)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type processBatchRequest struct {
	Files []string `json:"files"`
	Force bool     `json:"force"`
}

func (s *Server) processBatch(c *gin.Context) {
	var req processBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if len(req.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "files must not be empty"})
		return
	}

	results := s.manager.ProcessBatch(c.Request.Context(), req.Files, req.Force)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) processDemo(c *gin.Context) {
	result, err := s.manager.ProcessFile(c.Request.Context(), s.cfg.DemoDocument, false)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"documents": s.manager.List()})
}

func (s *Server) deleteDocument(c *gin.Context) {
	file := c.Query("file")
	if file == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file query parameter is required"})
		return
	}

	removed, err := s.manager.Delete(file)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.Stats())
}
