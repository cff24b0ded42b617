// ABOUTME: Gin HTTP surface over the retrieval core
// ABOUTME: Thin forwarding layer: routes, request IDs, error-to-status mapping
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gugugu/docrag/internal/config"
	"github.com/gugugu/docrag/internal/llm"
	"github.com/gugugu/docrag/internal/rag"
	"github.com/gugugu/docrag/internal/store"
)

// Server wires the HTTP routes to the retrieval core
type Server struct {
	cfg       *config.Config
	manager   *rag.Manager
	orch      *rag.Orchestrator
	completer rag.Completer
}

// NewServer creates a Server over the given core components
func NewServer(cfg *config.Config, manager *rag.Manager, orch *rag.Orchestrator, completer rag.Completer) *Server {
	return &Server{
		cfg:       cfg,
		manager:   manager,
		orch:      orch,
		completer: completer,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID())

	r.GET("/health", s.health)
	r.GET("/ai/health", s.aiHealth)

	grp := r.Group("/rag")
	{
		grp.POST("/process", s.processDocument)
		grp.POST("/process-batch", s.processBatch)
		grp.POST("/process-demo", s.processDemo)
		grp.GET("/documents", s.listDocuments)
		grp.DELETE("/documents", s.deleteDocument)
		grp.GET("/stats", s.stats)
		grp.POST("/search", s.search)
		grp.POST("/chat", s.chat)
		grp.POST("/chat/stream", s.chatStream)
	}

	return r
}

// requestID tags every request with an ID, honoring a caller-supplied one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// statusFor maps core errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, rag.ErrDocumentNotFound), errors.Is(err, rag.ErrAmbiguousDocument):
		return http.StatusNotFound
	case errors.Is(err, rag.ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrEmbeddingService), errors.Is(err, llm.ErrCompletionService):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrStoreIO):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"detail": err.Error()})
}
