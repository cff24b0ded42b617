// ABOUTME: Retrieval-only search and grounded chat endpoints
// ABOUTME: Streaming chat is served as SSE with start/content/done/error events
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gugugu/docrag/internal/llm"
	"github.com/gugugu/docrag/internal/rag"
)

type searchRequest struct {
	Query         string   `json:"query" binding:"required"`
	File          string   `json:"file"`
	TopK          int      `json:"top_k"`
	MinSimilarity *float64 `json:"min_similarity"`
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	scope, ok := s.resolveScope(c, req.File)
	if !ok {
		return
	}

	results, err := s.orch.Search(c.Request.Context(), rag.SearchRequest{
		Query:    req.Query,
		Scope:    scope,
		TopK:     s.topK(req.TopK),
		MinScore: s.minScore(req.MinSimilarity),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type chatRequest struct {
	Message     string   `json:"message" binding:"required"`
	File        string   `json:"file"`
	Mode        string   `json:"mode"`
	TopK        int      `json:"top_k"`
	MinSim      *float64 `json:"min_similarity"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature *float32 `json:"temperature"`
}

func (s *Server) answerRequest(c *gin.Context, req chatRequest) (rag.AnswerRequest, bool) {
	scope, ok := s.resolveScope(c, req.File)
	if !ok {
		return rag.AnswerRequest{}, false
	}

	mode := rag.Mode(req.Mode)
	if req.Mode == "" {
		mode = rag.ModeStandard
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	temperature := float32(0.7)
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	return rag.AnswerRequest{
		Query:       req.Message,
		Scope:       scope,
		TopK:        s.topK(req.TopK),
		MinScore:    s.minScore(req.MinSim),
		Mode:        mode,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}, true
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	answerReq, ok := s.answerRequest(c, req)
	if !ok {
		return
	}

	resp, err := s.orch.Answer(c.Request.Context(), answerReq)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) chatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	answerReq, ok := s.answerRequest(c, req)
	if !ok {
		return
	}

	events, err := s.orch.AnswerStream(c.Request.Context(), answerReq)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		ev, open := <-events
		if !open {
			return false
		}
		data, err := json.Marshal(ev)
		if err != nil {
			return false
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		return true
	})
}

// aiHealth sends a one-shot test completion to verify the AI service
func (s *Server) aiHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := s.completer.Complete(ctx, "Hello", llm.CompletionOptions{MaxTokens: 10})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": "unhealthy",
			"model":  s.completer.ChatModel(),
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"model":         s.completer.ChatModel(),
		"test_response": result.Content,
	})
}

// resolveScope maps an optional file path or short name onto a document
// identity, writing the error response on failure
func (s *Server) resolveScope(c *gin.Context, file string) (string, bool) {
	if file == "" {
		return "", true
	}
	scope, err := s.manager.Resolve(file)
	if err != nil {
		abortWithError(c, err)
		return "", false
	}
	return scope, true
}

func (s *Server) topK(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.cfg.DefaultTopK
}

func (s *Server) minScore(requested *float64) float64 {
	if requested != nil {
		return *requested
	}
	return s.cfg.DefaultMinScore
}
