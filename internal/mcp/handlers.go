// ABOUTME: MCP tool handler implementations for the docrag server
// ABOUTME: Thin adapters from tool arguments to the retrieval core
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gugugu/docrag/internal/config"
	"github.com/gugugu/docrag/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all docrag tools
type Handlers struct {
	cfg     *config.Config
	manager *rag.Manager
	orch    *rag.Orchestrator
}

// ProcessDocument handles the process_document tool
func (h *Handlers) ProcessDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file argument is required and must be a string"), nil
	}
	force := request.GetBool("force", false)

	result, err := h.manager.ProcessFile(ctx, file, force)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("processing failed: %v", err)), nil
	}
	return jsonResult(result)
}

// SearchDocuments handles the search_documents tool
func (h *Handlers) SearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", h.cfg.DefaultTopK)

	scope, errResult := h.resolveScope(request)
	if errResult != nil {
		return errResult, nil
	}

	results, err := h.orch.Search(ctx, rag.SearchRequest{
		Query:    query,
		Scope:    scope,
		TopK:     topK,
		MinScore: h.cfg.DefaultMinScore,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"results": results})
}

// AskDocuments handles the ask_documents tool
func (h *Handlers) AskDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	mode := rag.Mode(request.GetString("mode", string(rag.ModeStandard)))
	topK := request.GetInt("top_k", h.cfg.DefaultTopK)

	scope, errResult := h.resolveScope(request)
	if errResult != nil {
		return errResult, nil
	}

	resp, err := h.orch.Answer(ctx, rag.AnswerRequest{
		Query:       question,
		Scope:       scope,
		TopK:        topK,
		MinScore:    h.cfg.DefaultMinScore,
		Mode:        mode,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answer failed: %v", err)), nil
	}
	return jsonResult(resp)
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{"documents": h.manager.List()})
}

// RemoveDocument handles the remove_document tool
func (h *Handlers) RemoveDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file argument is required and must be a string"), nil
	}

	removed, err := h.manager.Delete(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("remove failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"removed": removed})
}

// StoreStats handles the store_stats tool
func (h *Handlers) StoreStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.manager.Stats())
}

// resolveScope reads the optional file argument and resolves it to a
// document identity
func (h *Handlers) resolveScope(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	file := request.GetString("file", "")
	if file == "" {
		return "", nil
	}
	scope, err := h.manager.Resolve(file)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("resolving file: %v", err))
	}
	return scope, nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
