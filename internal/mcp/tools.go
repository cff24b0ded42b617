// ABOUTME: MCP tool definitions and registration for the docrag server
// ABOUTME: Exposes the retrieval core to LLM agents over stdio
package mcp

import (
	"github.com/gugugu/docrag/internal/config"
	"github.com/gugugu/docrag/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all docrag MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config, manager *rag.Manager, orch *rag.Orchestrator) *Handlers {
	handlers := &Handlers{
		cfg:     cfg,
		manager: manager,
		orch:    orch,
	}

	server.AddTool(mcp.Tool{
		Name:        "process_document",
		Description: "Chunk, embed, and index a document so it can be searched. Skips unchanged documents unless force is set.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file": map[string]interface{}{
					"type":        "string",
					"description": "File path, or a file name resolved under the document root",
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "Reprocess even if the document content is unchanged",
				},
			},
			Required: []string{"file"},
		},
	}, handlers.ProcessDocument)

	server.AddTool(mcp.Tool{
		Name:        "search_documents",
		Description: "Semantic search over indexed document chunks. Returns chunk text with similarity scores and sources, no completion call.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"file": map[string]interface{}{
					"type":        "string",
					"description": "Optional file to restrict the search to",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchDocuments)

	server.AddTool(mcp.Tool{
		Name:        "ask_documents",
		Description: "Answer a question grounded in the indexed documents, with source citations. Mode 'advanced' adds keyword re-ranking.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"file": map[string]interface{}{
					"type":        "string",
					"description": "Optional file to restrict retrieval to",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Retrieval mode: standard or advanced (default: standard)",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Number of chunks to ground the answer on (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskDocuments)

	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List all indexed documents with chunk counts and processing timestamps.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDocuments)

	server.AddTool(mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document and its chunks from the index. Removing an unknown document succeeds as a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file": map[string]interface{}{
					"type":        "string",
					"description": "Document identity, file name, or path to remove",
				},
			},
			Required: []string{"file"},
		},
	}, handlers.RemoveDocument)

	server.AddTool(mcp.Tool{
		Name:        "store_stats",
		Description: "Vector store statistics: document count, chunk count, on-disk size.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.StoreStats)

	return handlers
}
