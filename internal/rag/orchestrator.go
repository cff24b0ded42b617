// ABOUTME: RAG orchestrator: retrieve relevant chunks, ground a prompt, answer
// ABOUTME: Supports standard cosine and advanced hybrid retrieval, streaming
package rag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gugugu/docrag/internal/llm"
	"github.com/gugugu/docrag/internal/models"
	"github.com/gugugu/docrag/internal/search"
)

// Mode selects the retrieval strategy for a grounded answer
type Mode string

const (
	// ModeStandard ranks by cosine similarity alone
	ModeStandard Mode = "standard"
	// ModeAdvanced re-ranks semantic candidates with keyword overlap
	ModeAdvanced Mode = "advanced"
)

// Completer is the external completion service boundary
type Completer interface {
	ChatModel() string
	Complete(ctx context.Context, prompt string, opts llm.CompletionOptions) (*llm.CompletionResult, error)
	CompleteStream(ctx context.Context, prompt string, opts llm.CompletionOptions) (llm.CompletionStream, error)
}

// AnswerRequest carries a user query plus retrieval and completion
// parameters. Scope, when set, must be a resolved document identity.
type AnswerRequest struct {
	Query       string
	Scope       string
	TopK        int
	MinScore    float64
	Mode        Mode
	MaxTokens   int
	Temperature float32
}

// SearchRequest carries retrieval-only parameters
type SearchRequest struct {
	Query    string
	Scope    string
	TopK     int
	MinScore float64
}

// Orchestrator answers queries grounded in retrieved document chunks
type Orchestrator struct {
	embedder  Embedder
	completer Completer
	engine    *search.Engine
	ranker    *search.HybridRanker

	// candidateMultiplier widens the semantic pre-filter for hybrid
	// re-ranking: topK*multiplier candidates are fetched before re-scoring
	candidateMultiplier int
}

// NewOrchestrator creates an Orchestrator over the given collaborators
func NewOrchestrator(embedder Embedder, completer Completer, engine *search.Engine, candidateMultiplier int) *Orchestrator {
	if candidateMultiplier < 1 {
		candidateMultiplier = 3
	}
	return &Orchestrator{
		embedder:            embedder,
		completer:           completer,
		engine:              engine,
		ranker:              search.NewHybridRanker(),
		candidateMultiplier: candidateMultiplier,
	}
}

// Search runs retrieval only: embed the query and rank stored chunks, with
// no completion call
func (o *Orchestrator) Search(ctx context.Context, req SearchRequest) ([]models.SearchResult, error) {
	if err := validateQuery(req.Query, req.TopK); err != nil {
		return nil, err
	}

	queryVector, err := o.embedQuery(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return o.engine.Search(queryVector, req.TopK, req.MinScore, req.Scope)
}

// Answer retrieves context for the query and returns a grounded completion.
// With zero retrieved chunks the completion still runs, instructed to say
// no sources were found; citations are never fabricated.
func (o *Orchestrator) Answer(ctx context.Context, req AnswerRequest) (*models.ChatResponse, error) {
	hits, err := o.retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(req.Query, hits)
	result, err := o.completer.Complete(ctx, prompt, llm.CompletionOptions{
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("answering %q: %w", req.Query, err)
	}

	model := result.Model
	if model == "" {
		model = o.completer.ChatModel()
	}
	return &models.ChatResponse{
		Response:     result.Content,
		Model:        model,
		Usage:        result.Usage,
		Sources:      citations(hits),
		SourcesFound: len(hits) > 0,
	}, nil
}

// AnswerStream retrieves context, then streams the grounded completion as
// an ordered event sequence: start, content fragments, then a terminal
// done or error event. Parameter and retrieval errors surface before any
// event is produced.
func (o *Orchestrator) AnswerStream(ctx context.Context, req AnswerRequest) (<-chan models.StreamEvent, error) {
	hits, err := o.retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(req.Query, hits)
	events := make(chan models.StreamEvent)

	go func() {
		defer close(events)

		if !emit(ctx, events, models.StreamEvent{
			Type:  models.StreamEventStart,
			Model: o.completer.ChatModel(),
		}) {
			return
		}

		stream, err := o.completer.CompleteStream(ctx, prompt, llm.CompletionOptions{
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		})
		if err != nil {
			emit(ctx, events, models.StreamEvent{Type: models.StreamEventError, Error: err.Error()})
			return
		}
		defer stream.Close()

		for {
			fragment, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				emit(ctx, events, models.StreamEvent{Type: models.StreamEventError, Error: err.Error()})
				return
			}
			if !emit(ctx, events, models.StreamEvent{Type: models.StreamEventContent, Content: fragment}) {
				return
			}
		}

		emit(ctx, events, models.StreamEvent{
			Type:    models.StreamEventDone,
			Sources: citations(hits),
		})
	}()

	return events, nil
}

// retrieved is one chunk selected as answer context
type retrieved struct {
	content  string
	citation models.Citation
}

// retrieve embeds the query and selects context chunks per the requested
// mode. Hybrid mode pre-filters semantically (min score applies to the
// semantic score), then re-ranks by composite score.
func (o *Orchestrator) retrieve(ctx context.Context, req AnswerRequest) ([]retrieved, error) {
	if err := validateQuery(req.Query, req.TopK); err != nil {
		return nil, err
	}
	if req.Mode != ModeStandard && req.Mode != ModeAdvanced {
		return nil, fmt.Errorf("unknown retrieval mode %q", req.Mode)
	}

	queryVector, err := o.embedQuery(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	if req.Mode == ModeStandard {
		results, err := o.engine.Search(queryVector, req.TopK, req.MinScore, req.Scope)
		if err != nil {
			return nil, err
		}
		hits := make([]retrieved, len(results))
		for i, r := range results {
			hits[i] = retrieved{
				content: r.Content,
				citation: models.Citation{
					DocumentID: r.DocumentID,
					ChunkIndex: r.ChunkIndex,
					Score:      r.Score,
				},
			}
		}
		return hits, nil
	}

	candidates, err := o.engine.Search(queryVector, req.TopK*o.candidateMultiplier, req.MinScore, req.Scope)
	if err != nil {
		return nil, err
	}
	ranked := o.ranker.Rank(req.Query, candidates, req.TopK)
	hits := make([]retrieved, len(ranked))
	for i, r := range ranked {
		hits[i] = retrieved{
			content: r.Content,
			citation: models.Citation{
				DocumentID: r.DocumentID,
				ChunkIndex: r.ChunkIndex,
				Score:      r.CompositeScore,
			},
		}
	}
	return hits, nil
}

func (o *Orchestrator) embedQuery(ctx context.Context, query string) ([]float64, error) {
	vectors, err := o.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedding query: got %d vectors for one input", len(vectors))
	}
	return vectors[0], nil
}

func validateQuery(query string, topK int) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query must not be empty")
	}
	if topK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", topK)
	}
	return nil
}

func citations(hits []retrieved) []models.Citation {
	out := make([]models.Citation, len(hits))
	for i, h := range hits {
		out[i] = h.citation
	}
	return out
}

// buildPrompt assembles the grounded prompt: system guidance, retrieved
// excerpts with their sources, then the question
func buildPrompt(query string, hits []retrieved) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful assistant that answers questions about the user's documents.\n\n")

	if len(hits) == 0 {
		sb.WriteString("No relevant document excerpts were found for this question. ")
		sb.WriteString("Begin your answer by saying that no sources were found, then answer from general knowledge if you can.\n\n")
	} else {
		sb.WriteString("Answer using the document excerpts below. If they do not contain the answer, say so.\n\n")
		sb.WriteString("DOCUMENT EXCERPTS:\n")
		for i, h := range hits {
			sb.WriteString(fmt.Sprintf("[%d] %s (score %.3f)\n%s\n\n",
				i+1, models.ChunkID(h.citation.DocumentID, h.citation.ChunkIndex), h.citation.Score, h.content))
		}
	}

	sb.WriteString("QUESTION:\n")
	sb.WriteString(query)
	sb.WriteString("\n")
	return sb.String()
}

// emit sends an event unless the consumer's context is done; it reports
// whether the send happened
func emit(ctx context.Context, ch chan<- models.StreamEvent, ev models.StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
