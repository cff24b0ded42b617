// ABOUTME: Typed events for streaming grounded chat responses
// ABOUTME: Consumers concatenate content fragments in arrival order
package models

// StreamEventType discriminates streaming chat events
type StreamEventType string

const (
	StreamEventStart   StreamEventType = "start"
	StreamEventContent StreamEventType = "content"
	StreamEventDone    StreamEventType = "done"
	StreamEventError   StreamEventType = "error"
)

// StreamEvent is one element of a grounded chat stream. The sequence is
// always start, zero or more content events, then exactly one terminal
// done or error event.
type StreamEvent struct {
	Type    StreamEventType `json:"type"`
	Model   string          `json:"model,omitempty"`   // start only
	Content string          `json:"content,omitempty"` // content only
	Error   string          `json:"error,omitempty"`   // error only
	Usage   *TokenUsage     `json:"usage,omitempty"`   // done only, when known
	Sources []Citation      `json:"sources,omitempty"` // done only
}
