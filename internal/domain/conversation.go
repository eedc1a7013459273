package domain

import "encoding/json"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Turn is one entry of a conversation. History is append-only within a
// request and never persisted; the caller resupplies it on every call.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ToolCall is set on the assistant turn that requested a tool.
	ToolCall *ToolCall `json:"tool_call,omitempty"`
	// ToolCallID is set on the tool-result turn it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// ToolName is the closed set of tools the agent advertises.
type ToolName string

const (
	ToolDestinationWeather ToolName = "get_destination_weather"
	ToolGenerateItinerary  ToolName = "generate_itinerary"
)

// ToolCall is a tool invocation requested by the model. Name is kept as the
// model sent it; it may not match any known ToolName, and Arguments are an
// untrusted boundary input until validated.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type CompleteOptions struct {
	OfferTools  bool
	Temperature float64
	MaxTokens   int
}

// Completion is the model's answer: plain text, or a requested tool call.
// When the model asks for several calls only the first is honored.
type Completion struct {
	Text     string
	ToolCall *ToolCall
}

// ChatReply is what the endpoint returns to the client.
type ChatReply struct {
	Kind       string          `json:"kind"` // "reply" or "final"
	Text       string          `json:"text"`
	Tool       string          `json:"tool,omitempty"`
	ToolOutput json.RawMessage `json:"tool_output,omitempty"`
}
