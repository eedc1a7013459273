package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/azure"
	"github.com/openai/openai-go/v2/option"

	"travel_agent/internal/domain"
)

// Client adapts an OpenAI-compatible chat completion endpoint to the
// domain.ChatModel port. Azure deployments are selected by setting an API
// version; otherwise a plain key (plus optional base URL) is used.
type Client struct {
	inner openai.Client
	model string
}

type Options struct {
	APIKey     string
	BaseURL    string // empty means the public endpoint
	APIVersion string // non-empty switches to Azure auth
	Model      string
}

func New(opts Options) *Client {
	var reqOpts []option.RequestOption
	if opts.APIVersion != "" {
		reqOpts = append(reqOpts,
			azure.WithEndpoint(opts.BaseURL, opts.APIVersion),
			azure.WithAPIKey(opts.APIKey),
		)
	} else {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
		if opts.BaseURL != "" {
			reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
		}
	}
	return &Client{inner: openai.NewClient(reqOpts...), model: opts.Model}
}

// Complete issues one chat completion. When opts.OfferTools is set the two
// tool declarations are attached; the first tool call in the response wins,
// any extras are dropped.
func (c *Client) Complete(ctx context.Context, turns []domain.Turn, opts domain.CompleteOptions) (domain.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toMessages(turns),
		Temperature: openai.Float(opts.Temperature),
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
	}
	if opts.OfferTools {
		params.Tools = toolDeclarations()
	}

	resp, err := c.inner.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return domain.Completion{}, &domain.UpstreamError{
				Service: "llm",
				Status:  apiErr.StatusCode,
				Body:    apiErr.RawJSON(),
			}
		}
		return domain.Completion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Completion{}, fmt.Errorf("chat completion: empty choices")
	}

	msg := resp.Choices[0].Message
	out := domain.Completion{Text: msg.Content}
	if len(msg.ToolCalls) > 0 {
		tc := msg.ToolCalls[0]
		out.ToolCall = &domain.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: []byte(tc.Function.Arguments),
		}
	}
	return out, nil
}

func toMessages(turns []domain.Turn) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case domain.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(t.Content))
		case domain.RoleAssistant:
			if t.ToolCall != nil {
				msgs = append(msgs, assistantToolCall(t.ToolCall))
				continue
			}
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		case domain.RoleTool:
			msgs = append(msgs, openai.ToolMessage(t.Content, t.ToolCallID))
		default:
			msgs = append(msgs, openai.UserMessage(t.Content))
		}
	}
	return msgs
}

// assistantToolCall replays a tool invocation the model made earlier so the
// follow-up request carries the full exchange.
func assistantToolCall(call *domain.ToolCall) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfAssistant: &openai.ChatCompletionAssistantMessageParam{
			ToolCalls: []openai.ChatCompletionMessageToolCallUnionParam{{
				OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
					ID: call.ID,
					Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
						Name:      call.Name,
						Arguments: string(call.Arguments),
					},
				},
			}},
		},
	}
}

func toolDeclarations() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        string(domain.ToolDestinationWeather),
			Description: openai.String("Get hourly weather forecast summary for a destination between two dates"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"location_id": map[string]string{
						"type":        "integer",
						"description": "Numeric id of the destination from the dataset",
					},
					"start_date": map[string]string{
						"type":        "string",
						"description": "Trip start date, YYYY-MM-DD",
					},
					"end_date": map[string]string{
						"type":        "string",
						"description": "Trip end date, YYYY-MM-DD",
					},
				},
				"required": []string{"location_id", "start_date", "end_date"},
			},
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        string(domain.ToolGenerateItinerary),
			Description: openai.String("Generate a day-by-day itinerary with accommodation options for a destination"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"destination_id": map[string]string{
						"type":        "integer",
						"description": "Numeric id of the destination from the dataset",
					},
					"start_date": map[string]string{
						"type":        "string",
						"description": "Trip start date, YYYY-MM-DD",
					},
					"end_date": map[string]string{
						"type":        "string",
						"description": "Trip end date, YYYY-MM-DD",
					},
					"budget_tier": map[string]string{
						"type":        "string",
						"description": "Accommodation tier, e.g. Budget, Mid, Luxury",
					},
					"interests": map[string]string{
						"type":        "string",
						"description": "Optional free-text interests to bias activity choice",
					},
				},
				"required": []string{"destination_id", "start_date", "end_date", "budget_tier"},
			},
		}),
	}
}
