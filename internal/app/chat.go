package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"travel_agent/internal/adapters/observability"
	"travel_agent/internal/domain"
)

const (
	chatTemperature    = 0.2 // fixed low for determinism
	firstCallMaxTokens = 1000
	followUpMaxTokens  = 1500
)

// ChatService is the conversation orchestrator: one inbound message becomes
// at most two sequential completion calls with an optional tool dispatch in
// between. No state survives the request.
type ChatService struct {
	data         domain.TravelData
	model        domain.ChatModel
	weather      *WeatherService
	snapshotSize int
}

func NewChatService(data domain.TravelData, model domain.ChatModel, weather *WeatherService, snapshotSize int) *ChatService {
	if snapshotSize <= 0 {
		snapshotSize = DefaultSnapshotSize
	}
	return &ChatService{data: data, model: model, weather: weather, snapshotSize: snapshotSize}
}

// Handle runs the orchestration loop for a single message plus its prior
// turns (resupplied by the caller; nothing is stored between requests).
func (s *ChatService) Handle(ctx context.Context, message string, prior []domain.Turn) (domain.ChatReply, error) {
	turns := make([]domain.Turn, 0, len(prior)+4)
	turns = append(turns, domain.Turn{Role: domain.RoleSystem, Content: buildSystemPrompt(s.data, s.snapshotSize)})
	turns = append(turns, prior...)
	turns = append(turns, domain.Turn{Role: domain.RoleUser, Content: message})

	first, err := s.model.Complete(ctx, turns, domain.CompleteOptions{
		OfferTools:  true,
		Temperature: chatTemperature,
		MaxTokens:   firstCallMaxTokens,
	})
	if err != nil {
		return domain.ChatReply{}, err
	}

	if first.ToolCall == nil {
		return domain.ChatReply{Kind: "reply", Text: first.Text}, nil
	}

	call := first.ToolCall
	output, err := s.dispatch(ctx, call)
	if err != nil {
		return domain.ChatReply{}, err
	}
	payload, err := json.Marshal(output)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("serialize %s output: %w", call.Name, err)
	}
	log.Info().Str("tool", call.Name).Int("output_bytes", len(payload)).Msg("tool dispatched")

	// replay the tool exchange and ask for the final answer, no tools offered
	turns = append(turns,
		domain.Turn{Role: domain.RoleAssistant, ToolCall: call},
		domain.Turn{Role: domain.RoleTool, Content: string(payload), ToolCallID: call.ID},
	)
	followUp, err := s.model.Complete(ctx, turns, domain.CompleteOptions{
		Temperature: chatTemperature,
		MaxTokens:   followUpMaxTokens,
	})
	if err != nil {
		return domain.ChatReply{}, err
	}

	return domain.ChatReply{
		Kind:       "final",
		Text:       followUp.Text,
		Tool:       call.Name,
		ToolOutput: payload,
	}, nil
}

// dispatch routes a tool call by its declared name. An unrecognized name
// yields an inline error object that is still fed back to the model; the
// request itself does not fail.
func (s *ChatService) dispatch(ctx context.Context, call *domain.ToolCall) (any, error) {
	var out any
	var err error
	switch domain.ToolName(call.Name) {
	case domain.ToolDestinationWeather:
		var args weatherArgs
		if args, err = parseWeatherArgs(call.Arguments); err == nil {
			out, err = s.weather.Fetch(ctx, args.locationID, args.start, args.end)
		}
	case domain.ToolGenerateItinerary:
		var args domain.ItineraryArgs
		if args, err = parseItineraryArgs(call.Arguments); err == nil {
			out, err = BuildItinerary(s.data, args)
		}
	default:
		observability.ObserveTool(call.Name, "unknown")
		return map[string]string{"error": "Unknown tool " + call.Name}, nil
	}
	if err != nil {
		observability.ObserveTool(call.Name, "error")
		return nil, err
	}
	observability.ObserveTool(call.Name, "ok")
	return out, nil
}

// ---- tool argument validation ----
// Model-supplied arguments are untrusted: required fields and date formats
// are checked before anything touches the data layer.

type weatherArgs struct {
	locationID int
	start, end time.Time
}

func parseWeatherArgs(raw json.RawMessage) (weatherArgs, error) {
	var in struct {
		LocationID *int   `json:"location_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return weatherArgs{}, fmt.Errorf("get_destination_weather: %v: %w", err, domain.ErrMalformedToolArgs)
	}
	if in.LocationID == nil {
		return weatherArgs{}, fmt.Errorf("get_destination_weather: location_id is required: %w", domain.ErrMalformedToolArgs)
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return weatherArgs{}, err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return weatherArgs{}, err
	}
	return weatherArgs{locationID: *in.LocationID, start: start, end: end}, nil
}

func parseItineraryArgs(raw json.RawMessage) (domain.ItineraryArgs, error) {
	var in struct {
		DestinationID *int   `json:"destination_id"`
		StartDate     string `json:"start_date"`
		EndDate       string `json:"end_date"`
		BudgetTier    string `json:"budget_tier"`
		Interests     string `json:"interests"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return domain.ItineraryArgs{}, fmt.Errorf("generate_itinerary: %v: %w", err, domain.ErrMalformedToolArgs)
	}
	if in.DestinationID == nil {
		return domain.ItineraryArgs{}, fmt.Errorf("generate_itinerary: destination_id is required: %w", domain.ErrMalformedToolArgs)
	}
	if strings.TrimSpace(in.BudgetTier) == "" {
		return domain.ItineraryArgs{}, fmt.Errorf("generate_itinerary: budget_tier is required: %w", domain.ErrMalformedToolArgs)
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return domain.ItineraryArgs{}, err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return domain.ItineraryArgs{}, err
	}
	return domain.ItineraryArgs{
		DestinationID: *in.DestinationID,
		StartDate:     start,
		EndDate:       end,
		BudgetTier:    in.BudgetTier,
		Interests:     in.Interests,
	}, nil
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(field, v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s %q is not a date: %w", field, v, domain.ErrMalformedToolArgs)
}
