package app

import (
	"encoding/json"
	"fmt"

	"travel_agent/internal/domain"
)

// DefaultSnapshotSize is how many location rows are embedded in the system
// prompt when SNAPSHOT_SIZE is not configured.
const DefaultSnapshotSize = 12

// locationSnapshot is the bounded excerpt of the location table shown to
// the model for grounding; coordinates are deliberately omitted.
type locationSnapshot struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	State         string `json:"state"`
	TopActivities string `json:"top_activities"`
}

const systemPromptTemplate = `You are a professional travel planner assistant. Use the provided tools to fetch factual information from the application's travel dataset.
RULES:
1) Do NOT invent factual items such as hotel names, activity durations, distances, transport modes, or costs. Any factual detail must come from the tools.
2) You may ask follow-up questions when required (destination, dates, budget_tier).
3) You may produce atmospheric/advisory language (packing tips, clothing, photography suggestions).
4) When enough information is gathered, call the appropriate tool(s) - typically get_destination_weather and generate_itinerary - using function calling.
Data snapshot (sample of dataset rows to help grounding):
%s
`

// buildSystemPrompt renders the fixed instruction template plus a data
// snapshot. The grounding rules are advisory only: the model is instructed,
// not verified, so tests cover the plumbing rather than compliance.
func buildSystemPrompt(data domain.TravelData, snapshotSize int) string {
	if snapshotSize <= 0 {
		snapshotSize = DefaultSnapshotSize
	}
	rows := data.LocationsSample(snapshotSize)
	sample := make([]locationSnapshot, 0, len(rows))
	for _, l := range rows {
		sample = append(sample, locationSnapshot{
			ID:            l.ID,
			Name:          l.Name,
			Type:          l.Type,
			State:         l.State,
			TopActivities: l.TopActivities,
		})
	}
	b, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		b = []byte("[]")
	}
	return fmt.Sprintf(systemPromptTemplate, b)
}
