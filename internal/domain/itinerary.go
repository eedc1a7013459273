package domain

import "time"

// ItineraryArgs are the validated arguments of the generate_itinerary tool.
// Interests is accepted but not used to filter or rank yet; it is a
// placeholder for prompt-level refinement by the orchestrator.
type ItineraryArgs struct {
	DestinationID int
	StartDate     time.Time
	EndDate       time.Time
	BudgetTier    string
	Interests     string
}

type ItineraryActivity struct {
	Name             string `json:"activity_name"`
	MustSeePlace     string `json:"must_see_place"`
	DurationMins     int    `json:"duration_mins"`
	EstimatedCostINR int    `json:"estimated_cost_inr"`
}

type ItineraryDay struct {
	Date       string              `json:"date"`
	Activities []ItineraryActivity `json:"activities"`
}

// Itinerary always contains one day per calendar day of the requested range,
// inclusive (minimum one). WeatherSummary is present but left null; merging
// a weather lookup into it is the orchestrator's business, not the builder's.
type Itinerary struct {
	Destination    Location        `json:"destination"`
	Accommodations []Accommodation `json:"accommodations"`
	Days           []ItineraryDay  `json:"days"`
	WeatherSummary WeatherSummary  `json:"weather_summary"`
}
