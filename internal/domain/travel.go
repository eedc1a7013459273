package domain

// Location is one row of locations.csv. Immutable after load.
type Location struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	State         string  `json:"state"`
	Lat           float64 `json:"latitude"`
	Lon           float64 `json:"longitude"`
	TopActivities string  `json:"top_activities"`
}

// Activity belongs to a location. Duration and cost stay raw strings here;
// they are cast to integers at itinerary build time so a bad value surfaces
// as ErrDataIntegrity exactly where it is consumed.
type Activity struct {
	LocationID       int    `json:"location_id"`
	Name             string `json:"activity_name"`
	MustSeePlace     string `json:"must_see_place"`
	DurationMinsRaw  string `json:"typical_duration_mins"`
	EstimatedCostRaw string `json:"estimated_cost_inr"`
}

// Accommodation belongs to a city. Category is the free-text budget tier
// label matched case-insensitively against requests.
type Accommodation struct {
	CityID        int    `json:"city_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PricePerNight string `json:"price_per_night_inr"`
}

// Transport is loaded but not consumed by any tool yet (reserved).
type Transport struct {
	FromCityID   int    `json:"from_city_id"`
	ToCityID     int    `json:"to_city_id"`
	Mode         string `json:"mode"`
	DurationMins string `json:"duration_mins"`
	CostINR      string `json:"cost_inr"`
}
