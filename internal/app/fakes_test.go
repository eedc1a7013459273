package app_test

import (
	"context"
	"fmt"
	"time"

	"travel_agent/internal/domain"
)

// ---- fakes ----

type fakeData struct {
	locations []domain.Location
	acts      map[int][]domain.Activity
	accoms    map[int][]domain.Accommodation
}

func (f *fakeData) LocationByID(id int) (domain.Location, bool) {
	for _, l := range f.locations {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Location{}, false
}

func (f *fakeData) ActivitiesByLocation(id int) []domain.Activity { return f.acts[id] }

func (f *fakeData) AccommodationsByCity(id int) []domain.Accommodation { return f.accoms[id] }

func (f *fakeData) Transports() []domain.Transport { return nil }

func (f *fakeData) LocationsSample(n int) []domain.Location {
	if n > len(f.locations) {
		n = len(f.locations)
	}
	return f.locations[:n]
}

// fakeModel replays canned completions and records every call it gets.
type fakeModel struct {
	completions []domain.Completion
	calls       [][]domain.Turn
	opts        []domain.CompleteOptions
}

func (f *fakeModel) Complete(ctx context.Context, turns []domain.Turn, opts domain.CompleteOptions) (domain.Completion, error) {
	f.calls = append(f.calls, append([]domain.Turn(nil), turns...))
	f.opts = append(f.opts, opts)
	if len(f.calls) > len(f.completions) {
		return domain.Completion{}, fmt.Errorf("unexpected completion call %d", len(f.calls))
	}
	return f.completions[len(f.calls)-1], nil
}

type fakeProvider struct {
	hours []domain.HourlyWeather
	err   error
	calls int
}

func (f *fakeProvider) Hourly(ctx context.Context, lat, lon float64) ([]domain.HourlyWeather, error) {
	f.calls++
	return f.hours, f.err
}

func testData() *fakeData {
	return &fakeData{
		locations: []domain.Location{
			{ID: 1, Name: "Jaipur", Type: "heritage city", State: "Rajasthan", Lat: 26.9, Lon: 75.8, TopActivities: "Amber Fort, City Palace"},
			{ID: 2, Name: "Goa", Type: "beach", State: "Goa", Lat: 15.3, Lon: 74.1, TopActivities: "Baga Beach"},
		},
		acts: map[int][]domain.Activity{
			1: {
				{LocationID: 1, Name: "Amber Fort tour", MustSeePlace: "Sheesh Mahal", DurationMinsRaw: "180", EstimatedCostRaw: "500"},
				{LocationID: 1, Name: "City Palace walk", DurationMinsRaw: "120", EstimatedCostRaw: "300"},
			},
		},
		accoms: map[int][]domain.Accommodation{
			1: {
				{CityID: 1, Name: "Hotel Pearl", Category: "Mid", PricePerNight: "2500"},
				{CityID: 1, Name: "Pink City Inn", Category: "mid", PricePerNight: "2200"},
				{CityID: 1, Name: "Hawa Haveli", Category: "MID", PricePerNight: "2700"},
				{CityID: 1, Name: "Amber Lodge", Category: "Mid", PricePerNight: "2400"},
				{CityID: 1, Name: "Palace View", Category: "Mid", PricePerNight: "2600"},
				{CityID: 1, Name: "Raj Mahal Palace", Category: "Luxury", PricePerNight: "12000"},
			},
		},
	}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
