package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"travel_agent/internal/domain"
)

const (
	maxAccommodations = 6
	activitiesPerDay  = 3
)

// BuildItinerary is a deterministic, stateless selection over the tabular
// data: matching accommodations plus the destination's activities
// partitioned across the requested days.
func BuildItinerary(data domain.TravelData, args domain.ItineraryArgs) (domain.Itinerary, error) {
	dest, ok := data.LocationByID(args.DestinationID)
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("destination %d: %w", args.DestinationID, domain.ErrLocationNotFound)
	}

	// inclusive calendar-day span, floored at one (defensive minimum, not an
	// error). Timestamps are truncated first so a range crossing midnight
	// still counts both dates.
	start := calendarDate(args.StartDate)
	days := int(calendarDate(args.EndDate).Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	accommodations := make([]domain.Accommodation, 0, maxAccommodations)
	for _, a := range data.AccommodationsByCity(args.DestinationID) {
		if !strings.EqualFold(a.Category, args.BudgetTier) {
			continue
		}
		accommodations = append(accommodations, a)
		if len(accommodations) == maxAccommodations {
			break
		}
	}

	chunks := lo.Chunk(data.ActivitiesByLocation(args.DestinationID), activitiesPerDay)

	out := domain.Itinerary{
		Destination:    dest,
		Accommodations: accommodations,
		Days:           make([]domain.ItineraryDay, 0, days),
	}
	for d := 0; d < days; d++ {
		var chosen []domain.Activity
		switch {
		case d < len(chunks):
			chosen = chunks[d]
		case len(chunks) > 0:
			// Never show an empty day: days past the last chunk reuse the
			// first activities. Duplicates across days are a known artifact
			// of this policy.
			chosen = chunks[0]
		}

		day := domain.ItineraryDay{
			Date:       start.AddDate(0, 0, d).Format("2006-01-02"),
			Activities: make([]domain.ItineraryActivity, 0, len(chosen)),
		}
		for _, a := range chosen {
			entry, err := toItineraryActivity(a)
			if err != nil {
				return domain.Itinerary{}, err
			}
			day.Activities = append(day.Activities, entry)
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}

// calendarDate strips the time of day, keeping the wall-clock date.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toItineraryActivity(a domain.Activity) (domain.ItineraryActivity, error) {
	dur, err := strconv.Atoi(strings.TrimSpace(a.DurationMinsRaw))
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("activity %q duration %q: %w", a.Name, a.DurationMinsRaw, domain.ErrDataIntegrity)
	}
	cost, err := strconv.Atoi(strings.TrimSpace(a.EstimatedCostRaw))
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("activity %q cost %q: %w", a.Name, a.EstimatedCostRaw, domain.ErrDataIntegrity)
	}
	return domain.ItineraryActivity{
		Name:             a.Name,
		MustSeePlace:     a.MustSeePlace,
		DurationMins:     dur,
		EstimatedCostINR: cost,
	}, nil
}
