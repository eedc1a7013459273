// internal/storage/csvdata/store.go
package csvdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"travel_agent/internal/domain"
)

// Store holds the four travel tables in memory. Built once at startup,
// read-only afterwards; concurrent reads need no coordination.
type Store struct {
	locations  []domain.Location
	locByID    map[int]domain.Location
	actsByLoc  map[int][]domain.Activity
	accomsByID map[int][]domain.Accommodation
	transports []domain.Transport
}

var _ domain.TravelData = (*Store)(nil)

// Load reads locations.csv, activities.csv, accommodations.csv and
// transports.csv from dir. Row order within each file is preserved.
func Load(dir string) (*Store, error) {
	s := &Store{
		locByID:    map[int]domain.Location{},
		actsByLoc:  map[int][]domain.Activity{},
		accomsByID: map[int][]domain.Accommodation{},
	}

	if err := readTable(dir, "locations.csv", func(row rec) error {
		id, err := row.intCol("id")
		if err != nil {
			return err
		}
		lat, err := row.floatCol("latitude")
		if err != nil {
			return err
		}
		lon, err := row.floatCol("longitude")
		if err != nil {
			return err
		}
		loc := domain.Location{
			ID:            id,
			Name:          row.col("name"),
			Type:          row.col("type"),
			State:         row.col("state"),
			Lat:           lat,
			Lon:           lon,
			TopActivities: row.col("top_activities"),
		}
		s.locations = append(s.locations, loc)
		s.locByID[id] = loc
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readTable(dir, "activities.csv", func(row rec) error {
		id, err := row.intCol("location_id")
		if err != nil {
			return err
		}
		// duration/cost kept raw; cast happens at itinerary build time
		s.actsByLoc[id] = append(s.actsByLoc[id], domain.Activity{
			LocationID:       id,
			Name:             row.col("activity_name"),
			MustSeePlace:     row.col("must_see_place"),
			DurationMinsRaw:  row.col("typical_duration_mins"),
			EstimatedCostRaw: row.col("estimated_cost_inr"),
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readTable(dir, "accommodations.csv", func(row rec) error {
		id, err := row.intCol("city_id")
		if err != nil {
			return err
		}
		s.accomsByID[id] = append(s.accomsByID[id], domain.Accommodation{
			CityID:        id,
			Name:          row.col("name"),
			Category:      row.col("category"),
			PricePerNight: row.col("price_per_night_inr"),
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readTable(dir, "transports.csv", func(row rec) error {
		from, err := row.intCol("from_city_id")
		if err != nil {
			return err
		}
		to, err := row.intCol("to_city_id")
		if err != nil {
			return err
		}
		s.transports = append(s.transports, domain.Transport{
			FromCityID:   from,
			ToCityID:     to,
			Mode:         row.col("mode"),
			DurationMins: row.col("duration_mins"),
			CostINR:      row.col("cost_inr"),
		})
		return nil
	}); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) LocationByID(id int) (domain.Location, bool) {
	loc, ok := s.locByID[id]
	return loc, ok
}

func (s *Store) ActivitiesByLocation(id int) []domain.Activity {
	return s.actsByLoc[id]
}

func (s *Store) AccommodationsByCity(id int) []domain.Accommodation {
	return s.accomsByID[id]
}

func (s *Store) Transports() []domain.Transport { return s.transports }

func (s *Store) LocationsSample(n int) []domain.Location {
	if n <= 0 {
		return nil
	}
	if n > len(s.locations) {
		n = len(s.locations)
	}
	return s.locations[:n]
}

// Counts reports table sizes for startup logging.
func (s *Store) Counts() (locations, activities, accommodations, transports int) {
	for _, a := range s.actsByLoc {
		activities += len(a)
	}
	for _, a := range s.accomsByID {
		accommodations += len(a)
	}
	return len(s.locations), activities, accommodations, len(s.transports)
}

// ---- CSV plumbing ----

// rec is one data row paired with its header index.
type rec struct {
	file   string
	line   int
	fields []string
	idx    map[string]int
}

func (r rec) col(name string) string {
	i, ok := r.idx[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r rec) intCol(name string) (int, error) {
	v, err := strconv.Atoi(r.col(name))
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %q: %w", r.file, r.line, name, err)
	}
	return v, nil
}

func (r rec) floatCol(name string) (float64, error) {
	v, err := strconv.ParseFloat(r.col(name), 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %q: %w", r.file, r.line, name, err)
	}
	return v, nil
}

func readTable(dir, file string, each func(rec) error) error {
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // header drives the column count
	rows, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: empty file", file)
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for i, fields := range rows[1:] {
		if err := each(rec{file: file, line: i + 2, fields: fields, idx: idx}); err != nil {
			return err
		}
	}
	return nil
}
