package service

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/output"
	"github.com/jengzang/civic-etl-go/internal/repository"
	"github.com/jengzang/civic-etl-go/internal/stats"
)

// WardSummary is a ward's census profile with its collisions and docks
type WardSummary struct {
	models.Ward
	Accidents    int64 `json:"accidents"`
	Stations     int   `json:"stations"`
	DockCapacity int   `json:"dock_capacity"`
}

// WardStats describes how collisions and docks spread across the wards
type WardStats struct {
	Wards           int           `json:"wards"`
	Accidents       stats.Summary `json:"accidents"`
	AccidentsPer10k stats.Summary `json:"accidents_per_10k"` // wards with a known population
	DockCapacity    stats.Summary `json:"dock_capacity"`
}

// WardService handles business logic for wards
type WardService struct {
	zones     *repository.ZoneRepository
	accidents *repository.AccidentRepository
	stations  *repository.StationRepository
}

// NewWardService creates a new ward service
func NewWardService(zones *repository.ZoneRepository, accidents *repository.AccidentRepository, stations *repository.StationRepository) *WardService {
	return &WardService{zones: zones, accidents: accidents, stations: stations}
}

// GetWards lists every ward with its collision count and dock capacity
func (s *WardService) GetWards(ctx context.Context) ([]WardSummary, error) {
	wards, err := s.zones.GetWards(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.accidents.CountByWard(ctx)
	if err != nil {
		return nil, err
	}
	stations, err := s.stations.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	docks := make(map[int64]int)
	stationCounts := make(map[int64]int)
	for _, st := range stations {
		if !st.WardID.Valid {
			continue
		}
		docks[st.WardID.ID] += st.Capacity
		stationCounts[st.WardID.ID]++
	}

	out := make([]WardSummary, len(wards))
	for i, w := range wards {
		out[i] = WardSummary{
			Ward:         w,
			Accidents:    counts[w.ID],
			Stations:     stationCounts[w.ID],
			DockCapacity: docks[w.ID],
		}
	}
	return out, nil
}

// GetWardStats summarizes the per-ward figures of GetWards
func (s *WardService) GetWardStats(ctx context.Context) (*WardStats, error) {
	wards, err := s.GetWards(ctx)
	if err != nil {
		return nil, err
	}

	accidents := make([]float64, 0, len(wards))
	docks := make([]float64, 0, len(wards))
	var rates []float64
	for _, w := range wards {
		accidents = append(accidents, float64(w.Accidents))
		docks = append(docks, float64(w.DockCapacity))
		if w.Population > 0 {
			rates = append(rates, float64(w.Accidents)*10000/float64(w.Population))
		}
	}

	return &WardStats{
		Wards:           len(wards),
		Accidents:       stats.Describe(accidents),
		AccidentsPer10k: stats.Describe(rates),
		DockCapacity:    stats.Describe(docks),
	}, nil
}

// GetWardsGeoJSON returns the ward boundaries as a feature collection
func (s *WardService) GetWardsGeoJSON(ctx context.Context) (*geojson.FeatureCollection, error) {
	wards, err := s.zones.GetWards(ctx)
	if err != nil {
		return nil, err
	}
	return output.WardFeatures(wards), nil
}
