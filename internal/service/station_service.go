package service

import (
	"context"
	"fmt"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/repository"
	"github.com/jengzang/civic-etl-go/internal/spatial"
)

const (
	defaultNearestLimit = 5
	maxNearestLimit     = 50
)

// StationService handles business logic for stations
type StationService struct {
	repo *repository.StationRepository
}

// NewStationService creates a new station service
func NewStationService(repo *repository.StationRepository) *StationService {
	return &StationService{repo: repo}
}

// GetStations retrieves stations with filtering and pagination
func (s *StationService) GetStations(ctx context.Context, filter models.StationFilter) ([]models.Station, int64, error) {
	return s.repo.GetStations(ctx, filter)
}

// GetStationByID retrieves a single station by ID
func (s *StationService) GetStationByID(ctx context.Context, id int32) (*models.Station, error) {
	return s.repo.GetByID(ctx, id)
}

// Nearest returns the stations closest to a point by great-circle distance
func (s *StationService) Nearest(ctx context.Context, q models.NearestStationQuery) ([]models.StationDistance, error) {
	if q.Lat == nil || q.Lon == nil {
		return nil, fmt.Errorf("%w: lat and lon are required", ErrInvalidQuery)
	}
	lat, lon := *q.Lat, *q.Lon
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range: %f,%f", ErrInvalidQuery, lat, lon)
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultNearestLimit
	}
	if limit > maxNearestLimit {
		limit = maxNearestLimit
	}

	stations, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]spatial.Point, len(stations))
	for i, st := range stations {
		points[i] = spatial.Point{Lat: st.Lat, Lon: st.Lon}
	}

	ranked := spatial.Nearest(lat, lon, points, limit)
	out := make([]models.StationDistance, len(ranked))
	for i, r := range ranked {
		out[i] = models.StationDistance{Station: stations[r.Index], DistanceMeters: r.DistanceMeters}
	}
	return out, nil
}
