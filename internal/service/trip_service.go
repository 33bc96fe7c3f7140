package service

import (
	"context"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/repository"
)

// TripService handles business logic for trips
type TripService struct {
	repo *repository.TripRepository
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository) *TripService {
	return &TripService{repo: repo}
}

// GetTrips retrieves trips with filtering and pagination
func (s *TripService) GetTrips(ctx context.Context, filter models.TripFilter) ([]models.Trip, int64, error) {
	return s.repo.GetTrips(ctx, filter)
}
