package service

import (
	"context"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/repository"
)

// AccidentService handles business logic for collisions
type AccidentService struct {
	repo *repository.AccidentRepository
}

// NewAccidentService creates a new accident service
func NewAccidentService(repo *repository.AccidentRepository) *AccidentService {
	return &AccidentService{repo: repo}
}

// GetAccidents retrieves collisions; date bounds must be YYYY-MM-DD
func (s *AccidentService) GetAccidents(ctx context.Context, filter models.AccidentFilter) ([]models.AccidentRecord, int64, error) {
	if err := validateDates(filter.From, filter.To); err != nil {
		return nil, 0, err
	}
	return s.repo.GetAccidents(ctx, filter)
}
