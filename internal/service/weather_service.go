package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/repository"
)

// WeatherService handles business logic for daily weather
type WeatherService struct {
	repo *repository.WeatherRepository
}

// NewWeatherService creates a new weather service
func NewWeatherService(repo *repository.WeatherRepository) *WeatherService {
	return &WeatherService{repo: repo}
}

// GetWeather retrieves observations; date bounds must be YYYY-MM-DD
func (s *WeatherService) GetWeather(ctx context.Context, filter models.WeatherFilter) ([]models.WeatherObservation, int64, error) {
	if err := validateDates(filter.From, filter.To); err != nil {
		return nil, 0, err
	}
	return s.repo.GetWeather(ctx, filter)
}

func validateDates(dates ...string) error {
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return fmt.Errorf("%w: date %q, want YYYY-MM-DD", ErrInvalidQuery, d)
		}
	}
	return nil
}
