package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/civic-etl-go/internal/models"
)

var weatherColumns = []string{
	"date", "mean_temp", "total_rain", "total_snow", "max_gust", "gust_type", "city_id",
}

// WeatherRepository handles database operations for daily weather
type WeatherRepository struct {
	db *sql.DB
}

// NewWeatherRepository creates a new weather repository
func NewWeatherRepository(db *sql.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// ReplaceAll replaces every stored observation
func (r *WeatherRepository) ReplaceAll(ctx context.Context, obs []models.WeatherObservation) error {
	return replaceAll(ctx, r.db, "weather", weatherColumns, len(obs), func(i int) []interface{} {
		o := obs[i]
		return []interface{}{o.Date, o.MeanTemp, o.TotalRain, o.TotalSnow, o.MaxGust, o.GustType, o.CityID}
	})
}

// GetWeather retrieves observations in date order with filtering and pagination
func (r *WeatherRepository) GetWeather(ctx context.Context, filter models.WeatherFilter) ([]models.WeatherObservation, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.To)
	}
	if filter.GustType != "" {
		conditions = append(conditions, "gust_type = ?")
		args = append(args, filter.GustType)
	}

	w := where(conditions)
	total, err := count(ctx, r.db, "weather", w, args)
	if err != nil {
		return nil, 0, err
	}

	offset := paginate(&filter.Page, &filter.PageSize)
	query := `SELECT date, mean_temp, total_rain, total_snow, max_gust, gust_type, city_id
		FROM weather` + w + " ORDER BY date LIMIT ? OFFSET ?"

	rows, err := r.db.QueryContext(ctx, query, append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query weather: %w", err)
	}
	defer rows.Close()

	var out []models.WeatherObservation
	for rows.Next() {
		var o models.WeatherObservation
		if err := rows.Scan(&o.Date, &o.MeanTemp, &o.TotalRain, &o.TotalSnow, &o.MaxGust, &o.GustType, &o.CityID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan weather: %w", err)
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}
