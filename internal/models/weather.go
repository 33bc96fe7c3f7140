package models

// WeatherObservation represents one day of weather at the reference station
type WeatherObservation struct {
	Date      Date    `json:"date" csv:"date" db:"date"`
	MeanTemp  Measure `json:"mean_temp" csv:"mean_temp" db:"mean_temp"`    // °C
	TotalRain Measure `json:"total_rain" csv:"total_rain" db:"total_rain"` // mm
	TotalSnow Measure `json:"total_snow" csv:"total_snow" db:"total_snow"` // cm
	MaxGust   Measure `json:"max_gust" csv:"max_gust" db:"max_gust"`       // km/h, floored at 29
	GustType  string  `json:"gust_type" csv:"gust_type" db:"gust_type"`    // empty when max_gust is null
	CityID    int     `json:"city_id" csv:"city_id" db:"city_id"`
}

// Gust categories, ascending
const (
	GustModerate  = "Moderate"
	GustBreezy    = "Breezy"
	GustGaley     = "Galey"
	GustStormy    = "Stormy"
	GustHurricane = "Hurricane"
)

// WeatherFilter represents filter parameters for querying weather
type WeatherFilter struct {
	From     string `form:"from"` // YYYY-MM-DD
	To       string `form:"to"`   // YYYY-MM-DD
	GustType string `form:"gustType"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
