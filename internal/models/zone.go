package models

import "github.com/paulmach/orb"

// Ward represents a municipal ward with its boundary and census profile
type Ward struct {
	ID                    int64   `json:"ward_id" csv:"ward_id" db:"ward_id"`
	Name                  string  `json:"ward_name" csv:"ward_name" db:"ward_name"`
	Population            int     `json:"population" csv:"population" db:"population"`
	AreaKm2               float64 `json:"area" csv:"area" db:"area"`
	MedianHouseholdIncome string  `json:"median_household_income" csv:"median_household_income" db:"median_household_income"` // income bracket label
	CityID                int     `json:"city_id" csv:"city_id" db:"city_id"`

	Boundary orb.MultiPolygon `json:"-" csv:"-" db:"-"`
}

// Neighborhood represents a neighbourhood boundary
type Neighborhood struct {
	ID     int64  `json:"neighborhood_id" csv:"neighborhood_id" db:"neighborhood_id"`
	Name   string `json:"area_name" csv:"area_name" db:"area_name"`
	CityID int    `json:"city_id" csv:"city_id" db:"city_id"`

	Boundary orb.MultiPolygon `json:"-" csv:"-" db:"-"`
}

// NeighborhoodPopulation is one census population count
type NeighborhoodPopulation struct {
	NeighborhoodID  int64 `json:"neighborhood_id" csv:"neighborhood_id" db:"neighborhood_id"`
	TotalPopulation int   `json:"total_population" csv:"total_population" db:"total_population"`
	Year            int   `json:"year" csv:"year" db:"year"`
}

// CensusYear is the census the ward and neighbourhood profiles come from
const CensusYear = 2016
