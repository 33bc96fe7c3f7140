package pipeline

import (
	"github.com/jengzang/civic-etl-go/internal/config"
	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/spatial"
)

// State carries results between the stages of one run
type State struct {
	cfg    *config.Config
	layout Layout
	store  *Store

	wards     []models.Ward
	wardIndex *spatial.ZoneIndex
	trips     []models.Trip
}

// Dataset names
const (
	DatasetWards         = "wards"
	DatasetNeighborhoods = "neighborhoods"
	DatasetPopulation    = "population"
	DatasetWeather       = "weather"
	DatasetTrips         = "trips"
	DatasetAccidents     = "accidents"
	DatasetStations      = "stations"
)

func init() {
	Register(wardsStage{})
	Register(neighborhoodsStage{})
	Register(populationStage{})
	Register(weatherStage{})
	Register(tripsStage{})
	Register(accidentsStage{})
	Register(stationsStage{})
}
