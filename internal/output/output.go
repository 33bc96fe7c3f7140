package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/civic-etl-go/internal/models"
)

// Processed file names under the output directory
const (
	StationsFile      = "bikeshare_stations.csv"
	TripsFile         = "bikeshare_trips.csv"
	WeatherFile       = "toronto_weather.csv"
	AccidentsFile     = "toronto_cycling_accidents.csv"
	WardsFile         = "toronto_wards.csv"
	WardsGeoJSONFile  = "toronto_wards.geojson"
	NeighborhoodsFile = "toronto_neighborhoods.geojson"
	PopulationFile    = "toronto_neighborhood_population.csv"
)

// WriteCSV writes a slice of csv-tagged structs, header first
func WriteCSV[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if records == nil {
		records = []T{}
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// WriteTrips writes trips in their CSV projection
func WriteTrips(path string, trips []models.Trip) error {
	rows := make([]models.TripRow, len(trips))
	for i, t := range trips {
		rows[i] = t.Row()
	}
	return WriteCSV(path, rows)
}

// WardFeatures builds one feature per ward carrying its census properties
func WardFeatures(wards []models.Ward) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, w := range wards {
		f := geojson.NewFeature(w.Boundary)
		f.Properties["ward_id"] = w.ID
		f.Properties["ward_name"] = w.Name
		f.Properties["population"] = w.Population
		f.Properties["area"] = w.AreaKm2
		f.Properties["median_household_income"] = w.MedianHouseholdIncome
		f.Properties["city_id"] = w.CityID
		fc.Append(f)
	}
	return fc
}

// NeighborhoodFeatures builds one feature per neighbourhood
func NeighborhoodFeatures(hoods []models.Neighborhood) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range hoods {
		f := geojson.NewFeature(n.Boundary)
		f.Properties["neighborhood_id"] = n.ID
		f.Properties["area_name"] = n.Name
		f.Properties["city_id"] = n.CityID
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes a feature collection
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
