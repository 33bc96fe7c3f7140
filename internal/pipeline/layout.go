package pipeline

import "path/filepath"

// Layout names the raw inputs under the data directory
type Layout struct {
	DataDir   string
	OutputDir string

	StationsFile      string   // raw station_information payload
	TripDirs          []string // quarterly and monthly ridership exports
	WeatherDir        string
	AccidentsFile     string
	WardsFile         string
	NeighborhoodsFile string
	PopulationFile    string

	// ward census workbooks
	WardPopulationBook string
	WardAreaBook       string
	WardIncomeBook     string
}

// DefaultLayout is the directory layout the fetch commands and the open data
// downloads produce
func DefaultLayout(dataDir, outputDir string) Layout {
	return Layout{
		DataDir:            dataDir,
		OutputDir:          outputDir,
		StationsFile:       "station_information.json",
		TripDirs:           []string{"bikeshare_trip-data_2017-2019", "bikeshare_trip-data_2020-2022"},
		WeatherDir:         "toronto_weather",
		AccidentsFile:      "cyclists.csv",
		WardsFile:          "wards.geojson",
		NeighborhoodsFile:  "neighbourhoods.geojson",
		PopulationFile:     "neighbourhood_population.csv",
		WardPopulationBook: "2018-ward-profiles-2011-2016-census-25-ward-model-data.xlsx",
		WardAreaBook:       "2018-ward-profiles-25-ward-model-geographic-areas.xlsx",
		WardIncomeBook:     "2018-ward-profiles-2011-2016-census-25-ward-model-income.xlsx",
	}
}

// Raw returns the path of a raw input
func (l Layout) Raw(name string) string {
	return filepath.Join(l.DataDir, name)
}

// Out returns the path of a processed output
func (l Layout) Out(name string) string {
	return filepath.Join(l.OutputDir, name)
}
