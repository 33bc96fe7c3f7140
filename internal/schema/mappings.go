package schema

// Mapping tables for every raw source. Schema drift fixes belong here.

var tripColumns = []string{
	"trip_id", "user_type", "start_station_id", "start_time", "end_station_id", "end_time", "bike_id",
}

// TripSchema covers the 2017-2018 quarterly files (legacy) and the 2019+ files (current)
var TripSchema = Schema{
	Entity:   "trips",
	Columns:  tripColumns,
	Required: tripColumns,
	Epochs: map[Epoch]EpochMapping{
		EpochLegacy: {
			Drop: []string{"from_station_name", "to_station_name", "trip_duration_seconds"},
			Rename: map[string]string{
				"trip_id":         "trip_id",
				"from_station_id": "start_station_id",
				"trip_start_time": "start_time",
				"trip_stop_time":  "end_time",
				"to_station_id":   "end_station_id",
				"user_type":       "user_type",
			},
			// bike ids were not recorded before 2019
			Fill: map[string]string{"bike_id": "0"},
		},
		EpochCurrent: {
			Drop: []string{"Start Station Name", "End Station Name", "Trip  Duration", "Trip Duration"},
			Rename: map[string]string{
				"Trip Id":          "trip_id",
				"Start Station Id": "start_station_id",
				"Start Time":       "start_time",
				"End Station Id":   "end_station_id",
				"End Time":         "end_time",
				"User Type":        "user_type",
				"Bike Id":          "bike_id",
			},
			// early 2019 quarters shipped without a bike id column
			Fill: map[string]string{"bike_id": "0"},
		},
	},
}

// WeatherSchema covers the daily climate bulk-download CSV
var WeatherSchema = Schema{
	Entity:   "weather",
	Columns:  []string{"date", "mean_temp", "total_rain", "total_snow", "max_gust"},
	Required: []string{"date", "mean_temp", "total_rain", "total_snow", "max_gust"},
	Epochs: map[Epoch]EpochMapping{
		EpochDefault: {
			Rename: map[string]string{
				"Date/Time":              "date",
				"Mean Temp (°C)":         "mean_temp",
				"Total Rain (mm)":        "total_rain",
				"Total Snow (cm)":        "total_snow",
				"Spd of Max Gust (km/h)": "max_gust",
			},
		},
	},
}

// AccidentSchema covers the police collision dataset (upper-case columns)
var AccidentSchema = Schema{
	Entity: "accidents",
	Columns: []string{
		"year", "date", "latitude", "longitude", "light", "acclass",
		"invtype", "injury", "cyclistype", "cycact",
	},
	Required: []string{"year", "date", "latitude", "longitude", "acclass", "injury"},
	Epochs: map[Epoch]EpochMapping{
		EpochDefault: {
			Rename: map[string]string{
				"YEAR":       "year",
				"DATE":       "date",
				"LATITUDE":   "latitude",
				"LONGITUDE":  "longitude",
				"LIGHT":      "light",
				"ACCLASS":    "acclass",
				"INVTYPE":    "invtype",
				"INJURY":     "injury",
				"CYCLISTYPE": "cyclistype",
				"CYCACT":     "cycact",
			},
			Fill: map[string]string{"light": "", "invtype": "", "cyclistype": "", "cycact": ""},
		},
	},
}

var areaDrop = []string{
	"AREA_ATTR_ID", "_id", "AREA_LONG_CODE", "AREA_DESC", "CLASSIFICATION", "CLASSIFICATION_CODE",
}

// NeighborhoodSchema covers the neighbourhood boundary layer
var NeighborhoodSchema = Schema{
	Entity:   "neighborhoods",
	Columns:  []string{"neighborhood_id", "area_name", "geometry"},
	Required: []string{"neighborhood_id", "area_name", "geometry"},
	Epochs: map[Epoch]EpochMapping{
		EpochDefault: {
			Drop: areaDrop,
			Rename: map[string]string{
				"AREA_SHORT_CODE": "neighborhood_id",
				"AREA_NAME":       "area_name",
				"PARENT_AREA_ID":  "city_id",
			},
		},
	},
}

// WardSchema covers the 25-ward boundary layer
var WardSchema = Schema{
	Entity:   "wards",
	Columns:  []string{"ward_id", "ward_name", "geometry"},
	Required: []string{"ward_id", "ward_name", "geometry"},
	Epochs: map[Epoch]EpochMapping{
		EpochDefault: {
			Drop: areaDrop,
			Rename: map[string]string{
				"AREA_SHORT_CODE": "ward_id",
				"AREA_NAME":       "ward_name",
				"PARENT_AREA_ID":  "city_id",
			},
		},
	},
}

// StationSchema covers the station_information feed flattened to a table
var StationSchema = Schema{
	Entity:   "stations",
	Columns:  []string{"station_id", "name", "lat", "lon", "address", "capacity", "rental_methods"},
	Required: []string{"station_id", "name", "lat", "lon", "capacity", "rental_methods"},
	Epochs: map[Epoch]EpochMapping{
		EpochDefault: {
			Drop: []string{"nearby_distance", "_ride_code_support", "is_charging_station"},
			Fill: map[string]string{"address": ""},
		},
	},
}

// PopulationSchema covers the neighbourhood census population table
var PopulationSchema = Schema{
	Entity:   "population",
	Columns:  []string{"neighborhood_id", "total_population"},
	Required: []string{"neighborhood_id", "total_population"},
	Epochs: map[Epoch]EpochMapping{
		EpochDefault: {
			Drop: []string{"Neighbourhood"},
			Rename: map[string]string{
				"Neighbourhood Id": "neighborhood_id",
				"Total Population": "total_population",
			},
		},
	},
}
