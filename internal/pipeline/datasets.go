package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jengzang/civic-etl-go/internal/clean"
	"github.com/jengzang/civic-etl-go/internal/output"
	"github.com/jengzang/civic-etl-go/internal/reconcile"
	"github.com/jengzang/civic-etl-go/internal/schema"
	"github.com/jengzang/civic-etl-go/internal/source"
	"github.com/jengzang/civic-etl-go/internal/spatial"
)

type weatherStage struct{}

func (weatherStage) Name() string      { return DatasetWeather }
func (weatherStage) Depends() []string { return nil }

func (weatherStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	dir := s.layout.Raw(s.layout.WeatherDir)
	paths, err := source.WeatherFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no weather exports in %s", dir)
	}

	parts := make([]schema.Part, 0, len(paths))
	for _, p := range paths {
		t, err := source.ReadCSV(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, schema.Part{Name: filepath.Base(p), Epoch: schema.EpochDefault, Table: t})
	}
	t, err := schema.NormalizeAll(parts, schema.WeatherSchema)
	if err != nil {
		return nil, err
	}
	obs, report := clean.CleanWeather(t, s.cfg.CityID)

	if err := output.WriteCSV(s.layout.Out(output.WeatherFile), obs); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Weather.ReplaceAll(ctx, obs); err != nil {
			return report, err
		}
	}
	return report, nil
}

type tripsStage struct{}

func (tripsStage) Name() string      { return DatasetTrips }
func (tripsStage) Depends() []string { return nil }

// Run concatenates every ridership export, each normalized with the layout of
// the year its file name encodes
func (tripsStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	var parts []schema.Part
	for _, dir := range s.layout.TripDirs {
		files, err := source.TripFiles(s.layout.Raw(dir))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			t, err := source.ReadCSV(f.Path)
			if err != nil {
				return nil, err
			}
			parts = append(parts, schema.Part{
				Name:  filepath.Base(f.Path),
				Epoch: schema.TripEpochForYear(f.Year, s.cfg.TripSchemaCutoff),
				Table: t,
			})
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no trip exports under %s", s.layout.DataDir)
	}

	t, err := schema.NormalizeAll(parts, schema.TripSchema)
	if err != nil {
		return nil, err
	}
	trips, report := clean.CleanTrips(t)
	s.trips = trips

	if err := output.WriteTrips(s.layout.Out(output.TripsFile), trips); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Trips.ReplaceAll(ctx, trips); err != nil {
			return report, err
		}
	}
	return report, nil
}

type accidentsStage struct{}

func (accidentsStage) Name() string      { return DatasetAccidents }
func (accidentsStage) Depends() []string { return []string{DatasetWards} }

func (accidentsStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	raw, err := source.ReadCSV(s.layout.Raw(s.layout.AccidentsFile))
	if err != nil {
		return nil, err
	}
	t, err := schema.Normalize(raw, schema.AccidentSchema, schema.EpochDefault)
	if err != nil {
		return nil, err
	}
	records, report := clean.CleanAccidents(t)
	records = spatial.JoinPoints(records, s.wardIndex, spatial.AccidentCoords, spatial.AssignAccidentWard)

	if err := output.WriteCSV(s.layout.Out(output.AccidentsFile), records); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Accidents.ReplaceAll(ctx, records); err != nil {
			return report, err
		}
	}
	return report, nil
}

type stationsStage struct{}

func (stationsStage) Name() string      { return DatasetStations }
func (stationsStage) Depends() []string { return []string{DatasetWards, DatasetTrips} }

// Run joins stations to wards and keeps those some trip used, dated by
// their first use
func (stationsStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	f, err := os.Open(s.layout.Raw(s.layout.StationsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open station payload: %w", err)
	}
	defer f.Close()

	raw, err := source.ReadStationPayload(f)
	if err != nil {
		return nil, err
	}
	t, err := schema.Normalize(raw, schema.StationSchema, schema.EpochDefault)
	if err != nil {
		return nil, err
	}
	stations, report := clean.CleanStations(t)
	stations = spatial.JoinPoints(stations, s.wardIndex, spatial.StationCoords, spatial.AssignStationWard)

	stations, firstUse := reconcile.FirstUse(stations, s.trips)
	report.Merge(firstUse)
	report.RowsOut = len(stations)

	if err := output.WriteCSV(s.layout.Out(output.StationsFile), stations); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Stations.ReplaceAll(ctx, stations); err != nil {
			return report, err
		}
	}
	return report, nil
}
