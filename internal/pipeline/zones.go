package pipeline

import (
	"context"
	"fmt"

	"github.com/jengzang/civic-etl-go/internal/clean"
	"github.com/jengzang/civic-etl-go/internal/output"
	"github.com/jengzang/civic-etl-go/internal/schema"
	"github.com/jengzang/civic-etl-go/internal/source"
	"github.com/jengzang/civic-etl-go/internal/spatial"
)

type wardsStage struct{}

func (wardsStage) Name() string      { return DatasetWards }
func (wardsStage) Depends() []string { return nil }

// Run cleans the ward layer, attaches the census profile and builds the ward
// index used by the point joins
func (wardsStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	raw, err := source.ReadZones(s.layout.Raw(s.layout.WardsFile))
	if err != nil {
		return nil, err
	}
	t, err := schema.Normalize(raw, schema.WardSchema, schema.EpochDefault)
	if err != nil {
		return nil, err
	}
	wards, report := clean.CleanWards(t, s.cfg.CityID)

	pop, err := readCensus(s.layout.Raw(s.layout.WardPopulationBook), func(rows [][]string) (map[int64]int, error) {
		return clean.WardPopulation(rows, s.cfg.PopHeaderRow)
	})
	if err != nil {
		return report, err
	}
	area, err := readCensus(s.layout.Raw(s.layout.WardAreaBook), func(rows [][]string) (map[int64]float64, error) {
		return clean.WardAreas(rows, s.cfg.AreaHeaderRow)
	})
	if err != nil {
		return report, err
	}
	income, err := readCensus(s.layout.Raw(s.layout.WardIncomeBook), func(rows [][]string) (map[int64]string, error) {
		return clean.MedianIncome(rows, s.cfg.IncomeHeaderRow, s.cfg.IncomeDropRow)
	})
	if err != nil {
		return report, err
	}

	wards, census := clean.AttachCensus(wards, pop, area, income)
	report.Merge(census)

	idx, err := spatial.NewZoneIndex(spatial.WardZones(wards))
	if err != nil {
		return report, fmt.Errorf("failed to index wards: %w", err)
	}
	s.wards, s.wardIndex = wards, idx

	if err := output.WriteCSV(s.layout.Out(output.WardsFile), wards); err != nil {
		return report, err
	}
	if err := output.WriteGeoJSON(s.layout.Out(output.WardsGeoJSONFile), output.WardFeatures(wards)); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Zones.ReplaceWards(ctx, wards); err != nil {
			return report, err
		}
	}
	return report, nil
}

func readCensus[T any](path string, parse func([][]string) (T, error)) (T, error) {
	var zero T
	rows, err := source.ReadSheet(path, "")
	if err != nil {
		return zero, err
	}
	v, err := parse(rows)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

type neighborhoodsStage struct{}

func (neighborhoodsStage) Name() string      { return DatasetNeighborhoods }
func (neighborhoodsStage) Depends() []string { return nil }

func (neighborhoodsStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	raw, err := source.ReadZones(s.layout.Raw(s.layout.NeighborhoodsFile))
	if err != nil {
		return nil, err
	}
	t, err := schema.Normalize(raw, schema.NeighborhoodSchema, schema.EpochDefault)
	if err != nil {
		return nil, err
	}
	hoods, report := clean.CleanNeighborhoods(t, s.cfg.CityID)

	if err := output.WriteGeoJSON(s.layout.Out(output.NeighborhoodsFile), output.NeighborhoodFeatures(hoods)); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Zones.ReplaceNeighborhoods(ctx, hoods); err != nil {
			return report, err
		}
	}
	return report, nil
}

type populationStage struct{}

func (populationStage) Name() string      { return DatasetPopulation }
func (populationStage) Depends() []string { return nil }

func (populationStage) Run(ctx context.Context, s *State) (*clean.Report, error) {
	raw, err := source.ReadCSV(s.layout.Raw(s.layout.PopulationFile))
	if err != nil {
		return nil, err
	}
	t, err := schema.Normalize(raw, schema.PopulationSchema, schema.EpochDefault)
	if err != nil {
		return nil, err
	}
	pop, report := clean.CleanPopulation(t)

	if err := output.WriteCSV(s.layout.Out(output.PopulationFile), pop); err != nil {
		return report, err
	}
	if s.store != nil {
		if err := s.store.Zones.ReplacePopulation(ctx, pop); err != nil {
			return report, err
		}
	}
	return report, nil
}
