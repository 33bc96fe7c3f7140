package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jengzang/civic-etl-go/internal/logger"
	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/pipeline"
	"github.com/jengzang/civic-etl-go/internal/repository"
)

// RunService lists pipeline runs and starts new ones
type RunService struct {
	repo   *repository.RunRepository
	engine *pipeline.Engine
	log    zerolog.Logger
}

// NewRunService creates a new run service
func NewRunService(repo *repository.RunRepository, engine *pipeline.Engine) *RunService {
	return &RunService{repo: repo, engine: engine, log: logger.Component("runs")}
}

// GetRuns retrieves runs with filtering and pagination
func (s *RunService) GetRuns(ctx context.Context, filter models.RunFilter) ([]models.Run, int64, error) {
	return s.repo.GetRuns(ctx, filter)
}

// GetRun retrieves a single run
func (s *RunService) GetRun(ctx context.Context, id string) (*models.Run, error) {
	return s.repo.GetByID(ctx, id)
}

// Start validates the datasets and runs the pipeline in the background. It
// returns the resolved datasets in execution order.
func (s *RunService) Start(datasets []string) ([]string, error) {
	stages, err := pipeline.Resolve(datasets)
	if err != nil {
		return nil, err
	}
	if s.engine.Busy() {
		return nil, pipeline.ErrRunInProgress
	}

	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.Name()
	}

	go func() {
		runs, err := s.engine.Run(context.Background(), datasets...)
		if errors.Is(err, pipeline.ErrRunInProgress) {
			s.log.Warn().Strs("datasets", names).Msg("run skipped, another run started first")
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int("stages", len(runs)).Msg("pipeline run failed")
			return
		}
		s.log.Info().Int("stages", len(runs)).Msg("pipeline run completed")
	}()

	return names, nil
}
