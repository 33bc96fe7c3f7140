package pipeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jengzang/civic-etl-go/internal/clean"
	"github.com/jengzang/civic-etl-go/internal/config"
	"github.com/jengzang/civic-etl-go/internal/logger"
	"github.com/jengzang/civic-etl-go/internal/metrics"
	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/repository"
	"github.com/jengzang/civic-etl-go/internal/schema"
)

var (
	// ErrUnknownDataset is returned for a dataset name with no registered stage
	ErrUnknownDataset = errors.New("unknown dataset")
	// ErrRunInProgress is returned when a run is requested while another is active
	ErrRunInProgress = errors.New("a pipeline run is already in progress")
)

// Stage is one dataset's transform: read raw files, normalize, clean, join,
// reconcile, then write and persist the processed table.
type Stage interface {
	// Name is the dataset name used on the command line and in run records
	Name() string
	// Depends lists the datasets whose results this stage reads from State
	Depends() []string
	// Run processes the dataset and returns its quality report
	Run(ctx context.Context, s *State) (*clean.Report, error)
}

var registry = make(map[string]Stage)

// Register adds a stage under its name
func Register(s Stage) {
	registry[s.Name()] = s
}

// Datasets returns every registered dataset name in execution order
func Datasets() []string {
	stages, _ := Resolve(nil)
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}

// Resolve expands the requested datasets with their dependencies and returns
// the stages in an order where every dependency runs first. An empty request
// selects every dataset.
func Resolve(names []string) ([]Stage, error) {
	if len(names) == 0 {
		for name := range registry {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	var ordered []Stage
	state := make(map[string]int) // 1 visiting, 2 done
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case 1:
			return fmt.Errorf("dependency cycle at %q", name)
		case 2:
			return nil
		}
		st, ok := registry[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDataset, name)
		}
		state[name] = 1
		for _, dep := range st.Depends() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = 2
		ordered = append(ordered, st)
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// Store groups the repositories processed tables are persisted to
type Store struct {
	Stations  *repository.StationRepository
	Trips     *repository.TripRepository
	Weather   *repository.WeatherRepository
	Accidents *repository.AccidentRepository
	Zones     *repository.ZoneRepository
	Runs      *repository.RunRepository
}

// NewStore creates every repository over one connection
func NewStore(db *sql.DB) *Store {
	return &Store{
		Stations:  repository.NewStationRepository(db),
		Trips:     repository.NewTripRepository(db),
		Weather:   repository.NewWeatherRepository(db),
		Accidents: repository.NewAccidentRepository(db),
		Zones:     repository.NewZoneRepository(db),
		Runs:      repository.NewRunRepository(db),
	}
}

// Engine runs stages one at a time and records each as a Run
type Engine struct {
	cfg    *config.Config
	layout Layout
	store  *Store
	mu     sync.Mutex
	log    zerolog.Logger
}

// NewEngine creates an engine. A nil store writes output files only.
func NewEngine(cfg *config.Config, layout Layout, store *Store) *Engine {
	return &Engine{
		cfg:    cfg,
		layout: layout,
		store:  store,
		log:    logger.Component("pipeline"),
	}
}

// Run executes the requested datasets and their dependencies. It stops at the
// first failing stage and returns the runs recorded so far. Only one Run
// executes at a time; a concurrent call gets ErrRunInProgress.
func (e *Engine) Run(ctx context.Context, datasets ...string) ([]models.Run, error) {
	stages, err := Resolve(datasets)
	if err != nil {
		return nil, err
	}

	if !e.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer e.mu.Unlock()

	state := &State{cfg: e.cfg, layout: e.layout, store: e.store}
	runs := make([]models.Run, 0, len(stages))
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return runs, err
		}
		run, err := e.runStage(ctx, st, state)
		runs = append(runs, run)
		if err != nil {
			return runs, fmt.Errorf("dataset %s: %w", st.Name(), err)
		}
	}
	return runs, nil
}

// Busy reports whether a run is executing
func (e *Engine) Busy() bool {
	if e.mu.TryLock() {
		e.mu.Unlock()
		return false
	}
	return true
}

func (e *Engine) runStage(ctx context.Context, st Stage, state *State) (models.Run, error) {
	run := models.Run{
		ID:        uuid.NewString(),
		Dataset:   st.Name(),
		Status:    models.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if e.store != nil {
		if err := e.store.Runs.Create(ctx, &run); err != nil {
			return run, err
		}
	}

	e.log.Info().Str("dataset", run.Dataset).Str("run_id", run.ID).Msg("stage started")
	report, err := st.Run(ctx, state)

	finished := time.Now()
	run.FinishedAt = &finished
	if report != nil {
		run.RowsIn = report.RowsIn
		run.RowsOut = report.RowsOut
		if data, jerr := json.Marshal(report.Dropped); jerr == nil {
			run.DroppedJSON = string(data)
		}
		metrics.ObserveReport(report)
	}

	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()

		ev := e.log.Error().Err(err).Str("dataset", run.Dataset)
		var cfgErr *schema.ConfigError
		if errors.As(err, &cfgErr) {
			ev = ev.Strs("missing_columns", cfgErr.Missing)
		}
		ev.Msg("stage failed")
	} else {
		run.Status = models.RunStatusCompleted
		e.logReport(report)
	}
	metrics.ObserveRun(run.Dataset, run.Status, finished.Sub(run.StartedAt))

	if e.store != nil {
		// record the outcome even when the caller's context is gone
		if ferr := e.store.Runs.Finish(context.WithoutCancel(ctx), &run); ferr != nil && err == nil {
			err = ferr
		}
	}
	return run, err
}

func (e *Engine) logReport(r *clean.Report) {
	if r == nil {
		return
	}
	ev := e.log.Info().
		Str("dataset", r.Dataset).
		Int("rows_in", r.RowsIn).
		Int("rows_out", r.RowsOut).
		Int("rows_dropped", r.DroppedTotal())
	if len(r.Dropped) > 0 {
		ev = ev.Interface("dropped", r.Dropped)
	}
	if len(r.Fixed) > 0 {
		ev = ev.Interface("fixed", r.Fixed)
	}
	ev.Msg("stage completed")

	for _, rule := range r.Rules() {
		e.log.Warn().Str("dataset", r.Dataset).Str("rule", rule).Int("rows", r.Dropped[rule]).Msg("rows dropped")
	}
}
