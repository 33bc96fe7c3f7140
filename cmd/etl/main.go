package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jengzang/civic-etl-go/internal/config"
	"github.com/jengzang/civic-etl-go/internal/database"
	"github.com/jengzang/civic-etl-go/internal/fetch"
	"github.com/jengzang/civic-etl-go/internal/logger"
	"github.com/jengzang/civic-etl-go/internal/pipeline"
)

var (
	cfg *config.Config

	dataDir   string
	outputDir string
	noDB      bool

	weatherStation int
	startYear      int
	endYear        int
)

var rootCmd = &cobra.Command{
	Use:           "civic-etl",
	Short:         "Ingest, clean and join the city's open datasets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if err := logger.Setup(cfg.LogLevel); err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [dataset...]",
	Short: "Run the pipeline for some datasets, or all of them",
	Long: fmt.Sprintf(`Run the pipeline for the named datasets and the datasets they depend on.
With no arguments every dataset runs. Datasets: %v`, pipeline.Datasets()),
	RunE: func(cmd *cobra.Command, args []string) error {
		var store *pipeline.Store
		if !noDB {
			if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()
			store = pipeline.NewStore(database.GetDB())
		}

		engine := pipeline.NewEngine(cfg, pipeline.DefaultLayout(cfg.DataDir, cfg.OutputDir), store)
		runs, err := engine.Run(cmd.Context(), args...)
		for _, r := range runs {
			log.Info().
				Str("dataset", r.Dataset).
				Str("status", r.Status).
				Int("rows_in", r.RowsIn).
				Int("rows_out", r.RowsOut).
				Msg("run summary")
		}
		return err
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download raw source data",
}

var fetchStationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Download the bike share station feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := pipeline.DefaultLayout(cfg.DataDir, cfg.OutputDir)
		path := layout.Raw(layout.StationsFile)
		if err := newClient().SaveStations(cmd.Context(), path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("station feed saved")
		return nil
	},
}

var fetchWeatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Download daily weather exports for a range of years",
	RunE: func(cmd *cobra.Command, args []string) error {
		station, from, to := cfg.WeatherStationID, cfg.WeatherStartYear, cfg.WeatherEndYear
		if cmd.Flags().Changed("station") {
			station = weatherStation
		}
		if cmd.Flags().Changed("start-year") {
			from = startYear
		}
		if cmd.Flags().Changed("end-year") {
			to = endYear
		}
		if to < from {
			return fmt.Errorf("end year %d is before start year %d", to, from)
		}

		layout := pipeline.DefaultLayout(cfg.DataDir, cfg.OutputDir)
		_, err := newClient().SaveWeather(cmd.Context(), layout.Raw(layout.WeatherDir), station, from, to)
		return err
	},
}

func newClient() *fetch.Client {
	return fetch.NewClient(fetch.Options{
		StationInfoURL: cfg.StationInfoURL,
		WeatherURL:     cfg.WeatherURL,
		Timeout:        cfg.FetchTimeout,
		RPS:            cfg.FetchRPS,
		MaxRetries:     cfg.FetchMaxRetries,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "raw data directory (default from DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "processed output directory (default from OUTPUT_DIR)")

	runCmd.Flags().BoolVar(&noDB, "no-db", false, "write output files only, skip the database")

	fetchWeatherCmd.Flags().IntVar(&weatherStation, "station", 0, "climate station id (default from WEATHER_STATION_ID)")
	fetchWeatherCmd.Flags().IntVar(&startYear, "start-year", 0, "first year (default from WEATHER_START_YEAR)")
	fetchWeatherCmd.Flags().IntVar(&endYear, "end-year", 0, "last year (default from WEATHER_END_YEAR)")

	fetchCmd.AddCommand(fetchStationsCmd, fetchWeatherCmd)
	rootCmd.AddCommand(runCmd, fetchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		stop()
		os.Exit(1)
	}
}
