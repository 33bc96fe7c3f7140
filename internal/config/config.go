package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	LogLevel  string

	// 数据目录
	DataDir   string
	OutputDir string
	CityID    int

	// 外部数据源
	StationInfoURL   string
	WeatherURL       string
	WeatherStationID int
	WeatherStartYear int
	WeatherEndYear   int
	FetchMaxRetries  uint64
	FetchRPS         float64
	FetchTimeout     time.Duration

	TripSchemaCutoff int
	ETLSchedule      string // cron 表达式，为空则不定时执行

	// 人口普查表头位置（从 0 开始）
	PopHeaderRow    int
	AreaHeaderRow   int
	IncomeHeaderRow int
	IncomeDropRow   int
}

// Load 加载配置，.env 中的值不会覆盖已有的环境变量
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/civic.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		DataDir:   getEnv("DATA_DIR", "./data/raw"),
		OutputDir: getEnv("OUTPUT_DIR", "./data/processed"),

		StationInfoURL: getEnv("STATION_INFO_URL", "https://tor.publicbikesystem.net/ube/gbfs/v1/en/station_information"),
		WeatherURL:     getEnv("WEATHER_URL", "https://climate.weather.gc.ca/climate_data/bulk_data_e.html"),
		ETLSchedule:    getEnv("ETL_SCHEDULE", ""),
	}

	var err error
	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"CITY_ID", 1, &cfg.CityID},
		{"WEATHER_STATION_ID", 51459, &cfg.WeatherStationID},
		{"WEATHER_START_YEAR", 2017, &cfg.WeatherStartYear},
		{"WEATHER_END_YEAR", 2020, &cfg.WeatherEndYear},
		{"TRIP_SCHEMA_CUTOFF", 2019, &cfg.TripSchemaCutoff},
		{"POP_HEADER_ROW", 17, &cfg.PopHeaderRow},
		{"AREA_HEADER_ROW", 11, &cfg.AreaHeaderRow},
		{"INCOME_HEADER_ROW", 17, &cfg.IncomeHeaderRow},
		{"INCOME_DROP_ROW", 15, &cfg.IncomeDropRow},
	}
	for _, v := range ints {
		if *v.dest, err = getInt(v.key, v.def); err != nil {
			return nil, err
		}
	}

	retries, err := getInt("FETCH_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	if retries < 0 {
		return nil, fmt.Errorf("FETCH_MAX_RETRIES must not be negative, got %d", retries)
	}
	cfg.FetchMaxRetries = uint64(retries)

	if cfg.FetchRPS, err = getFloat("FETCH_RPS", 2); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.WeatherEndYear < cfg.WeatherStartYear {
		return nil, fmt.Errorf("WEATHER_END_YEAR %d is before WEATHER_START_YEAR %d", cfg.WeatherEndYear, cfg.WeatherStartYear)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
