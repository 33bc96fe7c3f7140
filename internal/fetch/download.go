package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// SaveStations downloads the station feed to path
func (c *Client) SaveStations(ctx context.Context, path string) error {
	body, err := c.StationInformation(ctx)
	if err != nil {
		return err
	}
	return writeFile(path, body)
}

// SaveWeather downloads every month from startYear through endYear into dir,
// one file per month named by WeatherFileName. Months already on disk are
// skipped. It returns the paths written.
func (c *Client) SaveWeather(ctx context.Context, dir string, stationID, startYear, endYear int) ([]string, error) {
	var written []string
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			path := filepath.Join(dir, WeatherFileName(stationID, year, month))
			if _, err := os.Stat(path); err == nil {
				c.log.Debug().Str("path", path).Msg("weather month already downloaded")
				continue
			}

			body, err := c.WeatherMonth(ctx, stationID, year, month)
			if err != nil {
				return written, fmt.Errorf("weather %d-%02d: %w", year, month, err)
			}
			if err := writeFile(path, body); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	c.log.Info().Int("files", len(written)).Str("dir", dir).Msg("weather downloaded")
	return written, nil
}

// writeFile writes through a temp file so a failed download never leaves a
// partial file behind
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
