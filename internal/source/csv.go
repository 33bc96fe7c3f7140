package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jengzang/civic-etl-go/internal/table"
)

const bom = "\uFEFF"

// ReadCSV loads a whole CSV file into a table, first row as header
func ReadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// DecodeCSV reads CSV records into a table. Ragged rows are padded or
// truncated to the header width and a UTF-8 byte order mark is dropped.
func DecodeCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	t := table.New(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			record = record[:len(header)]
		}
		t.Append(record...)
	}
	return t, nil
}

// File is a raw source file with the year its name encodes
type File struct {
	Path string
	Year int
}

// "2017-Q1.csv" and "Bike share ridership 2020-01.csv"
var (
	quarterlyName = regexp.MustCompile(`^(\d{4})-Q\d`)
	monthlyName   = regexp.MustCompile(`(\d{4})-\d{2}\.csv$`)
)

// TripFiles lists the CSV files under dir in name order with the year taken
// from either the quarterly or the monthly naming pattern. Files matching
// neither are an error.
func TripFiles(dir string) ([]File, error) {
	paths, err := sortedCSV(dir)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		m := quarterlyName.FindStringSubmatch(name)
		if m == nil {
			m = monthlyName.FindStringSubmatch(name)
		}
		if m == nil {
			return nil, fmt.Errorf("cannot derive year from trip file %q", name)
		}
		year, _ := strconv.Atoi(m[1])
		files = append(files, File{Path: p, Year: year})
	}
	return files, nil
}

// WeatherFiles lists the monthly weather exports under dir and keeps every
// 12th one in name order: each monthly export holds the whole year.
func WeatherFiles(dir string) ([]string, error) {
	paths, err := sortedCSV(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for i, p := range paths {
		if i%12 == 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func sortedCSV(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
