package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/schema"
	"github.com/jengzang/civic-etl-go/internal/stats"
)

// AreaColumn is the ward area header in the geographic areas workbook
const AreaColumn = "Area (sq km)"

var wardHeader = regexp.MustCompile(`^Ward\s+(\d+)$`)

func cell(rows [][]string, r, c int) string {
	if r < 0 || r >= len(rows) || c < 0 || c >= len(rows[r]) {
		return ""
	}
	return strings.TrimSpace(rows[r][c])
}

func parseCount(v string) (int64, error) {
	return ParseInt(strings.ReplaceAll(v, ",", ""), 64)
}

// wardColumns maps column positions to ward ids for every "Ward N" header
func wardColumns(rows [][]string, headerRow int, entity string) (map[int]int64, error) {
	cols := make(map[int]int64)
	if headerRow >= 0 && headerRow < len(rows) {
		for c := range rows[headerRow] {
			if m := wardHeader.FindStringSubmatch(cell(rows, headerRow, c)); m != nil {
				id, _ := strconv.ParseInt(m[1], 10, 64)
				cols[c] = id
			}
		}
	}
	if len(cols) == 0 {
		return nil, &schema.ConfigError{
			Entity:  entity,
			Epoch:   schema.Epoch(fmt.Sprintf("header_row_%d", headerRow)),
			Missing: []string{"Ward 1"},
		}
	}
	return cols, nil
}

// WardPopulation reads total population per ward from the census profile
// sheet. The header row must carry "Ward N" columns and the first row below it
// must be the total population row.
func WardPopulation(rows [][]string, headerRow int) (map[int64]int, error) {
	cols, err := wardColumns(rows, headerRow, "ward_population")
	if err != nil {
		return nil, err
	}

	r := headerRow + 1
	if !strings.Contains(strings.ToLower(cell(rows, r, 0)), "population") {
		return nil, &schema.ConfigError{
			Entity:  "ward_population",
			Epoch:   schema.Epoch(fmt.Sprintf("header_row_%d", headerRow)),
			Missing: []string{"Total Population"},
		}
	}

	out := make(map[int64]int, len(cols))
	for c, ward := range cols {
		n, err := parseCount(cell(rows, r, c))
		if err != nil {
			return nil, fmt.Errorf("ward %d population %q: %w", ward, cell(rows, r, c), err)
		}
		out[ward] = int(n)
	}
	return out, nil
}

// WardAreas reads the area of each ward in km². Wards are identified by a
// column whose header mentions "ward", or by row position when there is none.
func WardAreas(rows [][]string, headerRow int) (map[int64]float64, error) {
	areaCol, wardCol := -1, -1
	if headerRow >= 0 && headerRow < len(rows) {
		for c := range rows[headerRow] {
			h := cell(rows, headerRow, c)
			switch {
			case h == AreaColumn:
				areaCol = c
			case wardCol < 0 && strings.Contains(strings.ToLower(h), "ward"):
				wardCol = c
			}
		}
	}
	if areaCol < 0 {
		return nil, &schema.ConfigError{
			Entity:  "ward_area",
			Epoch:   schema.Epoch(fmt.Sprintf("header_row_%d", headerRow)),
			Missing: []string{AreaColumn},
		}
	}

	out := make(map[int64]float64)
	for r := headerRow + 1; r < len(rows); r++ {
		raw := cell(rows, r, areaCol)
		if raw == "" {
			break
		}
		area, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d area %q: %w", r, raw, err)
		}

		ward := int64(r - headerRow)
		if wardCol >= 0 {
			label := cell(rows, r, wardCol)
			if m := wardHeader.FindStringSubmatch(label); m != nil {
				label = m[1]
			}
			if ward, err = ParseInt(label, 64); err != nil {
				return nil, fmt.Errorf("row %d ward %q: %w", r, cell(rows, r, wardCol), err)
			}
		}
		out[ward] = area
	}
	return out, nil
}

// MedianIncome derives each ward's median household income bracket from the
// household counts per income bracket. dropRow is the zero-based data row
// (below the header) holding a subtotal, skipped when >= 0.
func MedianIncome(rows [][]string, headerRow, dropRow int) (map[int64]string, error) {
	cols, err := wardColumns(rows, headerRow, "ward_income")
	if err != nil {
		return nil, err
	}

	bins := make(map[int64][]stats.Bin, len(cols))
	for r := headerRow + 1; r < len(rows); r++ {
		if r-headerRow-1 == dropRow {
			continue
		}
		label := cell(rows, r, 0)
		if label == "" {
			continue
		}
		for c, ward := range cols {
			n, err := parseCount(cell(rows, r, c))
			if err != nil {
				return nil, fmt.Errorf("ward %d bracket %q count %q: %w", ward, label, cell(rows, r, c), err)
			}
			bins[ward] = append(bins[ward], stats.Bin{Label: label, Count: int(n)})
		}
	}

	out := make(map[int64]string, len(bins))
	for ward, b := range bins {
		if median, ok := stats.GroupedMedian(b); ok {
			out[ward] = median
		}
	}
	return out, nil
}

// AttachCensus returns a copy of the wards with population, area and median
// income filled in. Wards absent from a census table are counted, not dropped.
func AttachCensus(wards []models.Ward, population map[int64]int, area map[int64]float64, income map[int64]string) ([]models.Ward, *Report) {
	report := NewReport("ward_census")
	report.RowsIn = len(wards)

	out := make([]models.Ward, len(wards))
	for i, w := range wards {
		if v, ok := population[w.ID]; ok {
			w.Population = v
		} else {
			report.Fix("missing_population", 1)
		}
		if v, ok := area[w.ID]; ok {
			w.AreaKm2 = v
		} else {
			report.Fix("missing_area", 1)
		}
		if v, ok := income[w.ID]; ok {
			w.MedianHouseholdIncome = v
		} else {
			report.Fix("missing_income", 1)
		}
		out[i] = w
	}

	report.RowsOut = len(out)
	return out, report
}
