package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// ErrEmptyDataset is returned when a fallback lookup is requested but no
// historical rows exist anywhere.
var ErrEmptyDataset = errors.New("historical dataset is empty; run the collector or generate-sample-data to populate it")

// header is the persisted column order. It mirrors the Reading field set;
// derived training columns (hour, month, day_of_year) are never stored.
var header = []string{
	"timestamp", "city",
	"temperature", "feels_like", "temp_min", "temp_max",
	"pressure", "humidity", "wind_speed", "wind_deg", "clouds",
	"weather_main", "weather_description",
	"aqi", "pm2_5", "pm10", "co", "no2", "o3", "so2",
}

// Load reads the full dataset from path. A missing file is not an error: the
// dataset simply has zero rows.
func Load(path string) ([]weather.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]weather.Reading, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds rows to the dataset file, creating it (with a header) when
// absent. The store is append-only: existing rows are never rewritten.
func Append(path string, rows []weather.Reading) error {
	if len(rows) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return writeRows(f, rows, writeHeader)
}

// Write replaces the dataset file with the given rows.
func Write(path string, rows []weather.Reading) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	return writeRows(f, rows, true)
}

func writeRows(f *os.File, rows []weather.Reading, writeHeader bool) error {
	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, r := range rows {
		if err := w.Write(formatRow(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatRow(r weather.Reading) []string {
	return []string{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.City,
		formatFloat(r.Temperature),
		formatFloat(r.FeelsLike),
		formatFloat(r.TempMin),
		formatFloat(r.TempMax),
		formatFloat(r.Pressure),
		formatFloat(r.Humidity),
		formatFloat(r.WindSpeed),
		formatFloat(r.WindDeg),
		formatFloat(r.Clouds),
		r.WeatherMain,
		r.WeatherDescription,
		formatInt(r.AQI),
		formatFloat(r.PM25),
		formatFloat(r.PM10),
		formatFloat(r.CO),
		formatFloat(r.NO2),
		formatFloat(r.O3),
		formatFloat(r.SO2),
	}
}

func parseRow(rec []string) (weather.Reading, error) {
	if len(rec) != len(header) {
		return weather.Reading{}, fmt.Errorf("expected %d columns, got %d", len(header), len(rec))
	}

	ts, err := parseTimestamp(rec[0])
	if err != nil {
		return weather.Reading{}, err
	}

	return weather.Reading{
		Timestamp:          ts,
		City:               rec[1],
		Temperature:        parseFloat(rec[2]),
		FeelsLike:          parseFloat(rec[3]),
		TempMin:            parseFloat(rec[4]),
		TempMax:            parseFloat(rec[5]),
		Pressure:           parseFloat(rec[6]),
		Humidity:           parseFloat(rec[7]),
		WindSpeed:          parseFloat(rec[8]),
		WindDeg:            parseFloat(rec[9]),
		Clouds:             parseFloat(rec[10]),
		WeatherMain:        rec[11],
		WeatherDescription: rec[12],
		AQI:                parseInt(rec[13]),
		PM25:               parseFloat(rec[14]),
		PM10:               parseFloat(rec[15]),
		CO:                 parseFloat(rec[16]),
		NO2:                parseFloat(rec[17]),
		O3:                 parseFloat(rec[18]),
		SO2:                parseFloat(rec[19]),
	}, nil
}

// parseTimestamp accepts RFC3339 plus the space-separated layouts older
// collector versions wrote.
func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	// Some writers store integral columns as floats ("3.0").
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(v)
	return &n
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
