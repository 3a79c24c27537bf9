package training

import (
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// frame is the model-ready view of the historical dataset: numeric columns
// with missing values imputed by the column mean (computed over the whole
// dataset, not per city) and time features derived from the timestamp.
type frame struct {
	n       int
	columns map[string][]float64
	labels  []string // weather_main, "" when absent
}

var numericAccessors = []struct {
	name string
	get  func(weather.Reading) *float64
}{
	{"temperature", func(r weather.Reading) *float64 { return r.Temperature }},
	{"feels_like", func(r weather.Reading) *float64 { return r.FeelsLike }},
	{"temp_min", func(r weather.Reading) *float64 { return r.TempMin }},
	{"temp_max", func(r weather.Reading) *float64 { return r.TempMax }},
	{"pressure", func(r weather.Reading) *float64 { return r.Pressure }},
	{"humidity", func(r weather.Reading) *float64 { return r.Humidity }},
	{"wind_speed", func(r weather.Reading) *float64 { return r.WindSpeed }},
	{"wind_deg", func(r weather.Reading) *float64 { return r.WindDeg }},
	{"clouds", func(r weather.Reading) *float64 { return r.Clouds }},
	{"pm2_5", func(r weather.Reading) *float64 { return r.PM25 }},
	{"pm10", func(r weather.Reading) *float64 { return r.PM10 }},
	{"co", func(r weather.Reading) *float64 { return r.CO }},
	{"no2", func(r weather.Reading) *float64 { return r.NO2 }},
	{"o3", func(r weather.Reading) *float64 { return r.O3 }},
	{"so2", func(r weather.Reading) *float64 { return r.SO2 }},
}

func buildFrame(rows []weather.Reading) *frame {
	n := len(rows)
	f := &frame{
		n:       n,
		columns: make(map[string][]float64),
		labels:  make([]string, n),
	}

	for _, acc := range numericAccessors {
		f.columns[acc.name] = imputeColumn(rows, acc.get)
	}

	// AQI is stored as an integer tier but trains as a numeric column.
	f.columns["aqi"] = imputeColumn(rows, func(r weather.Reading) *float64 {
		if r.AQI == nil {
			return nil
		}
		v := float64(*r.AQI)
		return &v
	})

	hour := make([]float64, n)
	month := make([]float64, n)
	dayOfYear := make([]float64, n)
	for i, r := range rows {
		hour[i] = float64(r.Timestamp.Hour())
		month[i] = float64(r.Timestamp.Month())
		dayOfYear[i] = float64(r.Timestamp.YearDay())
		f.labels[i] = r.WeatherMain
	}
	f.columns["hour"] = hour
	f.columns["month"] = month
	f.columns["day_of_year"] = dayOfYear

	return f
}

// imputeColumn extracts one numeric column, replacing absent values with the
// column mean. A column with no present values at all becomes zeros.
func imputeColumn(rows []weather.Reading, get func(weather.Reading) *float64) []float64 {
	col := make([]float64, len(rows))
	present := make([]bool, len(rows))

	sum := 0.0
	count := 0
	for i, r := range rows {
		if v := get(r); v != nil {
			col[i] = *v
			present[i] = true
			sum += *v
			count++
		}
	}

	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}
	for i := range col {
		if !present[i] {
			col[i] = mean
		}
	}
	return col
}

// matrixAt assembles the feature matrix for the given columns and row indices.
func (f *frame) matrixAt(cols []string, idx []int) [][]float64 {
	X := make([][]float64, len(idx))
	for i, row := range idx {
		x := make([]float64, len(cols))
		for j, c := range cols {
			x[j] = f.columns[c][row]
		}
		X[i] = x
	}
	return X
}

// vectorAt extracts one column at the given row indices.
func (f *frame) vectorAt(col string, idx []int) []float64 {
	src := f.columns[col]
	out := make([]float64, len(idx))
	for i, row := range idx {
		out[i] = src[row]
	}
	return out
}
