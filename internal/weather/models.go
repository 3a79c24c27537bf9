package weather

import (
	"time"
)

// Reading is a single weather/air-quality observation for one city.
// Numeric fields are pointers because the upstream API omits units it cannot
// report; an absent field must stay absent until feature construction decides
// how to treat it. A Reading is never mutated after it is built.
type Reading struct {
	Timestamp          time.Time `json:"timestamp"`
	City               string    `json:"city"`
	Temperature        *float64  `json:"temperature"`
	FeelsLike          *float64  `json:"feels_like"`
	TempMin            *float64  `json:"temp_min"`
	TempMax            *float64  `json:"temp_max"`
	Pressure           *float64  `json:"pressure"`
	Humidity           *float64  `json:"humidity"`
	WindSpeed          *float64  `json:"wind_speed"`
	WindDeg            *float64  `json:"wind_deg"`
	Clouds             *float64  `json:"clouds"`
	WeatherMain        string    `json:"weather_main"`
	WeatherDescription string    `json:"weather_description"`
	AQI                *int      `json:"aqi"`
	PM25               *float64  `json:"pm2_5"`
	PM10               *float64  `json:"pm10"`
	CO                 *float64  `json:"co"`
	NO2                *float64  `json:"no2"`
	O3                 *float64  `json:"o3"`
	SO2                *float64  `json:"so2"`
}

// CurrentConditions is the display projection of a Reading. Absent fields are
// serialized as null, never as a substituted zero.
type CurrentConditions struct {
	Temperature *float64 `json:"temperature"`
	FeelsLike   *float64 `json:"feels_like"`
	Humidity    *float64 `json:"humidity"`
	Pressure    *float64 `json:"pressure"`
	WindSpeed   *float64 `json:"wind_speed"`
	Clouds      *float64 `json:"clouds"`
	Weather     string   `json:"weather"`
	Description string   `json:"description"`
	AQI         *int     `json:"aqi"`
	AQICategory string   `json:"aqi_category"`
	PM25        *float64 `json:"pm2_5"`
	PM10        *float64 `json:"pm10"`
}

// MLPredictions holds model outputs. Humidity and weather entries are present
// only when their artifacts were loaded.
type MLPredictions struct {
	PredictedTemperature float64  `json:"predicted_temperature"`
	TempDifference       float64  `json:"temp_difference"`
	PredictedHumidity    *float64 `json:"predicted_humidity,omitempty"`
	PredictedWeather     string   `json:"predicted_weather,omitempty"`
}

// Prediction is the full response for one city: current conditions plus
// optional model predictions and a health advisory.
type Prediction struct {
	City         string            `json:"city"`
	Timestamp    time.Time         `json:"timestamp"`
	Current      CurrentConditions `json:"current"`
	ML           *MLPredictions    `json:"ml_predictions,omitempty"`
	HealthAdvice string            `json:"health_advice"`
}

// CurrentFrom projects a Reading onto its display block.
func CurrentFrom(r Reading) CurrentConditions {
	return CurrentConditions{
		Temperature: r.Temperature,
		FeelsLike:   r.FeelsLike,
		Humidity:    r.Humidity,
		Pressure:    r.Pressure,
		WindSpeed:   r.WindSpeed,
		Clouds:      r.Clouds,
		Weather:     r.WeatherMain,
		Description: r.WeatherDescription,
		AQI:         r.AQI,
		AQICategory: AQICategoryOf(r.AQI),
		PM25:        r.PM25,
		PM10:        r.PM10,
	}
}

// Float returns a pointer to v. Convenience for building readings.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
