package dataset

import (
	"math"
	"math/rand"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// Sample data generation for bootstrapping training before enough real
// readings have been collected. The generated rows keep the statistical
// structure the models expect: a diurnal temperature cycle, humidity and
// cloud cover conditioned on the weather label, and PM2.5 banded by AQI.

var sampleConditions = []string{"Clear", "Clouds", "Rain", "Drizzle", "Mist", "Haze"}

var sampleDescriptions = map[string][]string{
	"Clear":   {"clear sky", "sunny"},
	"Clouds":  {"few clouds", "scattered clouds", "broken clouds", "overcast clouds"},
	"Rain":    {"light rain", "moderate rain", "heavy rain"},
	"Drizzle": {"light drizzle", "drizzle"},
	"Mist":    {"mist", "fog"},
	"Haze":    {"haze", "smoke"},
}

// baseTemperatures holds per-city climate baselines in Celsius.
var baseTemperatures = map[string]float64{
	"Delhi":     25,
	"Mumbai":    28,
	"Bangalore": 23,
	"Chennai":   30,
	"Kolkata":   27,
	"Hyderabad": 26,
	"Pune":      24,
	"Ahmedabad": 28,
}

var pm25Bands = map[int][2]float64{
	1: {0, 30},
	2: {30, 60},
	3: {60, 90},
	4: {90, 120},
	5: {120, 250},
}

// GenerateSample produces n synthetic readings across the given cities,
// one per hour starting at start. The same seed yields the same dataset.
func GenerateSample(n int, cities []string, start time.Time, seed int64) []weather.Reading {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]weather.Reading, 0, n)

	for i := 0; i < n; i++ {
		city := cities[rng.Intn(len(cities))]
		ts := start.Add(time.Duration(i) * time.Hour)

		baseTemp, ok := baseTemperatures[city]
		if !ok {
			baseTemp = 25
		}

		// Daily cycle peaking in the afternoon, plus noise.
		hour := float64(ts.Hour())
		temp := baseTemp + math.Sin((hour-6)*math.Pi/12)*5 + rng.NormFloat64()*2

		condition := sampleConditions[rng.Intn(len(sampleConditions))]
		descs := sampleDescriptions[condition]
		description := descs[rng.Intn(len(descs))]

		var humidity, clouds float64
		switch condition {
		case "Rain", "Drizzle":
			humidity = float64(70 + rng.Intn(25))
			clouds = float64(80 + rng.Intn(20))
		case "Clear":
			humidity = float64(30 + rng.Intn(30))
			clouds = float64(rng.Intn(20))
		default:
			humidity = float64(50 + rng.Intn(30))
			clouds = float64(40 + rng.Intn(40))
		}

		aqi := sampleAQI(rng, city)
		band := pm25Bands[aqi]
		pm25 := band[0] + rng.Float64()*(band[1]-band[0])
		pm10 := math.Max(0, pm25*1.5+rng.NormFloat64()*10)

		rows = append(rows, weather.Reading{
			Timestamp:          ts.UTC(),
			City:               city,
			Temperature:        weather.Float(round2(temp)),
			FeelsLike:          weather.Float(round2(temp + uniform(rng, -2, 2))),
			TempMin:            weather.Float(round2(temp - uniform(rng, 1, 3))),
			TempMax:            weather.Float(round2(temp + uniform(rng, 1, 3))),
			Pressure:           weather.Float(math.Round(1013 + rng.NormFloat64()*10)),
			Humidity:           weather.Float(humidity),
			WindSpeed:          weather.Float(round2(uniform(rng, 0.5, 8))),
			WindDeg:            weather.Float(float64(rng.Intn(360))),
			Clouds:             weather.Float(clouds),
			WeatherMain:        condition,
			WeatherDescription: description,
			AQI:                weather.Int(aqi),
			PM25:               weather.Float(round2(pm25)),
			PM10:               weather.Float(round2(pm10)),
			CO:                 weather.Float(round2(uniform(rng, 200, 1000))),
			NO2:                weather.Float(round2(uniform(rng, 10, 50))),
			O3:                 weather.Float(round2(uniform(rng, 20, 100))),
			SO2:                weather.Float(round2(uniform(rng, 5, 30))),
		})
	}

	return rows
}

// sampleAQI draws an AQI tier from a per-city severity distribution: Delhi
// and Kolkata skew poor, Bangalore and Pune skew good.
func sampleAQI(rng *rand.Rand, city string) int {
	switch city {
	case "Delhi", "Kolkata":
		return weightedChoice(rng, []int{2, 3, 4, 5}, []float64{0.1, 0.3, 0.4, 0.2})
	case "Bangalore", "Pune":
		return weightedChoice(rng, []int{1, 2, 3}, []float64{0.3, 0.5, 0.2})
	default:
		return weightedChoice(rng, []int{2, 3, 4}, []float64{0.3, 0.5, 0.2})
	}
}

func weightedChoice(rng *rand.Rand, values []int, weights []float64) int {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
