package weather

import "time"

// FeatureSet holds the model-ready vectors derived from one reading. The
// element order and length of each vector is part of the trained model
// contract: changing either requires retraining every dependent artifact.
type FeatureSet struct {
	Temperature []float64 // 11 elements
	Weather     []float64 // 9 elements
	Humidity    []float64 // 7 elements
}

// ExtractFeatures maps a reading plus the current time into the three fixed
// feature vectors. Pure: absent numerics become 0 here and only here.
func ExtractFeatures(r Reading, now time.Time) FeatureSet {
	hour := float64(now.Hour())
	month := float64(now.Month())

	return FeatureSet{
		Temperature: []float64{
			orZero(r.FeelsLike),
			orZero(r.TempMin),
			orZero(r.TempMax),
			orZero(r.Pressure),
			orZero(r.Humidity),
			orZero(r.WindSpeed),
			orZero(r.Clouds),
			orZero(r.PM25),
			orZero(r.PM10),
			hour,
			month,
		},
		Weather: []float64{
			orZero(r.Temperature),
			orZero(r.Humidity),
			orZero(r.Pressure),
			orZero(r.WindSpeed),
			orZero(r.Clouds),
			orZero(r.PM25),
			aqiOrZero(r.AQI),
			hour,
			month,
		},
		Humidity: []float64{
			orZero(r.Temperature),
			orZero(r.Pressure),
			orZero(r.WindSpeed),
			orZero(r.Clouds),
			orZero(r.PM25),
			hour,
			month,
		},
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func aqiOrZero(v *int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}
