package weather

// AQICategory returns the display category for an OpenWeather AQI tier.
// The mapping is fixed; anything outside 1-5 is "Unknown".
func AQICategory(aqi int) string {
	switch aqi {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}

// AQICategoryOf is AQICategory for an optional AQI value.
func AQICategoryOf(aqi *int) string {
	if aqi == nil {
		return "Unknown"
	}
	return AQICategory(*aqi)
}

// HealthAdvice maps an AQI tier and PM2.5 concentration to advisory text.
// The boundaries are exact: any aqi >= 4 (or pm2.5 above 55) is poor,
// exactly 3 is moderate, everything below is good. aqi is not range-checked.
func HealthAdvice(aqi *int, pm25 *float64) string {
	a := 0
	if aqi != nil {
		a = *aqi
	}
	if a >= 4 || (pm25 != nil && *pm25 > 55) {
		return "Air quality is poor. Avoid outdoor activities and wear a mask if going outside."
	}
	if a == 3 {
		return "Moderate air quality. Sensitive groups should limit outdoor activities."
	}
	return "Air quality is good. Safe for outdoor activities."
}
