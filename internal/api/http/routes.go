package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherml/weather-prediction-service/internal/common"
	"github.com/weatherml/weather-prediction-service/internal/dataset"
	"github.com/weatherml/weather-prediction-service/internal/predict"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

var validate = validator.New()

// Deps carries the collaborators the handlers need. Everything here is
// immutable after start-up.
type Deps struct {
	Resolver    *predict.Resolver
	Collector   weather.Collector
	Cache       *dataset.Cache
	Cities      []string
	DefaultCity string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Post("/predict", func(c *fiber.Ctx) error {
		var req predictRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if req.City == "" {
			req.City = deps.DefaultCity
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		prediction, _, err := deps.Resolver.Predict(c.Context(), req.City)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(prediction)
	})

	v1.Get("/weather/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")

		reading, err := deps.Collector.Fetch(c.Context(), city)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(reading)
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"cities": deps.Cities})
	})

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "healthy",
			"data_available": deps.Cache.Len() > 0,
		})
	})

	v1.Post("/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if req.City == "" {
			req.City = deps.DefaultCity
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		message := strings.ToLower(req.Message)

		switch {
		case common.HasAny(message, "weather", "temperature", "forecast"):
			p, _, err := deps.Resolver.Predict(c.Context(), req.City)
			if err != nil {
				return mapError(err)
			}
			return c.JSON(fiber.Map{"reply": weatherReply(p), "data": p})

		case common.HasAny(message, "aqi", "air", "pollution"):
			p, _, err := deps.Resolver.Predict(c.Context(), req.City)
			if err != nil {
				return mapError(err)
			}
			return c.JSON(fiber.Map{"reply": airQualityReply(p), "data": p})

		default:
			return c.JSON(fiber.Map{
				"reply": "Ask me about weather, temperature, or air quality for any city.",
			})
		}
	})
}

type predictRequest struct {
	City string `json:"city" validate:"required"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
	City    string `json:"city"`
}

func weatherReply(p weather.Prediction) string {
	cur := p.Current
	return fmt.Sprintf(
		"Weather in %s: %s C (feels like %s C), %s - %s. Humidity %s%%, wind %s m/s. AQI: %s (%s). %s",
		p.City,
		fmtNum(cur.Temperature), fmtNum(cur.FeelsLike),
		cur.Weather, cur.Description,
		fmtNum(cur.Humidity), fmtNum(cur.WindSpeed),
		cur.AQICategory, fmtAQI(cur.AQI),
		p.HealthAdvice,
	)
}

func airQualityReply(p weather.Prediction) string {
	cur := p.Current
	return fmt.Sprintf(
		"Air quality in %s: %s (level %s). PM2.5: %s, PM10: %s. %s",
		p.City,
		cur.AQICategory, fmtAQI(cur.AQI),
		fmtNum(cur.PM25), fmtNum(cur.PM10),
		p.HealthAdvice,
	)
}

func fmtNum(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtAQI(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

// mapError translates domain errors into HTTP responses.
func mapError(err error) error {
	var acqErr *weather.AcquisitionError
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, "city not found")
	case errors.Is(err, dataset.ErrEmptyDataset):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &acqErr):
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
