package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-gateway/internal/config"
	"weather-gateway/internal/logger"
	"weather-gateway/internal/probe"
	"weather-gateway/internal/weather"
)

const (
	// ServiceName identifies the gateway in health and status responses.
	ServiceName = "weather-gateway"
	// Version is the static API version reported by /status.
	Version = "1.0.0"
)

var validate = validator.New()

// ErrorHandler converts any error escaping a handler into the gateway's
// {"detail": ...} envelope. Installed as the app-level error handler so no
// unstructured failure ever reaches the caller.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
	})
}

var endpoints = []string{
	"/weather/current",
	"/weather/coordinates",
	"/weather/forecast",
	"/weather/history",
	"/weather/location",
	"/health",
	"/status",
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, cfg *config.AppConfig, prober *probe.Prober) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Weather Gateway API is running",
			"endpoints": endpoints,
		})
	})

	app.Get("/weather/current", func(c *fiber.Ctx) error {
		var q cityQuery
		q.City = c.Query("city")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city parameter is required")
		}

		snapshot, err := service.Current(c.UserContext(), q.City)
		if err != nil {
			return opError("current", c.OriginalURL(), err)
		}
		return c.JSON(snapshot)
	})

	app.Get("/weather/coordinates", func(c *fiber.Ctx) error {
		var q coordsQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := service.ByCoordinates(c.UserContext(), *q.Lat, *q.Lon)
		if err != nil {
			return opError("coordinates", c.OriginalURL(), err)
		}
		return c.JSON(snapshot)
	})

	app.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Forecast(c.UserContext(), weather.LocationQuery{
			City: q.City,
			Lat:  q.Lat,
			Lon:  q.Lon,
		}, q.Days)
		if err != nil {
			return opError("forecast", c.OriginalURL(), err)
		}
		return c.JSON(report)
	})

	app.Get("/weather/history", func(c *fiber.Ctx) error {
		var q historyQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.History(c.UserContext(), q.City, q.Days)
		if err != nil {
			return opError("history", c.OriginalURL(), err)
		}
		return c.JSON(report)
	})

	app.Get("/weather/location", func(c *fiber.Ctx) error {
		snapshot, err := service.ByLocation(c.UserContext(), c.Query("ip"))
		if err != nil {
			return opError("location", c.OriginalURL(), err)
		}
		return c.JSON(snapshot)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":             "healthy",
			"service":            ServiceName,
			"timestamp":          time.Now().UTC().Format(time.RFC3339),
			"api_key_configured": cfg.WeatherAPIKey != "",
		})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": ServiceName,
			"version": Version,
			"features": fiber.Map{
				"current":     true,
				"coordinates": true,
				"forecast":    true,
				"history":     true,
				"ip_lookup":   true,
				"air_quality": true,
			},
			"upstream": prober.Status(),
		})
	})
}

// opError logs a failed operation with its query and converts the service
// error to the matching HTTP status. The message lands in the response's
// "detail" field via the app error handler.
func opError(op, query string, err error) error {
	logger.WithFields(logger.Fields{"op": op, "query": query}).Errorf("request failed: %v", err)

	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrUpstreamTimeout):
		return fiber.NewError(fiber.StatusGatewayTimeout, err.Error())
	default:
		// Config, upstream and data-format failures are all internal faults
		// from the caller's point of view.
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

type cityQuery struct {
	City string `validate:"required"`
}

// coordsQuery holds the lat/lon pair; pointers let "required" reject absent
// parameters without rejecting legitimate zero coordinates.
type coordsQuery struct {
	Lat *float64 `validate:"required,gte=-90,lte=90"`
	Lon *float64 `validate:"required,gte=-180,lte=180"`
}

func (q *coordsQuery) bind(c *fiber.Ctx) error {
	var err error
	if q.Lat, err = floatQuery(c, "lat"); err != nil {
		return err
	}
	if q.Lon, err = floatQuery(c, "lon"); err != nil {
		return err
	}
	return nil
}

// forecastQuery accepts either a city or a coordinate pair; the mutual
// exclusion itself is enforced by the service.
type forecastQuery struct {
	City string
	Lat  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `validate:"omitempty,gte=-180,lte=180"`
	Days int      `validate:"gte=1,lte=10"`
}

func (q *forecastQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")

	var err error
	if q.Lat, err = floatQuery(c, "lat"); err != nil {
		return err
	}
	if q.Lon, err = floatQuery(c, "lon"); err != nil {
		return err
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return errors.New("lat and lon must be provided together")
	}

	q.Days, err = intQuery(c, "days", 5)
	return err
}

type historyQuery struct {
	City string `validate:"required"`
	Days int    `validate:"gte=1,lte=7"`
}

func (q *historyQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")

	var err error
	q.Days, err = intQuery(c, "days", 3)
	return err
}

func floatQuery(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + name + " parameter")
	}
	return &v, nil
}

func intQuery(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return v, nil
}
