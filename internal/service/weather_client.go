package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// forecastDay is the provider's per-day payload.
type forecastDay struct {
	Date                string  `json:"date"`
	TempMin             float64 `json:"temp_min"`
	TempMax             float64 `json:"temp_max"`
	Humidity            float64 `json:"humidity"`
	RainfallProbability float64 `json:"rainfall_probability"`
	RainfallAmount      float64 `json:"rainfall_amount"`
	Condition           string  `json:"condition"`
}

type forecastResponse struct {
	Location string        `json:"location"`
	Days     []forecastDay `json:"days"`
}

// WeatherClient fetches forecasts from an external provider. It is
// optional: when no provider is configured the weather service falls
// back to its synthetic generator.
type WeatherClient struct {
	httpClient *resty.Client
	apiKey     string
	logger     *zap.Logger
}

// NewWeatherClient returns nil when the provider URL is not configured.
func NewWeatherClient(cfg config.WeatherConfig, logger *zap.Logger) *WeatherClient {
	if cfg.ProviderURL == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(cfg.ProviderURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &WeatherClient{
		httpClient: client,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// FetchForecast requests a daily forecast for a location.
func (c *WeatherClient) FetchForecast(ctx context.Context, location string, days int) ([]domain.WeatherPrediction, error) {
	var response forecastResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"location": location,
			"days":     fmt.Sprintf("%d", days),
			"key":      c.apiKey,
		}).
		SetResult(&response).
		Get("/forecast")
	if err != nil {
		return nil, fmt.Errorf("failed to call weather provider: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("weather provider error: status %d", resp.StatusCode())
	}

	predictions := make([]domain.WeatherPrediction, 0, len(response.Days))
	for _, day := range response.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			c.logger.Warn("Skipping forecast day with bad date",
				zap.String("date", day.Date),
				zap.Error(err),
			)
			continue
		}
		predictions = append(predictions, domain.WeatherPrediction{
			Location:            location,
			Date:                date,
			TempMin:             day.TempMin,
			TempMax:             day.TempMax,
			Humidity:            day.Humidity,
			RainfallProbability: day.RainfallProbability,
			RainfallAmount:      day.RainfallAmount,
			Condition:           day.Condition,
		})
	}
	return predictions, nil
}
