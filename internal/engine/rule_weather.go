package engine

import (
	"fmt"
	"time"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// EvaluateForecast applies the forecast-driven weather rules to the days
// within the configured alert horizon (default: next 3 days). All four rules
// are independent and can co-fire on a single day.
func (e *Evaluator) EvaluateForecast(days []domain.WeatherPrediction, now time.Time) []Action {
	var actions []Action

	horizon := now.AddDate(0, 0, e.rules.ForecastAlertDays)
	for _, day := range days {
		if day.Date.After(horizon) {
			continue
		}
		actions = append(actions, e.evaluateForecastDay(day)...)
	}

	return actions
}

func (e *Evaluator) evaluateForecastDay(day domain.WeatherPrediction) []Action {
	var actions []Action
	dateLabel := day.Date.Format("Monday, Jan 2")

	if day.RainfallProbability > 70 {
		actions = append(actions, Action{
			Type:      ActionWeatherAlert,
			AlertType: domain.WeatherAlertRain,
			Severity:  domain.SeverityInfo,
			Message: fmt.Sprintf(
				"High chance of rain on %s! Rainfall probability: %s%%. Expected amount: %smm. Plan your farming activities accordingly.",
				dateLabel, num(day.RainfallProbability), num(day.RainfallAmount)),
		})
	}

	if day.RainfallAmount > 30 {
		actions = append(actions, Action{
			Type:      ActionWeatherAlert,
			AlertType: domain.WeatherAlertHeavyRain,
			Severity:  domain.SeverityWarning,
			Message: fmt.Sprintf(
				"Heavy rainfall expected on %s! Expected amount: %smm. Ensure proper drainage and protect crops.",
				dateLabel, num(day.RainfallAmount)),
		})
	}

	if day.RainfallProbability < 10 && day.TempMax > 32 {
		actions = append(actions, Action{
			Type:      ActionWeatherAlert,
			AlertType: domain.WeatherAlertDrought,
			Severity:  domain.SeverityWarning,
			Message: fmt.Sprintf(
				"Hot and dry conditions expected on %s. Temperature: %s°C. Ensure adequate irrigation.",
				dateLabel, num(day.TempMax)),
		})
	}

	if day.TempMax > 35 {
		actions = append(actions, Action{
			Type:      ActionWeatherAlert,
			AlertType: domain.WeatherAlertHeat,
			Severity:  domain.SeverityDanger,
			Message: fmt.Sprintf(
				"Extreme heat warning for %s! Temperature may reach %s°C. Protect sensitive crops.",
				dateLabel, num(day.TempMax)),
		})
	}

	return actions
}
