package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux (no third-party
// routing dependency needed for a surface this size).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handlers groups everything RegisterRoutes wires up.
type Handlers struct {
	Auth          *AuthHandler
	Sensors       *SensorHandler
	Irrigation    *IrrigationHandler
	Weather       *WeatherHandler
	Diseases      *DiseaseHandler
	Notifications *NotificationHandler
	Simulator     *SimulatorHandler
}

// RegisterRoutes wires the full API surface. Everything except
// register and login sits behind the session middleware.
func (r *Router) RegisterRoutes(h Handlers, auth *AuthMiddleware) {
	// auth
	r.Handle("/api/v1/auth/register", methodOnly(http.MethodPost, h.Auth.Register))
	r.Handle("/api/v1/auth/login", methodOnly(http.MethodPost, h.Auth.Login))
	r.Handle("/api/v1/auth/logout", methodOnly(http.MethodPost, auth.Require(h.Auth.Logout)))
	r.Handle("/api/v1/auth/me", methodOnly(http.MethodGet, auth.Require(h.Auth.Me)))

	// sensors
	r.Handle("/api/v1/sensors/readings", methodOnly(http.MethodPost, auth.Require(h.Sensors.AddReading)))
	r.Handle("/api/v1/sensors/latest", methodOnly(http.MethodGet, auth.Require(h.Sensors.Latest)))
	r.Handle("/api/v1/sensors/history", methodOnly(http.MethodGet, auth.Require(h.Sensors.History)))
	r.Handle("/api/v1/sensors/stats", methodOnly(http.MethodGet, auth.Require(h.Sensors.Stats)))
	r.Handle("/api/v1/sensors/export", methodOnly(http.MethodGet, auth.Require(h.Sensors.Export)))

	// irrigation
	r.Handle("/api/v1/irrigation/start", methodOnly(http.MethodPost, auth.Require(h.Irrigation.Start)))
	r.Handle("/api/v1/irrigation/stop", methodOnly(http.MethodPost, auth.Require(h.Irrigation.Stop)))
	r.Handle("/api/v1/irrigation/status", methodOnly(http.MethodGet, auth.Require(h.Irrigation.Status)))
	r.Handle("/api/v1/irrigation/settings", auth.Require(h.Irrigation.Settings))
	r.Handle("/api/v1/irrigation/history", methodOnly(http.MethodGet, auth.Require(h.Irrigation.History)))
	r.Handle("/api/v1/irrigation/stats", methodOnly(http.MethodGet, auth.Require(h.Irrigation.Stats)))

	// weather
	r.Handle("/api/v1/weather/forecast", methodOnly(http.MethodGet, auth.Require(h.Weather.Forecast)))
	r.Handle("/api/v1/weather/generate", methodOnly(http.MethodPost, auth.Require(h.Weather.Generate)))
	r.Handle("/api/v1/weather/alerts", methodOnly(http.MethodGet, auth.Require(h.Weather.Alerts)))

	// diseases; the exact paths win over the /api/v1/diseases/ prefix
	r.Handle("/api/v1/diseases", methodOnly(http.MethodGet, auth.Require(h.Diseases.List)))
	r.Handle("/api/v1/diseases/alerts", methodOnly(http.MethodGet, auth.Require(h.Diseases.Alerts)))
	r.Handle("/api/v1/diseases/alerts/read", methodOnly(http.MethodPost, auth.Require(h.Diseases.MarkAlertRead)))
	r.Handle("/api/v1/diseases/", methodOnly(http.MethodGet, auth.Require(h.Diseases.Get)))

	// notifications
	r.Handle("/api/v1/notifications", methodOnly(http.MethodGet, auth.Require(h.Notifications.List)))
	r.Handle("/api/v1/notifications/unread-count", methodOnly(http.MethodGet, auth.Require(h.Notifications.UnreadCount)))
	r.Handle("/api/v1/notifications/read", methodOnly(http.MethodPost, auth.Require(h.Notifications.MarkRead)))
	r.Handle("/api/v1/notifications/read-all", methodOnly(http.MethodPost, auth.Require(h.Notifications.MarkAllRead)))
	r.Handle("/api/v1/notifications/", methodOnly(http.MethodDelete, auth.Require(h.Notifications.Delete)))

	// simulator
	r.Handle("/api/v1/simulator/continuous", methodOnly(http.MethodPost, auth.Require(h.Simulator.GenerateContinuous)))
	r.Handle("/api/v1/simulator/condition", methodOnly(http.MethodPost, auth.Require(h.Simulator.SimulateCondition)))

	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
