package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/mqtt"
	"github.com/KerryNK/Smart-Farm/internal/service"
)

// MQTTConsumer subscribes to the sensor topic and feeds readings into
// the normal ingestion path, so MQTT readings trigger the same rules as
// HTTP ones. Topic layout: farm/{userID}/readings.
type MQTTConsumer struct {
	cfg     config.MQTTConfig
	client  *mqtt.Client
	sensors *service.SensorService
	logger  *zap.Logger
}

func NewMQTTConsumer(cfg config.MQTTConfig, client *mqtt.Client, sensors *service.SensorService, logger *zap.Logger) *MQTTConsumer {
	return &MQTTConsumer{
		cfg:     cfg,
		client:  client,
		sensors: sensors,
		logger:  logger,
	}
}

// Start subscribes and blocks until the context is cancelled.
func (c *MQTTConsumer) Start(ctx context.Context) error {
	if c.cfg.Topic == "" {
		return fmt.Errorf("MQTT topic not configured")
	}

	if err := c.client.Subscribe(c.cfg.Topic, c.cfg.QoS, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to sensor topic: %w", err)
	}

	c.logger.Info("MQTT consumer started", zap.String("topic", c.cfg.Topic))

	<-ctx.Done()
	return nil
}

func (c *MQTTConsumer) Stop() {
	if c.cfg.Topic != "" {
		if err := c.client.Unsubscribe(c.cfg.Topic); err != nil {
			c.logger.Error("Failed to unsubscribe", zap.Error(err))
		}
	}
	c.logger.Info("MQTT consumer stopped")
}

// sensorPayload is the JSON body a device publishes.
type sensorPayload struct {
	SoilMoisture   float64 `json:"soil_moisture"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	LightIntensity float64 `json:"light_intensity"`
	PHLevel        float64 `json:"ph_level"`
}

func (c *MQTTConsumer) handleMessage(topic string, payload []byte) error {
	userID, err := userIDFromTopic(topic)
	if err != nil {
		return err
	}

	var body sensorPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to parse sensor payload: %w", err)
	}
	if body.PHLevel == 0 {
		body.PHLevel = 7.0
	}

	reading := &domain.SensorReading{
		UserID:         userID,
		SoilMoisture:   body.SoilMoisture,
		Temperature:    body.Temperature,
		Humidity:       body.Humidity,
		LightIntensity: body.LightIntensity,
		PHLevel:        body.PHLevel,
	}

	actions, err := c.sensors.AddReading(context.Background(), reading)
	if err != nil {
		return fmt.Errorf("failed to ingest reading from topic %s: %w", topic, err)
	}

	c.logger.Debug("Ingested MQTT reading",
		zap.Int64("user_id", userID),
		zap.Int("actions", len(actions)),
	)
	return nil
}

// userIDFromTopic extracts the user ID from farm/{userID}/readings.
func userIDFromTopic(topic string) (int64, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "farm" || parts[2] != "readings" {
		return 0, fmt.Errorf("unexpected topic layout: %s", topic)
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid user id in topic %s", topic)
	}
	return userID, nil
}
