package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// Evaluator runs the environmental rules against incoming data.
// It is pure decision logic: it reads its inputs, proposes actions, and never
// touches storage. Rules are independent; several may fire from one reading.
type Evaluator struct {
	rules  config.RulesConfig
	logger *zap.Logger
}

// New creates an evaluator.
func New(rules config.RulesConfig, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		rules:  rules,
		logger: logger,
	}
}

// Input is everything a sensor-rule evaluation may look at.
type Input struct {
	Reading  domain.SensorReading
	Settings *domain.IrrigationSettings // nil means auto mode is off
	// LastStart is the timestamp of the user's most recent irrigation start
	// entry, nil if none exists. Used for the auto-trigger cooldown.
	LastStart *time.Time
	Now       time.Time
}

// Evaluate applies all sensor-driven rules to one reading.
// It never fails: absence of data means a rule does not fire.
func (e *Evaluator) Evaluate(in Input) []Action {
	var actions []Action

	if a := e.evaluateIrrigation(in); a != nil {
		actions = append(actions, *a)
	}
	actions = append(actions, e.evaluateDisease(in.Reading)...)

	if len(actions) > 0 {
		e.logger.Debug("Rules fired for reading",
			zap.Int64("user_id", in.Reading.UserID),
			zap.Int("actions", len(actions)),
		)
	}

	return actions
}
