package domain

import "time"

// Disease risk levels (ordered low to critical).
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// CropTypeVarious marks a disease that applies to all crops.
const CropTypeVarious = "Various"

// CropDisease reference data (crop_diseases table, rarely mutated).
type CropDisease struct {
	ID                  int64  `db:"id" json:"id"`
	Name                string `db:"disease_name" json:"disease_name"`
	CropType            string `db:"crop_type" json:"crop_type"`
	SeverityLevel       string `db:"severity_level" json:"severity_level"`
	Symptoms            string `db:"symptoms" json:"symptoms"`
	Causes              string `db:"causes" json:"causes"`
	Prevention          string `db:"prevention" json:"prevention"`
	Treatment           string `db:"treatment" json:"treatment"`
	FavorableConditions string `db:"favorable_conditions" json:"favorable_conditions"`
}

// DiseaseAlert domain model (disease_alerts table).
// Created by the rule engine; mutated only by mark-read.
type DiseaseAlert struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	DiseaseID int64     `db:"disease_id" json:"disease_id"`
	RiskLevel string    `db:"risk_level" json:"risk_level"`
	Message   string    `db:"alert_message" json:"alert_message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined from crop_diseases for list views.
	DiseaseName     string `db:"disease_name" json:"disease_name,omitempty"`
	CropType        string `db:"crop_type" json:"crop_type,omitempty"`
	DiseaseSeverity string `db:"disease_severity" json:"disease_severity,omitempty"`
}
