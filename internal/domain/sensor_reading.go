package domain

import (
	"time"

	"github.com/Saifr72000/airsense-platform/internal/airquality"
)

// SensorReading 传感器读数领域模型（对应 sensor_readings 表）
// Immutable once created; the latest reading for a room is selected by
// created_at descending.
type SensorReading struct {
	ID              string            `json:"id" db:"id"`
	RoomID          string            `json:"room_id" db:"room_id"`
	SensorID        string            `json:"sensor_id" db:"sensor_id"`
	Temperature     float64           `json:"temperature" db:"temperature"`
	Humidity        float64           `json:"humidity" db:"humidity"`
	CO2             int               `json:"co2" db:"co2"`
	QualityScore    *int              `json:"quality_score" db:"quality_score"`       // nullable
	QualityLevel    *airquality.Level `json:"quality_level" db:"quality_level"`       // nullable
	Recommendations []string          `json:"recommendations" db:"recommendations"`   // nullable, JSONB
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}
