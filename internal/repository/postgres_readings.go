package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Saifr72000/airsense-platform/internal/airquality"
	"github.com/Saifr72000/airsense-platform/internal/domain"
)

type PostgresReadingsRepo struct {
	db *sql.DB
}

func NewPostgresReadingsRepo(db *sql.DB) *PostgresReadingsRepo {
	return &PostgresReadingsRepo{db: db}
}

const readingColumns = `id, room_id, sensor_id, temperature, humidity, co2,
	quality_score, quality_level, recommendations, created_at`

func (r *PostgresReadingsRepo) CreateReading(ctx context.Context, reading *domain.SensorReading) (*domain.SensorReading, error) {
	id := reading.ID
	if id == "" {
		id = uuid.NewString()
	}

	var recommendations any
	if reading.Recommendations != nil {
		raw, err := json.Marshal(reading.Recommendations)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
		}
		recommendations = raw
	}

	query := `
		INSERT INTO sensor_readings (
			id, room_id, sensor_id, temperature, humidity, co2,
			quality_score, quality_level, recommendations, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + readingColumns
	created, err := scanReading(r.db.QueryRowContext(ctx, query,
		id, reading.RoomID, reading.SensorID,
		reading.Temperature, reading.Humidity, reading.CO2,
		reading.QualityScore, qualityLevelToAny(reading.QualityLevel),
		recommendations, time.Now().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create sensor reading: %w", err)
	}
	return created, nil
}

func (r *PostgresReadingsRepo) LatestReadingForRoom(ctx context.Context, roomID string) (*domain.SensorReading, error) {
	query := `SELECT ` + readingColumns + `
		FROM sensor_readings WHERE room_id = $1
		ORDER BY created_at DESC LIMIT 1`
	reading, err := scanReading(r.db.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reading, nil
}

func (r *PostgresReadingsRepo) ListReadingsForRoom(ctx context.Context, roomID string, limit int) ([]*domain.SensorReading, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + readingColumns + `
		FROM sensor_readings WHERE room_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensor readings: %w", err)
	}
	defer rows.Close()

	readings := []*domain.SensorReading{}
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func scanReading(row rowScanner) (*domain.SensorReading, error) {
	var reading domain.SensorReading
	var score sql.NullInt64
	var level sql.NullString
	var recommendations []byte
	if err := row.Scan(
		&reading.ID, &reading.RoomID, &reading.SensorID,
		&reading.Temperature, &reading.Humidity, &reading.CO2,
		&score, &level, &recommendations, &reading.CreatedAt,
	); err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		reading.QualityScore = &v
	}
	if level.Valid {
		l := airquality.Level(level.String)
		reading.QualityLevel = &l
	}
	if len(recommendations) > 0 {
		if err := json.Unmarshal(recommendations, &reading.Recommendations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
		}
	}
	return &reading, nil
}

func qualityLevelToAny(level *airquality.Level) any {
	if level == nil {
		return nil
	}
	return string(*level)
}
