package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/airquality"
	"github.com/Saifr72000/airsense-platform/internal/domain"
	"github.com/Saifr72000/airsense-platform/internal/repository"
)

// IngestRequest 一次传感器数据上报
type IngestRequest struct {
	SensorID    string
	Temperature float64
	Humidity    float64
	CO2         int
}

// IngestResult 摄取结果：落库的读数 + 计算出的空气质量
type IngestResult struct {
	Reading    *domain.SensorReading `json:"reading"`
	AirQuality airquality.Result     `json:"air_quality"`
}

// IngestService 传感器数据摄取服务接口
// Resolves the owning room by sensor identity, computes quality, and
// persists one immutable reading per accepted submission.
type IngestService interface {
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}

type ingestService struct {
	rooms    repository.RoomsRepository
	readings repository.ReadingsRepository
	logger   *zap.Logger
}

// NewIngestService 创建摄取服务
func NewIngestService(rooms repository.RoomsRepository, readings repository.ReadingsRepository, logger *zap.Logger) IngestService {
	return &ingestService{rooms: rooms, readings: readings, logger: logger}
}

func (s *ingestService) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if req.SensorID == "" {
		return nil, Validationf("missing required fields: sensor_id, temperature, humidity, co2")
	}

	room, err := s.rooms.GetRoomBySensorID(ctx, req.SensorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no room found with sensor_id: %s: %w", req.SensorID, repository.ErrNotFound)
		}
		return nil, err
	}

	quality := airquality.Calculate(req.Temperature, req.Humidity, req.CO2)

	score := quality.Score
	level := quality.Level
	reading, err := s.readings.CreateReading(ctx, &domain.SensorReading{
		RoomID:          room.ID,
		SensorID:        req.SensorID,
		Temperature:     req.Temperature,
		Humidity:        req.Humidity,
		CO2:             req.CO2,
		QualityScore:    &score,
		QualityLevel:    &level,
		Recommendations: quality.Recommendations,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save sensor reading: %w", err)
	}

	s.logger.Debug("sensor reading ingested",
		zap.String("room_id", room.ID),
		zap.String("sensor_id", req.SensorID),
		zap.Int("score", quality.Score),
		zap.String("level", string(quality.Level)),
	)
	return &IngestResult{Reading: reading, AirQuality: quality}, nil
}
