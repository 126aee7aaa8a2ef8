package repository

import (
	"context"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

// ReadingsRepository 传感器读数Repository接口
// Readings are append-only; there is no update or delete.
type ReadingsRepository interface {
	// CreateReading 写入一条新的不可变读数
	CreateReading(ctx context.Context, reading *domain.SensorReading) (*domain.SensorReading, error)

	// LatestReadingForRoom 房间最新一条读数；没有读数时返回 ErrNotFound
	LatestReadingForRoom(ctx context.Context, roomID string) (*domain.SensorReading, error)

	// ListReadingsForRoom 房间读数按时间倒序，最多 limit 条（导出用）
	ListReadingsForRoom(ctx context.Context, roomID string, limit int) ([]*domain.SensorReading, error)
}
