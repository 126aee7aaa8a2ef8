package repository

import (
	"context"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

// RoomUpdate 房间可更新字段（nil 表示不更新）
// SensorID 更新为空字符串表示解绑传感器。
type RoomUpdate struct {
	Name     *string
	SensorID *string
}

// RoomsRepository 房间Repository接口
type RoomsRepository interface {
	// ListRooms 按创建时间倒序返回全部房间
	ListRooms(ctx context.Context) ([]*domain.Room, error)

	// ListRoomsByBuilding 返回某楼栋下全部房间
	ListRoomsByBuilding(ctx context.Context, buildingID string) ([]*domain.Room, error)

	// GetRoom 获取单个房间
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)

	// GetRoomBySensorID 按传感器标识查找房间（摄取路径使用）
	GetRoomBySensorID(ctx context.Context, sensorID string) (*domain.Room, error)

	// CreateRoom 创建房间；room_code 冲突返回 ErrDuplicate
	CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error)

	// UpdateRoom 更新房间（name/sensor_id）
	UpdateRoom(ctx context.Context, roomID string, update RoomUpdate) (*domain.Room, error)

	// DeleteRoom 删除房间
	DeleteRoom(ctx context.Context, roomID string) error
}
